package engine

import (
	"time"

	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/lifecycle"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/magnet"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/projectile"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

// Config is the complete tuning of a simulation.
type Config struct {
	TotalColors int
	Mode        hex.OffsetMode
	BallRadius  float64

	// ViewRows is the playfield height in hex rows, launcher excluded.
	ViewRows int
	// GameOverLine is the fraction of the view height the lowest ball edge
	// may not reach.
	GameOverLine float64

	// DropFloating removes balls left without frontier support after a match.
	DropFloating   bool
	MinClusterSize int
	ClusterDelay   time.Duration

	BallMass        float64
	BallDamping     float64
	BallRestitution float64
	WallRestitution float64

	OutBallLifetime time.Duration
	SpawnGrowTime   time.Duration

	PointsPerBall  int
	FloatingPoints int

	Projectile projectile.Config
	Lifecycle  lifecycle.Config
	Magnet     magnet.Config

	// Strict turns invariant violations into panics.
	Strict bool
}

// DefaultConfig returns the campaign tuning.
func DefaultConfig() Config {
	const radius = 1.0
	return Config{
		TotalColors:     species.DefaultTotal,
		Mode:            hex.OddRow,
		BallRadius:      radius,
		ViewRows:        14,
		GameOverLine:    0.82,
		DropFloating:    true,
		MinClusterSize:  3,
		ClusterDelay:    100 * time.Millisecond,
		BallMass:        5,
		BallDamping:     6,
		BallRestitution: 0.1,
		WallRestitution: 1,
		OutBallLifetime: 900 * time.Millisecond,
		SpawnGrowTime:   250 * time.Millisecond,
		PointsPerBall:   10,
		FloatingPoints:  20,
		Projectile:      projectile.DefaultConfig(),
		Lifecycle:       lifecycle.DefaultConfig(),
		Magnet:          magnet.DefaultConfig(radius),
	}
}
