package hexshooter

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexshooter/internal/config"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/engine"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/lifecycle"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/magnet"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/projectile"
)

var (
	settingsMu sync.RWMutex
	// configPath stores the custom config path set via CLI
	configPath string
	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset
	strict           bool
	logger           *log.Logger
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = config.ParsePreset(preset)
}

// SetStrict makes invariant violations panic in games created afterwards.
func SetStrict(on bool) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	strict = on
}

// SetLogger sets the logger handed to new simulations.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	logger = l
}

// LoadConfig resolves the configuration the next game will use, with the
// difficulty preset applied and out-of-range values replaced.
func LoadConfig() (config.HexShooterConfig, []string, error) {
	return loadConfig("")
}

// loadConfig is LoadConfig with an optional per-game preset taking
// precedence over the package-wide one.
func loadConfig(override config.DifficultyPreset) (config.HexShooterConfig, []string, error) {
	settingsMu.RLock()
	path, preset := configPath, difficultyPreset
	settingsMu.RUnlock()
	if override != "" {
		preset = override
	}

	cfg, warnings, err := config.LoadHexShooter(path)
	if preset != "" {
		config.ApplyHexShooterPreset(&cfg, preset)
	}
	return cfg, append(warnings, cfg.Normalize()...), err
}

// gameLogger returns the configured logger or a discarding one.
func gameLogger() *log.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

func strictMode() bool {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return strict
}

// EngineConfig maps a loaded configuration onto simulation tuning.
func EngineConfig(c config.HexShooterConfig, mode Mode) engine.Config {
	offset, _ := hex.ParseOffsetMode(c.Settings.OffsetMode)
	r := c.Physics.BallRadius

	checkpoints := make([]time.Duration, 0, len(c.Snap.CheckpointsMS))
	for _, ms := range c.Snap.CheckpointsMS {
		checkpoints = append(checkpoints, time.Duration(ms)*time.Millisecond)
	}
	mag := magnet.DefaultConfig(r)
	mag.Enabled = c.Magnet.Enabled
	mag.StrongRadius = c.Magnet.StrongRadius * r
	mag.StrongFactor = c.Magnet.StrongFactor
	mag.WeakFactor = c.Magnet.WeakFactor
	mag.AnchorFactor = c.Magnet.AnchorFactor

	lc := lifecycle.DefaultConfig()
	lc.Cols = c.Settings.Columns
	lc.TotalRows = c.Settings.TotalRows
	lc.RowsShown = c.Settings.RowsShown
	lc.TurnsPerShift = c.Settings.TurnsPerShift
	lc.Endless = mode == Endless
	lc.StartLevel = c.Gameplay.StartLevel
	lc.MaxLevel = c.Gameplay.MaxLevel
	lc.ShiftSpeed = c.Physics.ShiftSpeed

	ec := engine.DefaultConfig()
	ec.TotalColors = c.Settings.TotalColors
	ec.Mode = offset
	ec.BallRadius = r
	ec.ViewRows = c.Gameplay.ViewRows
	ec.GameOverLine = c.Gameplay.GameOverLine
	ec.DropFloating = c.Cluster.DropFloating
	ec.MinClusterSize = c.Cluster.MinSize
	ec.ClusterDelay = time.Duration(c.Cluster.CheckDelayMS) * time.Millisecond
	ec.BallMass = c.Physics.BallMass
	ec.BallDamping = c.Physics.BallDamping
	ec.BallRestitution = c.Physics.BallRestitution
	ec.WallRestitution = c.Physics.WallRestitution
	ec.PointsPerBall = c.Gameplay.PointsPerBall
	ec.FloatingPoints = c.Gameplay.FloatingPoints
	ec.Projectile = projectile.Config{
		Speed:       c.Physics.ProjectileSpeed,
		SlowSpeed:   c.Snap.SlowSpeed,
		ReversalDot: c.Snap.ReversalDot,
		MinAimUp:    c.Snap.MinAimUp,
		Checkpoints: checkpoints,
		HardLimit:   time.Duration(c.Snap.HardLimitMS) * time.Millisecond,
		MaxFlight:   time.Duration(c.Snap.MaxFlightMS) * time.Millisecond,
	}
	ec.Lifecycle = lc
	ec.Magnet = mag
	return ec
}
