package hexshooter

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/lifecycle"
)

// Snapshot is a compact, comparable summary of a running game.
type Snapshot struct {
	Tick     uint64
	Score    int
	Level    int
	Turns    int
	Balls    int
	Frontier int
	Phase    lifecycle.Phase
	// Hash covers every occupied cell with its species, the counters and
	// the quantized projectile position.
	Hash uint64
}

// Snapshot returns the current game state summary.
func (g *Game) Snapshot() Snapshot {
	if g.ctx == nil {
		return Snapshot{Tick: g.tick}
	}
	c := g.ctx
	lc := c.Lifecycle()

	h := fnv.New64a()
	var buf [8]byte
	put := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	for _, occ := range c.Store().Occupants() {
		put(int64(occ.Cell.Q))
		put(int64(occ.Cell.R))
		put(int64(occ.Species))
	}
	put(int64(c.Score()))
	put(int64(lc.Turns()))
	put(int64(lc.MoveCooldown()))
	put(int64(lc.RowsLeft()))
	put(int64(c.NextSpecies()))
	if pos, ok := c.ProjectilePosition(); ok {
		put(int64(math.Round(pos.X * 1000)))
		put(int64(math.Round(pos.Y * 1000)))
	}

	return Snapshot{
		Tick:     g.tick,
		Score:    c.Score(),
		Level:    lc.Level(),
		Turns:    lc.Turns(),
		Balls:    c.Store().Len(),
		Frontier: c.Store().LastActiveRow(),
		Phase:    lc.Phase(),
		Hash:     h.Sum64(),
	}
}
