package hexshooter

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/engine"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/lifecycle"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/projectile"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

// Bot is a simple autoplayer. It aims straight at a free cell next to a
// ball of the loaded species, preferring cells closest to the launcher.
type Bot struct {
	rng    *rand.Rand
	target core.Vec2
	aiming bool
}

// NewBot creates a bot with its own seeded tie-breaking.
func NewBot(seed int64) *Bot {
	return &Bot{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the pointer sample for the coming tick.
func (b *Bot) Next(c *engine.Context) engine.Input {
	p := c.Projectile()
	if p == nil || c.Lifecycle().Phase() != lifecycle.Playing {
		b.aiming = false
		return engine.Input{}
	}

	switch p.State {
	case projectile.Loaded:
		b.target = b.pick(c, p.Species)
		b.aiming = true
		return engine.Input{Pointer: b.target, Valid: true, Pressed: true}
	case projectile.Aiming:
		if !b.aiming {
			b.target = b.pick(c, p.Species)
		}
		b.aiming = false
		return engine.Input{Pointer: b.target, Valid: true, Released: true}
	}
	return engine.Input{}
}

// pick chooses the world point to shoot at.
func (b *Bot) pick(c *engine.Context, sp species.Species) core.Vec2 {
	store := c.Store()
	launcher := c.Launcher()

	var best, fallback []hex.Hex
	bestY, fallbackY := -1.0, -1.0
	consider := func(list *[]hex.Hex, y *float64, h hex.Hex) {
		wy := store.WorldOf(h).Y
		switch {
		case wy > *y+1e-9:
			*list, *y = []hex.Hex{h}, wy
		case wy > *y-1e-9:
			*list = append(*list, h)
		}
	}

	for _, occ := range store.Occupants() {
		for _, cell := range store.EmptyNeighbors(occ.Cell) {
			if !store.ValidCell(cell) || cell.R < store.LastActiveRow() {
				continue
			}
			if store.WorldOf(cell).Y >= launcher.Y {
				continue
			}
			if occ.Species == sp {
				consider(&best, &bestY, cell)
			} else {
				consider(&fallback, &fallbackY, cell)
			}
		}
	}

	candidates := best
	if len(candidates) == 0 {
		candidates = fallback
	}
	if len(candidates) == 0 {
		return launcher.Add(core.V(0, -c.Height()/2))
	}
	return store.WorldOf(candidates[b.rng.Intn(len(candidates))])
}

// SimOptions bounds a headless run.
type SimOptions struct {
	Seed     int64
	TickRate int
	MaxTicks int // Stop after this many ticks; 0 means ten simulated minutes
	Levels   int // Stop after clearing this many levels; 0 means until lost
}

// SimResult summarizes a headless run.
type SimResult struct {
	Outcome       string // "lost", "cleared" or "timeout"
	Score         int
	Level         int
	LevelsCleared int
	Turns         int
	Shots         int
	Ticks         int
	Elapsed       time.Duration // Simulated time
	Snapshot      Snapshot
}

// Simulate plays a game with a Bot until it is lost, the level target is
// reached or the tick budget runs out. Equal options give equal results.
func Simulate(mode Mode, opts SimOptions) SimResult {
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultConfig().TickRate
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = opts.TickRate * 600
	}

	g := New(mode)
	g.Reset(core.RuntimeConfig{Seed: opts.Seed, ScreenW: 80, ScreenH: 40, TickRate: opts.TickRate})
	bot := NewBot(opts.Seed)

	res := SimResult{Outcome: "timeout"}
	for res.Ticks < opts.MaxTicks {
		lc := g.ctx.Lifecycle()
		if lc.Phase() == lifecycle.Lost {
			res.Outcome = "lost"
			break
		}
		if lc.Phase() == lifecycle.Won {
			res.LevelsCleared++
			res.Turns += lc.Turns()
			if opts.Levels > 0 && res.LevelsCleared >= opts.Levels {
				res.Outcome = "cleared"
				break
			}
			g.ctx.Continue()
		}

		in := bot.Next(g.ctx)
		if in.Released {
			res.Shots++
		}
		g.tick++
		g.advance(in)
		res.Ticks++
	}

	if res.Outcome != "cleared" {
		res.Turns += g.ctx.Lifecycle().Turns()
	}
	res.Score = g.ctx.Score()
	res.Level = g.ctx.Lifecycle().Level()
	res.Elapsed = time.Duration(res.Ticks) * g.dt
	res.Snapshot = g.Snapshot()
	return res
}
