// Package hexshooter provides the hex-grid bubble shooter and registers its modes.
package hexshooter

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/hexshooter/internal/config"
	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/engine"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/lifecycle"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/physics"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/projectile"
	"github.com/vovakirdan/hexshooter/internal/registry"
)

// Mode selects how rows are fed into the field.
type Mode int

const (
	Campaign Mode = iota // levels with a fixed number of rows
	Endless              // rows never run out
)

const (
	hudHeight = 2

	aimStep     = 3 * math.Pi / 180
	aimMaxAngle = 80 * math.Pi / 180
	aimReach    = 8.0
	aimBounces  = 2
)

func init() {
	registry.Register("hexshooter", func() registry.Game {
		return New(Campaign)
	})
	registry.Register("hexshooter_endless", func() registry.Game {
		return New(Endless)
	})
}

// Game adapts an engine.Context to the registry game interface.
type Game struct {
	mode       Mode
	rng        *rand.Rand
	ctx        *engine.Context
	fx         *sink
	difficulty *config.DifficultyManager
	baseTurns  int
	preset     config.DifficultyPreset

	screenW int
	screenH int
	dt      time.Duration

	// world → screen mapping
	scaleX, scaleY float64
	fieldX, fieldY int
	tooSmall       bool

	tick   uint64
	paused bool

	mouseAiming bool
	keyAiming   bool
	releaseNext bool
	aimAngle    float64
}

// New creates a hex shooter in the given mode.
func New(mode Mode) *Game {
	return &Game{mode: mode, fx: &sink{}}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == Endless {
		return "hexshooter_endless"
	}
	return "hexshooter"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == Endless {
		return "Hex Shooter (Endless)"
	}
	return "Hex Shooter"
}

// SetDifficulty picks a preset for this game only, overriding
// SetDifficultyPreset. It applies from the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// Reset starts a new run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	l := gameLogger()
	loaded, warnings, err := loadConfig(g.preset)
	if err != nil {
		l.Warn("config not loaded, using defaults", "err", err)
	}
	for _, w := range warnings {
		l.Warn("config value replaced", "detail", w)
	}
	tc := EngineConfig(loaded, g.mode)
	tc.Strict = strictMode()
	g.difficulty = config.NewDifficultyManager(loaded.Difficulty)
	g.baseTurns = loaded.Settings.TurnsPerShift

	cfg = cfg.WithDefaults()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.fx = &sink{}
	g.ctx = engine.New(tc, physics.NewWorld(physics.DefaultWorldConfig()), g.fx, l, g.rng.Int63())
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.dt = time.Second / time.Duration(cfg.TickRate)
	g.tick = 0
	g.paused = false
	g.mouseAiming = false
	g.keyAiming = false
	g.releaseNext = false
	g.aimAngle = 0
	g.calculateLayout()
}

// calculateLayout fits the field into the screen keeping the 2:1 cell aspect.
func (g *Game) calculateLayout() {
	availW := float64(g.screenW - 2)
	availH := float64(g.screenH - hudHeight - 3)
	g.scaleY = min(availH/g.ctx.Height(), availW/(2*g.ctx.Width()))
	g.scaleX = 2 * g.scaleY
	g.tooSmall = g.scaleY < 0.5

	fieldW := int(g.ctx.Width()*g.scaleX) + 2
	g.fieldX = (g.screenW-fieldW)/2 + 1
	g.fieldY = hudHeight + 1
}

// Resize refits the field to a new screen size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.ctx != nil {
		g.calculateLayout()
	}
}

// Context exposes the running simulation.
func (g *Game) Context() *engine.Context { return g.ctx }

// toScreen maps a world point to a screen cell.
func (g *Game) toScreen(p core.Vec2) (int, int) {
	return g.fieldX + int(math.Floor(p.X*g.scaleX)), g.fieldY + int(math.Floor(p.Y*g.scaleY))
}

// toWorld maps a screen cell center to world space.
func (g *Game) toWorld(x, y int) core.Vec2 {
	return core.V(
		(float64(x-g.fieldX)+0.5)/g.scaleX,
		(float64(y-g.fieldY)+0.5)/g.scaleY,
	)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.ctx == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionRestart) {
		switch g.ctx.Lifecycle().Phase() {
		case lifecycle.Won:
			g.ctx.Continue()
			g.clearAim()
		case lifecycle.Lost:
			g.Reset(core.RuntimeConfig{
				Seed:     g.rng.Int63(),
				ScreenW:  g.screenW,
				ScreenH:  g.screenH,
				TickRate: int(time.Second / g.dt),
			})
		}
		return core.StepResult{State: g.State()}
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	var ein engine.Input
	if g.ctx.Lifecycle().Phase() == lifecycle.Playing {
		ein = g.pointer(in)
	}
	g.advance(ein)
	return core.StepResult{State: g.State()}
}

// advance runs one simulation tick with an already resolved pointer sample.
func (g *Game) advance(ein engine.Input) {
	g.ctx.Tick(ein, g.dt)
	g.adjustDifficulty()
}

// adjustDifficulty shortens the time between row shifts as the run progresses.
func (g *Game) adjustDifficulty() {
	if g.difficulty == nil || !g.difficulty.IsEnabled() {
		return
	}
	lc := g.ctx.Lifecycle()
	n := g.difficulty.TurnsPerShift(g.baseTurns, g.ctx.Score(), lc.Turns())
	if n != lc.Config().TurnsPerShift {
		lc.SetTurnsPerShift(n)
	}
}

func (g *Game) clearAim() {
	g.mouseAiming = false
	g.keyAiming = false
	g.releaseNext = false
}

// pointer resolves mouse and keyboard aiming into the single sample the
// engine reads. Mouse activity wins over the keyboard cursor.
func (g *Game) pointer(in core.InputFrame) engine.Input {
	p := in.Pointer
	if p.Pressed || p.Released || g.mouseAiming {
		if p.Pressed {
			g.mouseAiming = true
			g.keyAiming = false
		}
		if p.Released {
			g.mouseAiming = false
		}
		return engine.Input{
			Pointer:  g.toWorld(p.X, p.Y),
			Valid:    p.Valid,
			Pressed:  p.Pressed,
			Released: p.Released,
		}
	}

	if in.Has(core.ActionLeft) {
		g.aimAngle = max(g.aimAngle-aimStep, -aimMaxAngle)
	}
	if in.Has(core.ActionRight) {
		g.aimAngle = min(g.aimAngle+aimStep, aimMaxAngle)
	}
	target := g.AimTarget()
	state := projectile.Loaded
	if pr := g.ctx.Projectile(); pr != nil {
		state = pr.State
	}

	switch {
	case g.releaseNext:
		g.releaseNext = false
		g.keyAiming = false
		return engine.Input{Pointer: target, Valid: true, Released: true}
	case in.Has(core.ActionFire) && state == projectile.Aiming:
		g.keyAiming = false
		return engine.Input{Pointer: target, Valid: true, Released: true}
	case in.Has(core.ActionFire) && state == projectile.Loaded:
		g.releaseNext = true
		return engine.Input{Pointer: target, Valid: true, Pressed: true}
	case (in.Has(core.ActionLeft) || in.Has(core.ActionRight)) && state == projectile.Loaded:
		g.keyAiming = true
		return engine.Input{Pointer: target, Valid: true, Pressed: true}
	case g.keyAiming:
		return engine.Input{Pointer: target, Valid: true}
	}
	return engine.Input{}
}

// AimTarget returns the world point the keyboard cursor aims at.
func (g *Game) AimTarget() core.Vec2 {
	dir := core.V(math.Sin(g.aimAngle), -math.Cos(g.aimAngle))
	return g.ctx.Launcher().Add(dir.Scale(aimReach))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.ctx == nil {
		return core.GameState{GameOver: true}
	}
	phase := g.ctx.Lifecycle().Phase()
	return core.GameState{
		Score:    g.ctx.Score(),
		Level:    g.ctx.Lifecycle().Level(),
		Turns:    g.ctx.Lifecycle().Turns(),
		GameOver: phase == lifecycle.Lost,
		Won:      phase == lifecycle.Won,
		Paused:   g.paused,
	}
}

// TakeBell reports and clears a pending sound request.
func (g *Game) TakeBell() bool {
	if g.fx.bells == 0 {
		return false
	}
	g.fx.bells = 0
	return true
}

// sink turns engine effects into platform signals.
type sink struct {
	engine.NopEffects
	bells int
	hud   engine.HUD
}

func (s *sink) PlayScore(int)              { s.bells++ }
func (s *sink) UpdateDisplay(h engine.HUD) { s.hud = h }
