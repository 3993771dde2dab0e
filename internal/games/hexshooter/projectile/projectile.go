// Package projectile turns the noisy contact stream of the flying ball
// into a single "ball has landed" decision.
//
// A shot moves through Loaded, Aiming, Flying and Snapped. While flying,
// two heuristics may ask for a snap: the ball is slow, or it moves against
// the direction it had at first contact. A cooldown started at first
// contact re-checks them at fixed checkpoints and forces a snap at its
// hard limit. The snapped guard makes the landing decision idempotent.
package projectile

import (
	"math"
	"time"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/physics"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

// State of a shot.
type State uint8

const (
	Loaded State = iota
	Aiming
	Flying
	Snapped
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Aiming:
		return "aiming"
	case Flying:
		return "flying"
	case Snapped:
		return "snapped"
	default:
		return "unknown"
	}
}

// Reason records which trigger landed the ball.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonSlow
	ReasonReversed
	ReasonHardLimit
)

func (r Reason) String() string {
	switch r {
	case ReasonSlow:
		return "slow"
	case ReasonReversed:
		return "reversed"
	case ReasonHardLimit:
		return "hard-limit"
	default:
		return "none"
	}
}

// Config tunes the shot.
type Config struct {
	Speed       float64 // launch speed, world units per second
	SlowSpeed   float64 // below this speed the ball counts as stopped
	ReversalDot float64 // direction dot product below this counts as reversed
	MinAimUp    float64 // minimum upward component of the normalized aim

	Checkpoints []time.Duration
	HardLimit   time.Duration
	// MaxFlight starts the cooldown even when no contact was ever reported.
	MaxFlight time.Duration
}

// DefaultConfig returns the tuning used by the game.
func DefaultConfig() Config {
	return Config{
		Speed:       40,
		SlowSpeed:   2,
		ReversalDot: 0,
		MinAimUp:    0.15,
		Checkpoints: []time.Duration{
			100 * time.Millisecond,
			250 * time.Millisecond,
			500 * time.Millisecond,
			1000 * time.Millisecond,
		},
		HardLimit: 2000 * time.Millisecond,
		MaxFlight: 6 * time.Second,
	}
}

// Decision is what a single signal asks the caller to do.
type Decision struct {
	Snap   bool   // first and only landing request
	Reason Reason // set together with Snap
	Stop   bool   // zero the body velocity now
}

// Projectile is the single live shot.
type Projectile struct {
	Species species.Species
	Body    physics.BodyID
	State   State

	AimOrigin core.Vec2
	AimVector core.Vec2

	// SnapVelocityCache is the unit flight direction just before the first
	// contact, zero before it.
	SnapVelocityCache core.Vec2

	cfg       Config
	cooldown  SnapCooldown
	contacted bool
	snapped   bool
	reason    Reason
	flight    time.Duration
	heading   core.Vec2 // last free-flight direction
}

// New creates a loaded projectile.
func New(sp species.Species, body physics.BodyID, cfg Config) *Projectile {
	return &Projectile{
		Species:  sp,
		Body:     body,
		State:    Loaded,
		cfg:      cfg,
		cooldown: NewSnapCooldown(cfg.Checkpoints, cfg.HardLimit),
	}
}

// IsSnapped reports whether the landing decision has been taken.
func (p *Projectile) IsSnapped() bool { return p.snapped }

// Reason returns why the ball landed.
func (p *Projectile) Reason() Reason { return p.reason }

// Cooldown exposes the safety-net timer.
func (p *Projectile) Cooldown() *SnapCooldown { return &p.cooldown }

// Press starts aiming from the ball's position. Ignored unless Loaded.
func (p *Projectile) Press(ballPos, pointer core.Vec2) bool {
	if p.State != Loaded {
		return false
	}
	p.State = Aiming
	p.AimOrigin = ballPos
	p.AimVector = pointer.Sub(ballPos)
	return true
}

// Drag updates the aim while Aiming.
func (p *Projectile) Drag(pointer core.Vec2) {
	if p.State == Aiming {
		p.AimVector = pointer.Sub(p.AimOrigin)
	}
}

// Release launches the ball and returns its velocity. A zero aim cancels
// back to Loaded.
func (p *Projectile) Release(pointer core.Vec2) (core.Vec2, bool) {
	if p.State != Aiming {
		return core.Vec2{}, false
	}
	p.AimVector = pointer.Sub(p.AimOrigin)
	dir := LaunchDirection(p.AimVector, p.cfg.MinAimUp)
	if dir.IsZero() {
		p.State = Loaded
		return core.Vec2{}, false
	}
	p.State = Flying
	p.flight = 0
	p.heading = dir
	return dir.Scale(p.cfg.Speed), true
}

// LaunchDirection normalizes an aim vector and lifts it so the shot always
// travels upward (negative Y) by at least minUp.
func LaunchDirection(aim core.Vec2, minUp float64) core.Vec2 {
	dir := aim.Normalize()
	if dir.IsZero() {
		return dir
	}
	if -dir.Y >= minUp {
		return dir
	}
	minUp = core.ClampF(minUp, 0, 1)
	side := 1.0
	if dir.X < 0 {
		side = -1
	}
	return core.V(side*math.Sqrt(1-minUp*minUp), -minUp)
}

// slow and reversed are the two independent heuristics.
func (p *Projectile) slow(v core.Vec2) bool {
	return v.Len() < p.cfg.SlowSpeed
}

func (p *Projectile) reversed(v core.Vec2) bool {
	if !p.contacted || p.SnapVelocityCache.IsZero() {
		return false
	}
	dir := v.Normalize()
	if dir.IsZero() {
		return false
	}
	return dir.Dot(p.SnapVelocityCache) < p.cfg.ReversalDot
}

func (p *Projectile) evaluate(v core.Vec2) Decision {
	switch {
	case p.slow(v):
		return p.snap(ReasonSlow)
	case p.reversed(v):
		return p.snap(ReasonReversed)
	}
	return Decision{}
}

func (p *Projectile) snap(r Reason) Decision {
	if p.snapped {
		return Decision{}
	}
	p.snapped = true
	p.reason = r
	p.State = Snapped
	return Decision{Snap: true, Reason: r}
}

// ContactStarted handles a collision-start against a snap surface
// (a settled ball or the ceiling). v is the body velocity at the event,
// which may already include the contact impulse. The heuristics run first;
// the first contact then caches the pre-contact heading, stops the ball and
// starts the cooldown.
func (p *Projectile) ContactStarted(v core.Vec2) Decision {
	if p.State != Flying || p.snapped {
		return Decision{}
	}
	d := p.evaluate(v)
	if !p.contacted {
		p.contacted = true
		p.SnapVelocityCache = p.heading
		if p.SnapVelocityCache.IsZero() {
			p.SnapVelocityCache = v.Normalize()
		}
		p.cooldown.Start()
		d.Stop = true
	}
	return d
}

// ContactEnded re-runs the heuristics when the ball separates from a surface.
func (p *Projectile) ContactEnded(v core.Vec2) Decision {
	if p.State != Flying || p.snapped {
		return Decision{}
	}
	return p.evaluate(v)
}

// Tick advances the flight clock and the cooldown. Until the first contact
// v also updates the heading cached at that contact.
func (p *Projectile) Tick(dt time.Duration, v core.Vec2) Decision {
	if p.State != Flying || p.snapped {
		return Decision{}
	}
	if !p.contacted {
		if dir := v.Normalize(); !dir.IsZero() {
			p.heading = dir
		}
	}
	p.flight += dt
	if !p.cooldown.Running() {
		if p.cfg.MaxFlight > 0 && p.flight >= p.cfg.MaxFlight {
			p.cooldown.Start()
		}
		return Decision{}
	}
	crossed, expired := p.cooldown.Advance(dt)
	if expired {
		return p.snap(ReasonHardLimit)
	}
	if crossed > 0 {
		return p.evaluate(v)
	}
	return Decision{}
}
