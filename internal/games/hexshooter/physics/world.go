package physics

import (
	"math"

	"github.com/vovakirdan/hexshooter/internal/core"
)

type shape uint8

const (
	shapeCircle shape = iota
	shapePlane
)

// CircleDef describes a circle body.
type CircleDef struct {
	Position    core.Vec2
	Velocity    core.Vec2
	Radius      float64
	Kind        Kind
	Mass        float64 // ignored unless Dynamic; <= 0 means 1
	Damping     float64 // linear damping per second
	Restitution float64
	Layer       Layer
	Mask        Layer // layers this body collides with
}

// PlaneDef describes a half-plane wall. Bodies are kept on the side the
// normal points to.
type PlaneDef struct {
	Point       core.Vec2
	Normal      core.Vec2
	Kind        Kind
	Restitution float64
	Layer       Layer
	Mask        Layer
}

type body struct {
	id    BodyID
	shape shape
	kind  Kind

	pos    core.Vec2
	vel    core.Vec2
	force  core.Vec2
	normal core.Vec2 // planes only
	radius float64   // circles only

	invMass     float64
	damping     float64
	restitution float64
	layer       Layer
	mask        Layer
}

func (b *body) inverseMass() float64 {
	if b.kind != Dynamic {
		return 0
	}
	return b.invMass
}

type pair struct {
	a, b BodyID
}

func makePair(a, b BodyID) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a: a, b: b}
}

// Config tunes the reference world.
type Config struct {
	// ContactSkin is how far two shapes must separate before a contact ends.
	ContactSkin float64
	// MaxSubsteps bounds the substeps used to avoid tunneling.
	MaxSubsteps int
}

// DefaultWorldConfig returns the settings used by the game.
func DefaultWorldConfig() Config {
	return Config{ContactSkin: 0.02, MaxSubsteps: 16}
}

// World is the reference Collaborator implementation.
type World struct {
	cfg    Config
	bodies []*body // indexed by BodyID; removed bodies are nil
	active map[pair]bool
	events []Event
	live   int
}

var _ Collaborator = (*World)(nil)

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	if cfg.MaxSubsteps < 1 {
		cfg.MaxSubsteps = 1
	}
	return &World{
		cfg:    cfg,
		bodies: []*body{nil},
		active: make(map[pair]bool),
	}
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return w.live
}

func (w *World) get(id BodyID) *body {
	if int(id) <= 0 || int(id) >= len(w.bodies) {
		return nil
	}
	return w.bodies[id]
}

func (w *World) add(b *body) BodyID {
	b.id = BodyID(len(w.bodies))
	w.bodies = append(w.bodies, b)
	w.live++
	return b.id
}

// AddCircle adds a circle body.
func (w *World) AddCircle(def CircleDef) BodyID {
	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}
	return w.add(&body{
		shape:       shapeCircle,
		kind:        def.Kind,
		pos:         def.Position,
		vel:         def.Velocity,
		radius:      def.Radius,
		invMass:     1 / mass,
		damping:     def.Damping,
		restitution: def.Restitution,
		layer:       def.Layer,
		mask:        def.Mask,
	})
}

// AddPlane adds a half-plane wall.
func (w *World) AddPlane(def PlaneDef) BodyID {
	return w.add(&body{
		shape:       shapePlane,
		kind:        def.Kind,
		pos:         def.Point,
		normal:      def.Normal.Normalize(),
		restitution: def.Restitution,
		layer:       def.Layer,
		mask:        def.Mask,
	})
}

// Remove deletes a body. Contacts it took part in end immediately.
func (w *World) Remove(id BodyID) {
	b := w.get(id)
	if b == nil {
		return
	}
	for _, p := range w.sortedActive() {
		if p.a == id || p.b == id {
			delete(w.active, p)
			w.events = append(w.events, Event{Kind: CollisionEnded, A: p.a, B: p.b})
		}
	}
	w.bodies[id] = nil
	w.live--
}

// Events returns and clears the pending contact events.
func (w *World) Events() []Event {
	out := w.events
	w.events = nil
	return out
}

func (w *World) Position(id BodyID) (core.Vec2, bool) {
	if b := w.get(id); b != nil {
		return b.pos, true
	}
	return core.Vec2{}, false
}

func (w *World) SetPosition(id BodyID, p core.Vec2) {
	if b := w.get(id); b != nil {
		b.pos = p
	}
}

func (w *World) Velocity(id BodyID) (core.Vec2, bool) {
	if b := w.get(id); b != nil {
		return b.vel, true
	}
	return core.Vec2{}, false
}

func (w *World) SetVelocity(id BodyID, v core.Vec2) {
	if b := w.get(id); b != nil && b.kind != Static {
		b.vel = v
	}
}

// AddForce accumulates a force applied during the next Step.
func (w *World) AddForce(id BodyID, f core.Vec2) {
	if b := w.get(id); b != nil && b.kind == Dynamic {
		b.force = b.force.Add(f)
	}
}

func (w *World) SetKind(id BodyID, k Kind) {
	b := w.get(id)
	if b == nil {
		return
	}
	b.kind = k
	if k == Static {
		b.vel = core.Vec2{}
	}
	b.force = core.Vec2{}
}

func (w *World) Kind(id BodyID) (Kind, bool) {
	if b := w.get(id); b != nil {
		return b.kind, true
	}
	return 0, false
}

func (w *World) Layer(id BodyID) (Layer, bool) {
	if b := w.get(id); b != nil {
		return b.layer, true
	}
	return LayerNone, false
}

// Step integrates forces once, then moves bodies in substeps small
// enough that no circle travels more than half its radius per substep.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	maxTravel := 0.0
	minRadius := math.Inf(1)
	for _, b := range w.bodies {
		if b == nil {
			continue
		}
		if b.kind == Dynamic {
			b.vel = b.vel.Add(b.force.Scale(b.invMass * dt))
			if b.damping > 0 {
				b.vel = b.vel.Scale(1 / (1 + b.damping*dt))
			}
			b.force = core.Vec2{}
		}
		if b.shape == shapeCircle && b.kind != Static {
			maxTravel = max(maxTravel, b.vel.Len()*dt)
			minRadius = min(minRadius, b.radius)
		}
	}

	steps := 1
	if maxTravel > 0 && minRadius > 0 && !math.IsInf(minRadius, 1) {
		steps = core.Clamp(int(math.Ceil(maxTravel/(0.5*minRadius))), 1, w.cfg.MaxSubsteps)
	}
	h := dt / float64(steps)
	for i := 0; i < steps; i++ {
		for _, b := range w.bodies {
			if b == nil || b.kind == Static {
				continue
			}
			b.pos = b.pos.Add(b.vel.Scale(h))
		}
		w.solveContacts()
	}
}
