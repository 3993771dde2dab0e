// Package physics is the rigid-body collaborator of the shooter engine.
//
// The engine only depends on the Collaborator interface: it reads the
// collision event stream, issues shape casts and reads or writes body
// velocities and forces. World is the reference implementation used by
// the game and the tests: circles and half-plane walls, explicit Euler
// integration with substeps, and overlap resolution with restitution.
package physics

import "github.com/vovakirdan/hexshooter/internal/core"

// BodyID identifies a body inside a world. Zero means "no body".
type BodyID uint32

// Layer is a collision group bitmask.
type Layer uint32

const (
	LayerBall Layer = 1 << iota
	LayerProjectile
	LayerWall
	LayerCeiling

	LayerNone Layer = 0
	LayerAll  Layer = LayerBall | LayerProjectile | LayerWall | LayerCeiling
)

// Kind selects how a body is integrated.
type Kind uint8

const (
	Dynamic   Kind = iota // moved by velocity, forces and contacts
	Kinematic             // moved by velocity only, pushes dynamic bodies
	Static                // never moves
)

func (k Kind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

// EventKind distinguishes contact begin and end.
type EventKind uint8

const (
	CollisionStarted EventKind = iota
	CollisionEnded
)

func (k EventKind) String() string {
	if k == CollisionStarted {
		return "started"
	}
	return "ended"
}

// Event reports a change in contact between two bodies. A < B always.
type Event struct {
	Kind EventKind
	A, B BodyID
}

// Other returns the body in the pair that is not id, and whether id
// takes part in the event at all.
func (e Event) Other(id BodyID) (BodyID, bool) {
	switch id {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	default:
		return 0, false
	}
}

// Hit is the result of a successful shape cast.
type Hit struct {
	Body     BodyID
	Point    core.Vec2 // center of the cast circle at impact
	Normal   core.Vec2 // surface normal at impact, pointing toward the caster
	Distance float64
}

// Collaborator is everything the engine needs from a physics backend.
type Collaborator interface {
	// Events returns the contact changes produced since the last call.
	Events() []Event

	// Cast sweeps a circle of the given radius from origin along dir and
	// reports the first body whose layer intersects mask.
	Cast(radius float64, origin, dir core.Vec2, maxDist float64, mask Layer) (Hit, bool)

	Position(id BodyID) (core.Vec2, bool)
	SetPosition(id BodyID, p core.Vec2)
	Velocity(id BodyID) (core.Vec2, bool)
	SetVelocity(id BodyID, v core.Vec2)
	AddForce(id BodyID, f core.Vec2)
	SetKind(id BodyID, k Kind)
	Kind(id BodyID) (Kind, bool)
	Layer(id BodyID) (Layer, bool)

	AddCircle(def CircleDef) BodyID
	AddPlane(def PlaneDef) BodyID
	Remove(id BodyID)

	// Step integrates the world by dt seconds.
	Step(dt float64)
}
