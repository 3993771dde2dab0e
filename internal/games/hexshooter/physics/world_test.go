package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/hexshooter/internal/core"
)

const dt = 1.0 / 60

func ball(pos, vel core.Vec2) CircleDef {
	return CircleDef{
		Position:    pos,
		Velocity:    vel,
		Radius:      0.5,
		Kind:        Dynamic,
		Restitution: 0,
		Layer:       LayerBall,
		Mask:        LayerAll,
	}
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestCollisionStartedOnceThenEnded(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	a := w.AddCircle(ball(core.V(0, 0), core.V(3, 0)))
	b := w.AddCircle(CircleDef{Position: core.V(2, 0), Radius: 0.5, Kind: Static, Layer: LayerBall, Mask: LayerAll})

	var all []Event
	for i := 0; i < 60; i++ {
		w.Step(dt)
		all = append(all, w.Events()...)
	}
	if got := countEvents(all, CollisionStarted); got != 1 {
		t.Fatalf("expected one start event, got %d (%v)", got, all)
	}
	if other, ok := all[0].Other(a); !ok || other != b {
		t.Errorf("event %v does not pair %d with %d", all[0], a, b)
	}

	w.SetVelocity(a, core.V(-3, 0))
	for i := 0; i < 30; i++ {
		w.Step(dt)
		all = append(all, w.Events()...)
	}
	if got := countEvents(all, CollisionEnded); got != 1 {
		t.Errorf("expected one end event, got %d", got)
	}
	if w.Touching(a, b) {
		t.Error("bodies should be separated")
	}
}

func TestStaticBodyDoesNotMove(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	w.AddCircle(ball(core.V(0, 0), core.V(5, 0)))
	wall := w.AddCircle(CircleDef{Position: core.V(1.5, 0), Radius: 0.5, Kind: Static, Layer: LayerBall, Mask: LayerAll})
	for i := 0; i < 30; i++ {
		w.Step(dt)
	}
	if p, _ := w.Position(wall); p != core.V(1.5, 0) {
		t.Errorf("static body moved to %v", p)
	}
}

func TestPlaneReflectsBall(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	w.AddPlane(PlaneDef{Point: core.V(0, 0), Normal: core.V(1, 0), Kind: Static, Restitution: 1, Layer: LayerWall, Mask: LayerAll})
	id := w.AddCircle(ball(core.V(2, 0), core.V(-6, 0)))
	for i := 0; i < 40; i++ {
		w.Step(dt)
	}
	v, _ := w.Velocity(id)
	if v.X <= 0 {
		t.Errorf("ball should bounce off the wall, velocity %v", v)
	}
	if math.Abs(v.X-6) > 1e-6 {
		t.Errorf("elastic wall should keep speed, got %v", v.X)
	}
	if p, _ := w.Position(id); p.X < 0.5-1e-9 {
		t.Errorf("ball penetrated the wall: %v", p)
	}
}

func TestLayerMaskFiltersContacts(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	ghost := ball(core.V(0, 0), core.V(2, 0))
	ghost.Layer = LayerProjectile
	ghost.Mask = LayerWall
	w.AddCircle(ghost)
	other := ball(core.V(1.5, 0), core.Vec2{})
	other.Mask = LayerBall
	w.AddCircle(other)
	for i := 0; i < 60; i++ {
		w.Step(dt)
	}
	if events := w.Events(); len(events) != 0 {
		t.Errorf("masked bodies produced events: %v", events)
	}
}

func TestRemoveEndsContacts(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	a := w.AddCircle(ball(core.V(0, 0), core.Vec2{}))
	b := w.AddCircle(ball(core.V(0.9, 0), core.Vec2{}))
	w.Step(dt)
	if !w.Touching(a, b) {
		t.Fatal("overlapping bodies should be touching")
	}
	w.Events()
	w.Remove(a)
	events := w.Events()
	if len(events) != 1 || events[0].Kind != CollisionEnded {
		t.Fatalf("expected a single end event, got %v", events)
	}
	if _, ok := w.Position(a); ok {
		t.Error("removed body should not resolve")
	}
	if w.Len() != 1 {
		t.Errorf("Len = %d, expected 1", w.Len())
	}
}

func TestFastBallDoesNotTunnel(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	w.AddCircle(CircleDef{Position: core.V(3, 0), Radius: 0.5, Kind: Static, Layer: LayerBall, Mask: LayerAll})
	id := w.AddCircle(ball(core.V(0, 0), core.V(120, 0)))
	w.Step(dt)
	if p, _ := w.Position(id); p.X > 3 {
		t.Errorf("fast ball passed through the obstacle: %v", p)
	}
}

func TestKinematicMovesAndPushes(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	k := w.AddCircle(CircleDef{Position: core.V(0, 0), Velocity: core.V(0, 2), Radius: 0.5, Kind: Kinematic, Layer: LayerBall, Mask: LayerAll})
	d := w.AddCircle(ball(core.V(0, 1.2), core.Vec2{}))
	for i := 0; i < 30; i++ {
		w.Step(dt)
	}
	kp, _ := w.Position(k)
	if math.Abs(kp.Y-1) > 1e-9 {
		t.Errorf("kinematic body at %v, expected y=1", kp)
	}
	dp, _ := w.Position(d)
	if dp.Y < kp.Y+1-1e-6 {
		t.Errorf("dynamic body was not pushed: %v vs %v", dp, kp)
	}
}

func TestForcesAndDamping(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	def := ball(core.V(0, 0), core.Vec2{})
	def.Damping = 2
	id := w.AddCircle(def)
	w.AddForce(id, core.V(60, 0))
	w.Step(dt)
	v1, _ := w.Velocity(id)
	if v1.X <= 0 {
		t.Fatalf("force should accelerate the ball, v=%v", v1)
	}
	w.Step(dt)
	v2, _ := w.Velocity(id)
	if v2.X >= v1.X {
		t.Errorf("damping should slow the ball once the force is gone: %v -> %v", v1, v2)
	}
}

func TestCast(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	wall := w.AddPlane(PlaneDef{Point: core.V(10, 0), Normal: core.V(-1, 0), Kind: Static, Layer: LayerWall, Mask: LayerAll})
	target := w.AddCircle(CircleDef{Position: core.V(5, 0), Radius: 0.5, Kind: Static, Layer: LayerBall, Mask: LayerAll})
	self := w.AddCircle(CircleDef{Position: core.V(0, 0), Radius: 0.5, Kind: Dynamic, Layer: LayerProjectile, Mask: LayerAll})

	hit, ok := w.Cast(0.5, core.V(0, 0), core.V(1, 0), 100, LayerBall|LayerWall)
	if !ok || hit.Body != target {
		t.Fatalf("expected the ball at x=5, got %+v, %v", hit, ok)
	}
	if math.Abs(hit.Distance-4) > 1e-9 {
		t.Errorf("hit distance = %v, expected 4", hit.Distance)
	}
	if hit.Normal.X >= 0 {
		t.Errorf("normal should face the caster, got %v", hit.Normal)
	}
	if hit.Body == self {
		t.Error("cast must not report the caster's own layer")
	}

	hit, ok = w.Cast(0.5, core.V(0, 0), core.V(1, 0), 100, LayerWall)
	if !ok || hit.Body != wall || math.Abs(hit.Distance-9.5) > 1e-9 {
		t.Errorf("wall cast = %+v, %v", hit, ok)
	}

	if _, ok := w.Cast(0.5, core.V(0, 0), core.V(1, 0), 3, LayerBall); ok {
		t.Error("hit beyond maxDist should be ignored")
	}
	if _, ok := w.Cast(0.5, core.V(0, 0), core.V(0, 1), 100, LayerAll&^LayerProjectile); ok {
		t.Error("cast into empty space should miss")
	}
}
