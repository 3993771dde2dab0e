package magnet

import (
	"math"
	"testing"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/physics"
)

func TestForceGroups(t *testing.T) {
	cfg := DefaultConfig(1)
	tests := []struct {
		name      string
		neighbors []core.Vec2
		want      core.Vec2
	}{
		{"none", nil, core.Vec2{}},
		{"one strong", []core.Vec2{core.V(2, 0)}, core.V(cfg.StrongFactor, 0)},
		{"one weak", []core.Vec2{core.V(0, 5)}, core.V(0, cfg.WeakFactor)},
		{"balanced strong", []core.Vec2{core.V(2, 0), core.V(-2, 0)}, core.Vec2{}},
		{"strong and weak", []core.Vec2{core.V(-2, 0), core.V(0, -3)}, core.V(-cfg.StrongFactor, -cfg.WeakFactor)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Force(cfg, core.Vec2{}, tc.neighbors)
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Errorf("Force = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestApplySkipsMissingBodies(t *testing.T) {
	w := physics.NewWorld(physics.DefaultWorldConfig())
	mk := func(x float64) physics.BodyID {
		return w.AddCircle(physics.CircleDef{Position: core.V(x, 0), Radius: 1, Kind: physics.Dynamic, Layer: physics.LayerBall})
	}
	a, b := mk(0), mk(2)
	gone := mk(10)
	w.Remove(gone)

	n := Apply(DefaultConfig(1), w, []Ball{
		{Body: a, Home: core.V(0, 0), Neighbors: []physics.BodyID{b, gone}},
		{Body: gone, Home: core.V(10, 0), Neighbors: []physics.BodyID{a}},
	})
	if n != 1 {
		t.Fatalf("applied to %d balls, expected 1", n)
	}
	w.Step(1.0 / 60)
	if v, _ := w.Velocity(a); v.X <= 0 {
		t.Errorf("ball should be pulled toward its neighbor, v=%v", v)
	}
}

func TestDisabled(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.Enabled = false
	if n := Apply(cfg, physics.NewWorld(physics.DefaultWorldConfig()), []Ball{{Body: 1}}); n != 0 {
		t.Errorf("disabled field applied %d forces", n)
	}
}

func TestAnchorPullsHome(t *testing.T) {
	w := physics.NewWorld(physics.DefaultWorldConfig())
	id := w.AddCircle(physics.CircleDef{Position: core.V(1, 0), Radius: 1, Kind: physics.Dynamic, Layer: physics.LayerBall})
	if n := Apply(DefaultConfig(1), w, []Ball{{Body: id, Home: core.V(0, 0)}}); n != 1 {
		t.Fatalf("applied to %d balls, expected 1", n)
	}
	w.Step(1.0 / 60)
	if v, _ := w.Velocity(id); v.X >= 0 {
		t.Errorf("displaced ball should move back toward its cell, v=%v", v)
	}
}
