package physics

import (
	"math"

	"github.com/vovakirdan/hexshooter/internal/core"
)

// Cast sweeps a circle along dir and returns the nearest hit.
// Bodies already overlapping the circle at origin are ignored.
func (w *World) Cast(radius float64, origin, dir core.Vec2, maxDist float64, mask Layer) (Hit, bool) {
	dir = dir.Normalize()
	if dir.IsZero() || maxDist <= 0 {
		return Hit{}, false
	}
	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, b := range w.bodies {
		if b == nil || b.layer&mask == 0 {
			continue
		}
		var t float64
		var ok bool
		switch b.shape {
		case shapeCircle:
			t, ok = sweepCircle(origin, dir, radius+b.radius, b.pos)
		case shapePlane:
			t, ok = sweepPlane(origin, dir, radius, b.pos, b.normal)
		}
		if !ok || t > maxDist || t >= best.Distance {
			continue
		}
		p := origin.Add(dir.Scale(t))
		normal := b.normal
		if b.shape == shapeCircle {
			normal = p.Sub(b.pos).Normalize()
		}
		best = Hit{Body: b.id, Point: p, Normal: normal, Distance: t}
		found = true
	}
	return best, found
}

// sweepCircle returns the smallest t >= 0 with |o + d*t - c| = r.
func sweepCircle(o, d core.Vec2, r float64, c core.Vec2) (float64, bool) {
	m := o.Sub(c)
	cc := m.LenSq() - r*r
	if cc <= 0 {
		return 0, false
	}
	b := m.Dot(d)
	if b >= 0 {
		return 0, false
	}
	disc := b*b - cc
	if disc < 0 {
		return 0, false
	}
	return -b - math.Sqrt(disc), true
}

// sweepPlane returns the travel at which a circle of radius r touches the plane.
func sweepPlane(o, d core.Vec2, r float64, p, n core.Vec2) (float64, bool) {
	side := o.Sub(p).Dot(n) - r
	if side < 0 {
		return 0, false
	}
	rate := d.Dot(n)
	if rate >= 0 {
		return 0, false
	}
	return side / -rate, true
}
