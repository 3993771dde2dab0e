package physics

import (
	"math"
	"sort"

	"github.com/vovakirdan/hexshooter/internal/core"
)

// contact is the geometric overlap between two bodies. n points from a to b.
type contact struct {
	a, b  *body
	n     core.Vec2
	depth float64 // positive when overlapping
}

func collides(a, b *body) bool {
	return a.mask&b.layer != 0 || b.mask&a.layer != 0
}

// overlap returns the signed overlap of two bodies. Two planes never touch.
func overlap(a, b *body) (contact, bool) {
	switch {
	case a.shape == shapeCircle && b.shape == shapeCircle:
		d := b.pos.Sub(a.pos)
		dist := d.Len()
		n := core.V(1, 0)
		if dist > 1e-12 {
			n = d.Scale(1 / dist)
		}
		return contact{a: a, b: b, n: n, depth: a.radius + b.radius - dist}, true
	case a.shape == shapePlane && b.shape == shapeCircle:
		side := b.pos.Sub(a.pos).Dot(a.normal)
		return contact{a: a, b: b, n: a.normal, depth: b.radius - side}, true
	case a.shape == shapeCircle && b.shape == shapePlane:
		side := a.pos.Sub(b.pos).Dot(b.normal)
		return contact{a: a, b: b, n: b.normal.Scale(-1), depth: a.radius - side}, true
	default:
		return contact{}, false
	}
}

// solveContacts resolves overlaps and updates the active contact set.
// Pairs are visited in ID order so results are deterministic.
func (w *World) solveContacts() {
	n := len(w.bodies)
	for i := 1; i < n; i++ {
		a := w.bodies[i]
		if a == nil {
			continue
		}
		for j := i + 1; j < n; j++ {
			b := w.bodies[j]
			if b == nil || !collides(a, b) {
				continue
			}
			if a.kind != Dynamic && b.kind != Dynamic {
				continue
			}
			c, ok := overlap(a, b)
			if !ok {
				continue
			}
			key := makePair(a.id, b.id)
			switch {
			case c.depth > 0:
				if !w.active[key] {
					w.active[key] = true
					w.events = append(w.events, Event{Kind: CollisionStarted, A: key.a, B: key.b})
				}
				resolve(c)
			case w.active[key] && c.depth < -w.cfg.ContactSkin:
				delete(w.active, key)
				w.events = append(w.events, Event{Kind: CollisionEnded, A: key.a, B: key.b})
			}
		}
	}
}

// resolve separates the bodies and applies a restitution impulse.
func resolve(c contact) {
	ia, ib := c.a.inverseMass(), c.b.inverseMass()
	total := ia + ib
	if total == 0 {
		return
	}
	c.a.pos = c.a.pos.Sub(c.n.Scale(c.depth * ia / total))
	c.b.pos = c.b.pos.Add(c.n.Scale(c.depth * ib / total))

	closing := c.b.vel.Sub(c.a.vel).Dot(c.n)
	if closing >= 0 {
		return
	}
	e := math.Max(c.a.restitution, c.b.restitution)
	j := -(1 + e) * closing / total
	c.a.vel = c.a.vel.Sub(c.n.Scale(j * ia))
	c.b.vel = c.b.vel.Add(c.n.Scale(j * ib))
}

func (w *World) sortedActive() []pair {
	out := make([]pair, 0, len(w.active))
	for p := range w.active {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].a != out[j].a {
			return out[i].a < out[j].a
		}
		return out[i].b < out[j].b
	})
	return out
}

// Touching reports whether two bodies are currently in contact.
func (w *World) Touching(a, b BodyID) bool {
	return w.active[makePair(a, b)]
}
