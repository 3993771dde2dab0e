// Package magnet pulls settled balls toward their neighbors and their own
// cell centers so clusters hold together visually after impacts.
// Nothing in the game rules reads it.
package magnet

import (
	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/physics"
)

// Config tunes the field.
type Config struct {
	Enabled      bool
	StrongRadius float64 // neighbors closer than this pull with StrongFactor
	StrongFactor float64
	WeakFactor   float64
	// AnchorFactor pulls each ball back toward its cell center, per unit of offset.
	AnchorFactor float64
}

// DefaultConfig returns the tuning for balls of the given radius.
func DefaultConfig(ballRadius float64) Config {
	return Config{
		Enabled:      true,
		StrongRadius: 2.2 * ballRadius,
		StrongFactor: 6,
		WeakFactor:   2,
		AnchorFactor: 20,
	}
}

// Force returns the cohesion force on a ball at pos given its neighbors'
// positions. Each group contributes the normalized sum of unit directions.
func Force(cfg Config, pos core.Vec2, neighbors []core.Vec2) core.Vec2 {
	var strong, weak core.Vec2
	for _, n := range neighbors {
		d := n.Sub(pos)
		dist := d.Len()
		if dist == 0 {
			continue
		}
		u := d.Scale(1 / dist)
		if dist <= cfg.StrongRadius {
			strong = strong.Add(u)
		} else {
			weak = weak.Add(u)
		}
	}
	return strong.Normalize().Scale(cfg.StrongFactor).Add(weak.Normalize().Scale(cfg.WeakFactor))
}

// Ball is a magnetically active body with the bodies of its live neighbors.
type Ball struct {
	Body      physics.BodyID
	Home      core.Vec2
	Neighbors []physics.BodyID
}

// Apply adds the cohesion force to every ball. Bodies that no longer
// exist are skipped.
func Apply(cfg Config, w physics.Collaborator, balls []Ball) int {
	if !cfg.Enabled {
		return 0
	}
	applied := 0
	pts := make([]core.Vec2, 0, 6)
	for _, b := range balls {
		pos, ok := w.Position(b.Body)
		if !ok {
			continue
		}
		pts = pts[:0]
		for _, n := range b.Neighbors {
			if p, ok := w.Position(n); ok {
				pts = append(pts, p)
			}
		}
		f := b.Home.Sub(pos).Scale(cfg.AnchorFactor)
		if len(pts) > 0 {
			f = f.Add(Force(cfg, pos, pts))
		}
		if f.IsZero() {
			continue
		}
		w.AddForce(b.Body, f)
		applied++
	}
	return applied
}
