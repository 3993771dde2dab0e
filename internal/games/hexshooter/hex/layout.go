package hex

import (
	"math"

	"github.com/vovakirdan/hexshooter/internal/core"
)

var sqrt3 = math.Sqrt(3)

// Layout maps hex cells to world space. Orientation is always pointy-top.
// Size is the distance from a cell center to any of its corners.
type Layout struct {
	Size   float64
	Origin core.Vec2
}

// NewLayout returns a layout for touching balls of the given radius:
// neighboring centers are exactly 2*radius apart.
func NewLayout(ballRadius float64, origin core.Vec2) Layout {
	return Layout{Size: 2 * ballRadius / sqrt3, Origin: origin}
}

// CellWidth is the horizontal distance between two cells on the same row.
func (l Layout) CellWidth() float64 {
	return sqrt3 * l.Size
}

// RowHeight is the vertical distance between two adjacent rows.
func (l Layout) RowHeight() float64 {
	return 1.5 * l.Size
}

// ToWorld returns the world-space center of a cell.
func (l Layout) ToWorld(h Hex) core.Vec2 {
	x := l.Size * (sqrt3*float64(h.Q) + sqrt3/2*float64(h.R))
	y := l.Size * (1.5 * float64(h.R))
	return core.Vec2{X: x + l.Origin.X, Y: y + l.Origin.Y}
}

// FromWorld returns the cell containing the world position, rounding to
// the nearest hex center.
func (l Layout) FromWorld(p core.Vec2) Hex {
	px := (p.X - l.Origin.X) / l.Size
	py := (p.Y - l.Origin.Y) / l.Size
	q := sqrt3/3*px - py/3
	r := 2.0 / 3.0 * py
	return round(q, r)
}

// round snaps fractional axial coordinates to the nearest cell using cube rounding.
func round(fq, fr float64) Hex {
	fs := -fq - fr
	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)

	dq := math.Abs(q - fq)
	dr := math.Abs(r - fr)
	ds := math.Abs(s - fs)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}
	return Hex{Q: int(q), R: int(r)}
}

// Translate returns the layout moved by delta in world space.
func (l Layout) Translate(delta core.Vec2) Layout {
	l.Origin = l.Origin.Add(delta)
	return l
}
