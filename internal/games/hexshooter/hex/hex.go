// Package hex converts between axial hex coordinates, offset (col,row)
// coordinates and world positions for a pointy-top hex layout.
//
// Axial coordinates follow the (q, r) convention; the third cube coordinate
// is derived as s = -q - r. Row index r grows downward, matching world Y.
package hex

import "fmt"

// Hex is a cell position in axial coordinates.
type Hex struct {
	Q int
	R int
}

// H is a convenience constructor for Hex.
func H(q, r int) Hex {
	return Hex{Q: q, R: r}
}

// S returns the implicit third cube coordinate.
func (h Hex) S() int {
	return -h.Q - h.R
}

// String returns a string representation of the coordinate.
func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// Add returns the sum of two coordinates.
func (h Hex) Add(o Hex) Hex {
	return Hex{Q: h.Q + o.Q, R: h.R + o.R}
}

// Distance returns the number of steps between two cells.
func (h Hex) Distance(o Hex) int {
	dq := abs(h.Q - o.Q)
	dr := abs(h.R - o.R)
	ds := abs(h.S() - o.S())
	return max(dq, dr, ds)
}

// Directions are the six neighbor offsets, clockwise starting east.
var Directions = [6]Hex{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbor returns the adjacent cell in direction d (0..5).
func (h Hex) Neighbor(d int) Hex {
	return h.Add(Directions[((d%6)+6)%6])
}

// Neighbors returns all six geometric neighbors in Directions order.
func (h Hex) Neighbors() [6]Hex {
	var out [6]Hex
	for i, d := range Directions {
		out[i] = h.Add(d)
	}
	return out
}

// Scale multiplies both coordinates by k.
func (h Hex) Scale(k int) Hex {
	return Hex{Q: h.Q * k, R: h.R * k}
}

// Ring returns the cells at exactly radius steps from center, walking
// around from the south-west corner. Radius 0 yields the center alone.
func Ring(center Hex, radius int) []Hex {
	if radius <= 0 {
		return []Hex{center}
	}
	out := make([]Hex, 0, 6*radius)
	h := center.Add(Directions[4].Scale(radius))
	for side := 0; side < 6; side++ {
		for step := 0; step < radius; step++ {
			out = append(out, h)
			h = h.Neighbor(side)
		}
	}
	return out
}

// IsNeighbor reports whether o is adjacent to h.
func (h Hex) IsNeighbor(o Hex) bool {
	return h.Distance(o) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
