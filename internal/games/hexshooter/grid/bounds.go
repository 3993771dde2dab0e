package grid

import (
	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
)

// Bounds is the bounding box of all occupied cells in axial, offset and
// world coordinates. World extents are taken at cell centers.
// An empty store has Empty set and every extent zero.
type Bounds struct {
	Empty     bool
	MinHex    hex.Hex
	MaxHex    hex.Hex
	MinOffset hex.Offset
	MaxOffset hex.Offset
	MinWorld  core.Vec2
	MaxWorld  core.Vec2
}

// ContainsWorld reports whether p lies within the world extents (inclusive).
func (b Bounds) ContainsWorld(p core.Vec2) bool {
	if b.Empty {
		return false
	}
	return p.X >= b.MinWorld.X && p.X <= b.MaxWorld.X &&
		p.Y >= b.MinWorld.Y && p.Y <= b.MaxWorld.Y
}

func computeBounds(cells map[hex.Hex]OccupantID, l hex.Layout, m hex.OffsetMode) Bounds {
	if len(cells) == 0 {
		return Bounds{Empty: true}
	}
	var b Bounds
	first := true
	for h := range cells {
		off := hex.ToOffset(h, m)
		w := l.ToWorld(h)
		if first {
			b.MinHex, b.MaxHex = h, h
			b.MinOffset, b.MaxOffset = off, off
			b.MinWorld, b.MaxWorld = w, w
			first = false
			continue
		}
		b.MinHex.Q = min(b.MinHex.Q, h.Q)
		b.MinHex.R = min(b.MinHex.R, h.R)
		b.MaxHex.Q = max(b.MaxHex.Q, h.Q)
		b.MaxHex.R = max(b.MaxHex.R, h.R)
		b.MinOffset.Col = min(b.MinOffset.Col, off.Col)
		b.MinOffset.Row = min(b.MinOffset.Row, off.Row)
		b.MaxOffset.Col = max(b.MaxOffset.Col, off.Col)
		b.MaxOffset.Row = max(b.MaxOffset.Row, off.Row)
		b.MinWorld.X = min(b.MinWorld.X, w.X)
		b.MinWorld.Y = min(b.MinWorld.Y, w.Y)
		b.MaxWorld.X = max(b.MaxWorld.X, w.X)
		b.MaxWorld.Y = max(b.MaxWorld.Y, w.Y)
	}
	return b
}
