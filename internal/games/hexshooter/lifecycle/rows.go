package lifecycle

import (
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

// Spawn is a ball to place when generating rows.
type Spawn struct {
	Cell    hex.Hex
	Species species.Species
}

// RowCells returns the valid cells of a row, left to right.
func RowCells(row, cols int, m hex.OffsetMode) []hex.Hex {
	lo, hi := hex.ColumnRange(row, cols, m)
	out := make([]hex.Hex, 0, hi-lo+1)
	for col := lo; col <= hi; col++ {
		out = append(out, hex.FromOffset(col, row, m))
	}
	return out
}

// InitialSpawns fills rows 0..rows-1 with uniformly drawn species.
func InitialSpawns(rows, cols int, m hex.OffsetMode, p *species.Palette) []Spawn {
	var out []Spawn
	for r := 0; r < rows; r++ {
		for _, h := range RowCells(r, cols, m) {
			out = append(out, Spawn{Cell: h, Species: p.Random()})
		}
	}
	return out
}

// RowSpawns fills one new row, drawing only species still in the field.
func RowSpawns(row, cols int, m hex.OffsetMode, p *species.Palette, present []species.Species) []Spawn {
	cells := RowCells(row, cols, m)
	out := make([]Spawn, 0, len(cells))
	for _, h := range cells {
		out = append(out, Spawn{Cell: h, Species: p.PickRandom(present)})
	}
	return out
}
