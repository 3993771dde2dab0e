package hex

// OffsetMode selects which row parity is pushed half a cell right
// when converting to offset (col,row) coordinates.
type OffsetMode uint8

const (
	OddRow  OffsetMode = iota // odd rows sit half a cell right of even rows
	EvenRow                   // even rows sit half a cell right of odd rows
)

func (m OffsetMode) String() string {
	switch m {
	case OddRow:
		return "odd"
	case EvenRow:
		return "even"
	default:
		return "unknown"
	}
}

// ParseOffsetMode converts a config string to an OffsetMode.
func ParseOffsetMode(s string) (OffsetMode, bool) {
	switch s {
	case "odd", "odd-r", "odd_row":
		return OddRow, true
	case "even", "even-r", "even_row":
		return EvenRow, true
	default:
		return OddRow, false
	}
}

// Offset is a rectangular (col,row) coordinate.
type Offset struct {
	Col int
	Row int
}

// parity returns 0 or 1 for any integer, including negative rows.
func parity(r int) int {
	return r & 1
}

// ToOffset converts an axial cell to offset coordinates.
func ToOffset(h Hex, m OffsetMode) Offset {
	var col int
	if m == EvenRow {
		col = h.Q + (h.R+parity(h.R))/2
	} else {
		col = h.Q + (h.R-parity(h.R))/2
	}
	return Offset{Col: col, Row: h.R}
}

// FromOffset converts offset coordinates back to an axial cell.
func FromOffset(col, row int, m OffsetMode) Hex {
	var q int
	if m == EvenRow {
		q = col - (row+parity(row))/2
	} else {
		q = col - (row-parity(row))/2
	}
	return Hex{Q: q, R: row}
}

// Shifted reports whether a row sits half a cell right of the field's left edge.
// Such rows hold one ball fewer so every row fits between the side walls.
func Shifted(row int, m OffsetMode) bool {
	if m == EvenRow {
		return parity(row) == 0
	}
	return parity(row) == 1
}

// ColumnRange returns the inclusive range of valid columns for a row
// of a field that is cols balls wide.
func ColumnRange(row, cols int, m OffsetMode) (lo, hi int) {
	hi = cols - 1
	if Shifted(row, m) {
		hi--
	}
	return 0, hi
}

// ValidColumn reports whether col may hold a ball on the given row.
func ValidColumn(col, row, cols int, m OffsetMode) bool {
	lo, hi := ColumnRange(row, cols, m)
	return col >= lo && col <= hi
}

// ModeOrigin returns the horizontal origin adjustment that keeps column 0 of
// unshifted rows at the same world X in both modes.
func ModeOrigin(l Layout, m OffsetMode) float64 {
	if m == EvenRow {
		return l.CellWidth() / 2
	}
	return 0
}
