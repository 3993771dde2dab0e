// Package species defines ball species and the palette that picks them.
package species

import (
	"strings"

	"github.com/vovakirdan/hexshooter/internal/core"
)

// Species is the color family of a ball. Balls only match their own species.
type Species uint8

const (
	Red Species = iota
	Green
	Blue
	Yellow
	Purple
	Orange
	Cyan
	Count // Sentinel value for iteration
)

// DefaultTotal is the number of species in play unless configured otherwise.
const DefaultTotal = 5

// String returns the string representation of a species.
func (s Species) String() string {
	switch s {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	case Purple:
		return "purple"
	case Orange:
		return "orange"
	case Cyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// Char returns a single character for ASCII dumps.
func (s Species) Char() rune {
	switch s {
	case Red:
		return 'R'
	case Green:
		return 'G'
	case Blue:
		return 'B'
	case Yellow:
		return 'Y'
	case Purple:
		return 'P'
	case Orange:
		return 'O'
	case Cyan:
		return 'C'
	default:
		return '?'
	}
}

// Color maps a species to a screen color.
func (s Species) Color() core.Color {
	switch s {
	case Red:
		return core.ColorRed
	case Green:
		return core.ColorGreen
	case Blue:
		return core.ColorBlue
	case Yellow:
		return core.ColorYellow
	case Purple:
		return core.ColorMagenta
	case Orange:
		return core.ColorOrange
	case Cyan:
		return core.ColorCyan
	default:
		return core.ColorWhite
	}
}

// Valid reports whether s is a real species.
func (s Species) Valid() bool {
	return s < Count
}

// Parse converts a name or single letter to a Species.
// Returns Red and false if the string is not recognized.
func Parse(str string) (Species, bool) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "red", "r":
		return Red, true
	case "green", "g":
		return Green, true
	case "blue", "b":
		return Blue, true
	case "yellow", "y":
		return Yellow, true
	case "purple", "p":
		return Purple, true
	case "orange", "o":
		return Orange, true
	case "cyan", "c":
		return Cyan, true
	default:
		return Red, false
	}
}

// All returns every species in declaration order.
func All() []Species {
	out := make([]Species, 0, Count)
	for s := Species(0); s < Count; s++ {
		out = append(out, s)
	}
	return out
}

// Active returns the first total species, the ones a game with that many
// colors may spawn. total is clamped to [1, Count].
func Active(total int) []Species {
	return All()[:core.Clamp(total, 1, int(Count))]
}
