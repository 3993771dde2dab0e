package species

import "math/rand"

// Palette draws species for new balls and projectiles.
type Palette struct {
	rng   *rand.Rand
	total int
}

// NewPalette creates a palette over the first total species.
func NewPalette(total int, seed int64) *Palette {
	return &Palette{
		rng:   rand.New(rand.NewSource(seed)),
		total: len(Active(total)),
	}
}

// Total returns the number of species the palette draws from.
func (p *Palette) Total() int {
	return p.total
}

// Random returns a uniform pick over the palette.
func (p *Palette) Random() Species {
	return Species(p.rng.Intn(p.total))
}

// PickRandom returns a uniform pick restricted to the species still present
// in the field, so a new projectile can always find a partner.
// An empty present list falls back to Random.
func (p *Palette) PickRandom(present []Species) Species {
	if len(present) == 0 {
		return p.Random()
	}
	return present[p.rng.Intn(len(present))]
}
