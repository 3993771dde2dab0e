package cluster

import (
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/grid"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

// Removal is one ball marked for despawn by a resolution pass.
type Removal struct {
	ID               grid.OccupantID
	Cell             hex.Hex
	Species          species.Species
	ProjectileOrigin bool
	Floating         bool
}

// Result summarizes a resolution pass.
type Result struct {
	Matched  []Removal
	Floating []Removal
	// Groups is the size of every cleared same-species group.
	Groups []int
}

// Removed returns matched and floating removals together.
func (r Result) Removed() []Removal {
	out := make([]Removal, 0, len(r.Matched)+len(r.Floating))
	out = append(out, r.Matched...)
	return append(out, r.Floating...)
}

// Resolver applies the clearing policy.
type Resolver struct {
	MinSize      int
	DropFloating bool
}

// NewResolver returns a resolver with the default group size.
func NewResolver(dropFloating bool) Resolver {
	return Resolver{MinSize: MinClusterSize, DropFloating: dropFloating}
}

// Resolve flood-fills from every seed and marks each group of at least
// MinSize balls for despawn. When DropFloating is set and something was
// cleared, components left without frontier support are marked as well.
// Seeds that are empty, already marked or already part of an evaluated
// group are skipped. Marked balls stay in the store until the caller
// removes them.
func (rv Resolver) Resolve(s *grid.Store, seeds []hex.Hex) Result {
	minSize := rv.MinSize
	if minSize < 1 {
		minSize = MinClusterSize
	}
	var res Result
	decided := make(map[hex.Hex]bool)
	for _, seed := range seeds {
		if decided[seed] {
			continue
		}
		occ, ok := s.At(seed)
		if !ok || occ.DespawnRequested {
			continue
		}
		members, _ := FindCluster(s, seed, SameSpecies(s, seed))
		for _, m := range members {
			decided[m] = true
		}
		if len(members) < minSize {
			continue
		}
		res.Groups = append(res.Groups, len(members))
		res.Matched = append(res.Matched, mark(s, members, false)...)
	}

	if rv.DropFloating && len(res.Matched) > 0 {
		for _, comp := range FindFloatingClusters(s) {
			res.Floating = append(res.Floating, mark(s, comp, true)...)
		}
	}
	return res
}

func mark(s *grid.Store, cells []hex.Hex, floating bool) []Removal {
	out := make([]Removal, 0, len(cells))
	for _, h := range cells {
		occ, ok := s.At(h)
		if !ok || occ.DespawnRequested {
			continue
		}
		occ.DespawnRequested = true
		occ.Floating = floating
		out = append(out, Removal{
			ID:               occ.ID,
			Cell:             h,
			Species:          occ.Species,
			ProjectileOrigin: occ.ProjectileOrigin,
			Floating:         floating,
		})
	}
	return out
}
