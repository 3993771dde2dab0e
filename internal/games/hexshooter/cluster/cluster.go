// Package cluster finds same-species groups and unsupported components on a grid.
package cluster

import (
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/grid"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
)

// MinClusterSize is the smallest group that is cleared.
const MinClusterSize = 3

// Predicate decides whether a neighbor joins the group being filled.
type Predicate func(occ *grid.Occupant) bool

// SameSpecies accepts live balls of the origin's species.
func SameSpecies(s *grid.Store, origin hex.Hex) Predicate {
	occ, ok := s.At(origin)
	if !ok {
		return func(*grid.Occupant) bool { return false }
	}
	sp := occ.Species
	return func(o *grid.Occupant) bool {
		return o.Species == sp && !o.DespawnRequested
	}
}

// Live accepts every ball not already marked for removal.
func Live(o *grid.Occupant) bool {
	return !o.DespawnRequested
}

// FindCluster flood-fills from origin across occupied neighbors accepted by
// member. It returns the members in visit order and every cell examined,
// members and rejected neighbors alike. The origin must itself satisfy
// member, otherwise both results are empty.
func FindCluster(s *grid.Store, origin hex.Hex, member Predicate) ([]hex.Hex, map[hex.Hex]bool) {
	visited := make(map[hex.Hex]bool)
	occ, ok := s.At(origin)
	if !ok || !member(occ) {
		return nil, visited
	}

	members := []hex.Hex{origin}
	visited[origin] = true
	stack := []hex.Hex{origin}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range s.NeighborsPresent(cur) {
			if visited[n.Cell] {
				continue
			}
			visited[n.Cell] = true
			o, ok := s.Occupant(n.ID)
			if !ok || !member(o) {
				continue
			}
			members = append(members, n.Cell)
			stack = append(stack, n.Cell)
		}
	}
	return members, visited
}

// FindFloatingClusters partitions the live balls into connected components,
// ignoring species, and returns those with no member on the frontier row.
// Components are produced in row-then-column order of their first cell.
func FindFloatingClusters(s *grid.Store) [][]hex.Hex {
	frontier := s.LastActiveRow()
	seen := make(map[hex.Hex]bool)
	var floating [][]hex.Hex
	for _, h := range s.Cells() {
		if seen[h] {
			continue
		}
		occ, ok := s.At(h)
		if !ok || !Live(occ) {
			seen[h] = true
			continue
		}
		members, visited := FindCluster(s, h, Live)
		for c := range visited {
			if o, ok := s.At(c); ok && Live(o) {
				seen[c] = true
			}
		}
		anchored := false
		for _, m := range members {
			if m.R <= frontier {
				anchored = true
				break
			}
		}
		if !anchored {
			floating = append(floating, members)
		}
	}
	return floating
}
