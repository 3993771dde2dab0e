// Package grid is the authoritative hex-cell to occupant mapping of the field.
//
// The Store owns every settled ball through an Arena and indexes them by
// axial cell. Bounds are cached and recomputed lazily on the first read
// after a mutation.
package grid

import (
	"errors"
	"sort"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

var (
	// ErrCellOccupied is returned when placing a ball on a taken cell.
	ErrCellOccupied = errors.New("grid: cell occupied")
	// ErrStaleOccupant is returned for handles that no longer resolve.
	ErrStaleOccupant = errors.New("grid: stale occupant")
)

// Config describes the shape of a field.
type Config struct {
	Layout      hex.Layout
	Mode        hex.OffsetMode
	Cols        int // balls per unshifted row
	TotalColors int
}

// Neighbor is an occupied neighboring cell.
type Neighbor struct {
	Cell hex.Hex
	ID   OccupantID
}

// Store maps cells to occupants.
type Store struct {
	arena Arena
	cells map[hex.Hex]OccupantID

	layout     hex.Layout
	baseOrigin core.Vec2
	mode       hex.OffsetMode

	lastActiveRow int
	totalColors   int
	initCols      int

	bounds Bounds
	dirty  bool
}

// New creates an empty store.
func New(cfg Config) *Store {
	return &Store{
		cells:       make(map[hex.Hex]OccupantID),
		layout:      cfg.Layout,
		baseOrigin:  cfg.Layout.Origin,
		mode:        cfg.Mode,
		totalColors: cfg.TotalColors,
		initCols:    cfg.Cols,
		bounds:      Bounds{Empty: true},
	}
}

// Layout returns the current cell layout.
func (s *Store) Layout() hex.Layout { return s.layout }

// Mode returns the offset indexing mode.
func (s *Store) Mode() hex.OffsetMode { return s.mode }

// InitCols returns the number of balls in an unshifted row.
func (s *Store) InitCols() int { return s.initCols }

// TotalColors returns the number of species in play.
func (s *Store) TotalColors() int { return s.totalColors }

// LastActiveRow returns the frontier row index.
func (s *Store) LastActiveRow() int { return s.lastActiveRow }

// SetLastActiveRow moves the frontier.
func (s *Store) SetLastActiveRow(r int) { s.lastActiveRow = r }

// Len returns the number of occupied cells.
func (s *Store) Len() int { return len(s.cells) }

// IsEmpty reports whether no cell is occupied.
func (s *Store) IsEmpty() bool { return len(s.cells) == 0 }

// TranslateLayout moves the layout origin by delta, used by row shifts.
func (s *Store) TranslateLayout(delta core.Vec2) {
	s.layout = s.layout.Translate(delta)
	s.dirty = true
}

// WorldOf returns the world-space center of a cell under the current layout.
func (s *Store) WorldOf(h hex.Hex) core.Vec2 {
	return s.layout.ToWorld(h)
}

// CellAt returns the cell containing a world position.
func (s *Store) CellAt(p core.Vec2) hex.Hex {
	return s.layout.FromWorld(p)
}

// ValidCell reports whether the cell's column is legal for its row parity.
func (s *Store) ValidCell(h hex.Hex) bool {
	off := hex.ToOffset(h, s.mode)
	return hex.ValidColumn(off.Col, off.Row, s.initCols, s.mode)
}

// Get returns the occupant ID at a cell.
func (s *Store) Get(h hex.Hex) (OccupantID, bool) {
	id, ok := s.cells[h]
	return id, ok
}

// At returns the occupant at a cell.
func (s *Store) At(h hex.Hex) (*Occupant, bool) {
	id, ok := s.cells[h]
	if !ok {
		return nil, false
	}
	return s.arena.Get(id)
}

// Occupant resolves a handle. Stale handles return false.
func (s *Store) Occupant(id OccupantID) (*Occupant, bool) {
	return s.arena.Get(id)
}

// Insert creates a new occupant of the given species at h.
func (s *Store) Insert(h hex.Hex, sp species.Species) (OccupantID, error) {
	if _, taken := s.cells[h]; taken {
		return OccupantID{}, ErrCellOccupied
	}
	id := s.arena.Alloc(Occupant{Species: sp, Cell: h})
	s.cells[h] = id
	s.dirty = true
	return id, nil
}

// Set places an existing occupant at h, releasing its previous cell.
func (s *Store) Set(h hex.Hex, id OccupantID) error {
	occ, ok := s.arena.Get(id)
	if !ok {
		return ErrStaleOccupant
	}
	if cur, taken := s.cells[h]; taken {
		if cur == id {
			return nil
		}
		return ErrCellOccupied
	}
	if prev, ok := s.cells[occ.Cell]; ok && prev == id {
		delete(s.cells, occ.Cell)
	}
	occ.Cell = h
	s.cells[h] = id
	s.dirty = true
	return nil
}

// Remove drops the occupant at h and returns its final value.
func (s *Store) Remove(h hex.Hex) (Occupant, bool) {
	id, ok := s.cells[h]
	if !ok {
		return Occupant{}, false
	}
	delete(s.cells, h)
	s.dirty = true
	occ, ok := s.arena.Get(id)
	if !ok {
		return Occupant{}, false
	}
	out := *occ
	s.arena.Free(id)
	return out, true
}

// NeighborsPresent returns the occupied neighbors of h in direction order.
func (s *Store) NeighborsPresent(h hex.Hex) []Neighbor {
	out := make([]Neighbor, 0, 6)
	for _, n := range h.Neighbors() {
		if id, ok := s.cells[n]; ok {
			out = append(out, Neighbor{Cell: n, ID: id})
		}
	}
	return out
}

// EmptyNeighbors returns the free neighbors of h in direction order.
func (s *Store) EmptyNeighbors(h hex.Hex) []hex.Hex {
	out := make([]hex.Hex, 0, 6)
	for _, n := range h.Neighbors() {
		if _, ok := s.cells[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// Dirty reports whether bounds need recomputing.
func (s *Store) Dirty() bool { return s.dirty }

// RecomputeBounds rescans every occupied cell.
func (s *Store) RecomputeBounds() {
	s.bounds = computeBounds(s.cells, s.layout, s.mode)
	s.dirty = false
}

// Bounds returns current bounds, recomputing them first if dirty.
func (s *Store) Bounds() Bounds {
	if s.dirty {
		s.RecomputeBounds()
	}
	return s.bounds
}

// Clear drops every occupant and restores the initial layout and frontier.
func (s *Store) Clear() {
	s.arena.Reset()
	clear(s.cells)
	s.layout.Origin = s.baseOrigin
	s.lastActiveRow = 0
	s.bounds = Bounds{Empty: true}
	s.dirty = false
}

// Cells returns occupied cells ordered by row then column.
func (s *Store) Cells() []hex.Hex {
	out := make([]hex.Hex, 0, len(s.cells))
	for h := range s.cells {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].R != out[j].R {
			return out[i].R < out[j].R
		}
		return out[i].Q < out[j].Q
	})
	return out
}

// Occupants returns every occupant in Cells order.
func (s *Store) Occupants() []*Occupant {
	cells := s.Cells()
	out := make([]*Occupant, 0, len(cells))
	for _, h := range cells {
		if occ, ok := s.At(h); ok {
			out = append(out, occ)
		}
	}
	return out
}

// ActiveSpecies returns the species of balls that are not being removed,
// in declaration order.
func (s *Store) ActiveSpecies() []species.Species {
	var seen [species.Count]bool
	for _, id := range s.cells {
		occ, ok := s.arena.Get(id)
		if !ok || occ.DespawnRequested || !occ.Species.Valid() {
			continue
		}
		seen[occ.Species] = true
	}
	out := make([]species.Species, 0, species.Count)
	for sp, ok := range seen {
		if ok {
			out = append(out, species.Species(sp))
		}
	}
	return out
}
