package grid

import (
	"errors"
	"testing"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

func newTestStore() *Store {
	return New(Config{
		Layout:      hex.NewLayout(1, core.V(1, 1)),
		Mode:        hex.OddRow,
		Cols:        7,
		TotalColors: species.DefaultTotal,
	})
}

func TestInsertGetRemoveRoundTrip(t *testing.T) {
	s := newTestStore()
	cells := []hex.Hex{hex.H(0, 0), hex.H(3, 0), hex.H(-1, 2), hex.H(2, 1)}
	ids := make(map[hex.Hex]OccupantID)
	for i, h := range cells {
		id, err := s.Insert(h, species.Species(i))
		if err != nil {
			t.Fatalf("Insert(%v): %v", h, err)
		}
		ids[h] = id
	}
	for _, h := range cells {
		got, ok := s.Get(h)
		if !ok || got != ids[h] {
			t.Errorf("Get(%v) = %v, %v; expected %v", h, got, ok, ids[h])
		}
	}
	for _, h := range cells {
		occ, ok := s.Remove(h)
		if !ok || occ.Cell != h {
			t.Errorf("Remove(%v) = %+v, %v", h, occ, ok)
		}
		if _, ok := s.Get(h); ok {
			t.Errorf("Get(%v) after Remove should miss", h)
		}
	}
	if !s.IsEmpty() {
		t.Errorf("store should be empty, has %d", s.Len())
	}
}

func TestInsertOccupiedCell(t *testing.T) {
	s := newTestStore()
	if _, err := s.Insert(hex.H(1, 1), species.Red); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Insert(hex.H(1, 1), species.Blue); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("expected ErrCellOccupied, got %v", err)
	}
	occ, _ := s.At(hex.H(1, 1))
	if occ.Species != species.Red {
		t.Errorf("occupant was overwritten: %v", occ.Species)
	}
}

func TestSetMovesOccupant(t *testing.T) {
	s := newTestStore()
	id, _ := s.Insert(hex.H(0, 0), species.Green)
	if err := s.Set(hex.H(1, 0), id); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(hex.H(0, 0)); ok {
		t.Error("old cell should be released")
	}
	occ, ok := s.At(hex.H(1, 0))
	if !ok || occ.ID != id || occ.Cell != hex.H(1, 0) {
		t.Errorf("moved occupant = %+v, %v", occ, ok)
	}
}

func TestStaleHandles(t *testing.T) {
	s := newTestStore()
	id, _ := s.Insert(hex.H(0, 0), species.Red)
	s.Remove(hex.H(0, 0))
	reused, _ := s.Insert(hex.H(2, 0), species.Blue)

	if _, ok := s.Occupant(id); ok {
		t.Error("stale handle must not resolve")
	}
	if err := s.Set(hex.H(4, 0), id); !errors.Is(err, ErrStaleOccupant) {
		t.Errorf("expected ErrStaleOccupant, got %v", err)
	}
	if occ, ok := s.Occupant(reused); !ok || occ.Species != species.Blue {
		t.Errorf("fresh handle should resolve, got %+v", occ)
	}
	if (OccupantID{}).Valid() {
		t.Error("zero handle must be invalid")
	}
}

func TestNeighborQueries(t *testing.T) {
	s := newTestStore()
	center := hex.H(2, 2)
	s.Insert(center, species.Red)
	s.Insert(center.Neighbor(0), species.Red)
	s.Insert(center.Neighbor(3), species.Blue)
	s.Insert(hex.H(8, 8), species.Blue)

	present := s.NeighborsPresent(center)
	if len(present) != 2 {
		t.Fatalf("expected 2 present neighbors, got %d", len(present))
	}
	if present[0].Cell != center.Neighbor(0) || present[1].Cell != center.Neighbor(3) {
		t.Errorf("unexpected neighbors %+v", present)
	}
	if empty := s.EmptyNeighbors(center); len(empty) != 4 {
		t.Errorf("expected 4 empty neighbors, got %d", len(empty))
	}
}

func TestBoundsLazyAndContaining(t *testing.T) {
	s := newTestStore()
	b := s.Bounds()
	if !b.Empty || b.MinWorld != (core.Vec2{}) || b.MaxWorld != (core.Vec2{}) {
		t.Errorf("empty store should report a zero box, got %+v", b)
	}

	cells := []hex.Hex{hex.H(0, 0), hex.H(5, 0), hex.H(-2, 4), hex.H(3, 3)}
	for _, h := range cells {
		s.Insert(h, species.Yellow)
	}
	if !s.Dirty() {
		t.Fatal("insert must mark bounds dirty")
	}
	b = s.Bounds()
	if s.Dirty() {
		t.Error("reading bounds must clear the dirty flag")
	}
	for _, h := range cells {
		if !b.ContainsWorld(s.WorldOf(h)) {
			t.Errorf("bounds %+v do not contain %v", b, h)
		}
	}
	if b.MinHex.R != 0 || b.MaxHex.R != 4 {
		t.Errorf("axial row extents = %d..%d, expected 0..4", b.MinHex.R, b.MaxHex.R)
	}

	s.Remove(hex.H(-2, 4))
	if !s.Dirty() {
		t.Error("remove must mark bounds dirty")
	}
	if got := s.Bounds().MaxHex.R; got != 3 {
		t.Errorf("max row after remove = %d, expected 3", got)
	}
}

func TestTranslateLayoutMovesBounds(t *testing.T) {
	s := newTestStore()
	s.Insert(hex.H(0, 0), species.Red)
	before := s.Bounds().MaxWorld.Y
	s.TranslateLayout(core.V(0, s.Layout().RowHeight()))
	after := s.Bounds().MaxWorld.Y
	if after <= before {
		t.Errorf("bounds did not move down: %v -> %v", before, after)
	}
}

func TestClearResetsOriginAndFrontier(t *testing.T) {
	s := newTestStore()
	origin := s.Layout().Origin
	s.Insert(hex.H(0, 0), species.Red)
	s.TranslateLayout(core.V(0, 5))
	s.SetLastActiveRow(-3)

	s.Clear()
	if !s.IsEmpty() || !s.Bounds().Empty {
		t.Error("Clear should drop every occupant")
	}
	if s.Layout().Origin != origin {
		t.Errorf("origin = %v, expected %v", s.Layout().Origin, origin)
	}
	if s.LastActiveRow() != 0 {
		t.Errorf("frontier = %d, expected 0", s.LastActiveRow())
	}
}

func TestCellsOrdered(t *testing.T) {
	s := newTestStore()
	for _, h := range []hex.Hex{hex.H(2, 1), hex.H(0, 1), hex.H(5, -1), hex.H(1, 0)} {
		s.Insert(h, species.Red)
	}
	want := []hex.Hex{hex.H(5, -1), hex.H(1, 0), hex.H(0, 1), hex.H(2, 1)}
	got := s.Cells()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Cells() = %v, expected %v", got, want)
		}
	}
}

func TestActiveSpeciesSkipsMarked(t *testing.T) {
	s := newTestStore()
	s.Insert(hex.H(0, 0), species.Blue)
	id, _ := s.Insert(hex.H(1, 0), species.Red)
	s.Insert(hex.H(2, 0), species.Blue)

	occ, _ := s.Occupant(id)
	occ.DespawnRequested = true

	got := s.ActiveSpecies()
	if len(got) != 1 || got[0] != species.Blue {
		t.Errorf("ActiveSpecies() = %v, expected [blue]", got)
	}
}

func TestValidCell(t *testing.T) {
	s := newTestStore()
	if !s.ValidCell(hex.FromOffset(6, 0, hex.OddRow)) {
		t.Error("column 6 of row 0 should be valid")
	}
	if s.ValidCell(hex.FromOffset(6, -1, hex.OddRow)) {
		t.Error("column 6 of a shifted row should be invalid")
	}
	if s.ValidCell(hex.FromOffset(-1, 0, hex.OddRow)) {
		t.Error("negative column should be invalid")
	}
}
