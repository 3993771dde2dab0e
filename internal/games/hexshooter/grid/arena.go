package grid

import (
	"fmt"

	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

// OccupantID is a stable handle to an occupant in an Arena.
// The zero value never refers to a live occupant. A handle whose slot was
// freed and reused resolves to "not found" instead of the new occupant.
type OccupantID struct {
	index uint32
	gen   uint32
}

// Valid reports whether the handle was ever issued by an arena.
func (id OccupantID) Valid() bool {
	return id.gen != 0
}

func (id OccupantID) String() string {
	if !id.Valid() {
		return "occ(none)"
	}
	return fmt.Sprintf("occ(%d#%d)", id.index, id.gen)
}

// Occupant is a settled ball owning exactly one cell.
type Occupant struct {
	ID      OccupantID
	Species species.Species
	Cell    hex.Hex

	// DespawnRequested is set once, when a cluster pass decides to remove the ball.
	DespawnRequested bool
	// ReadyToDespawn is set the tick after DespawnRequested; the grid update
	// removes the occupant when it sees this flag.
	ReadyToDespawn bool
	// ProjectileOrigin marks the occupant created by the last snapped shot.
	ProjectileOrigin bool
	// Floating is set with DespawnRequested when the ball lost its support.
	Floating bool
}

type slot struct {
	gen  uint32
	used bool
	occ  Occupant
}

// Arena owns occupant values and hands out generational IDs.
type Arena struct {
	slots []slot
	free  []uint32
	live  int
}

// Alloc stores o and returns its new ID. o.ID is overwritten.
func (a *Arena) Alloc(o Occupant) OccupantID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.used = true
	id := OccupantID{index: idx, gen: s.gen}
	o.ID = id
	s.occ = o
	a.live++
	return id
}

// Get resolves a handle. Stale or zero handles return false.
func (a *Arena) Get(id OccupantID) (*Occupant, bool) {
	if !id.Valid() || int(id.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[id.index]
	if !s.used || s.gen != id.gen {
		return nil, false
	}
	return &s.occ, true
}

// Free releases the slot behind id. Returns false for stale handles.
func (a *Arena) Free(id OccupantID) bool {
	if _, ok := a.Get(id); !ok {
		return false
	}
	s := &a.slots[id.index]
	s.used = false
	s.occ = Occupant{}
	a.free = append(a.free, id.index)
	a.live--
	return true
}

// Len returns the number of live occupants.
func (a *Arena) Len() int {
	return a.live
}

// Reset frees every slot. Generations are kept so old handles stay stale.
func (a *Arena) Reset() {
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= 0; i-- {
		a.slots[i].used = false
		a.slots[i].occ = Occupant{}
		a.free = append(a.free, uint32(i))
	}
	a.live = 0
}
