package cluster

import (
	"testing"
	"time"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/grid"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

func newStore(t *testing.T, balls map[hex.Hex]species.Species) *grid.Store {
	t.Helper()
	s := grid.New(grid.Config{
		Layout:      hex.NewLayout(1, core.V(0, 0)),
		Mode:        hex.OddRow,
		Cols:        7,
		TotalColors: species.DefaultTotal,
	})
	for h, sp := range balls {
		if _, err := s.Insert(h, sp); err != nil {
			t.Fatalf("Insert(%v): %v", h, err)
		}
	}
	return s
}

func TestRedTriangleClearedBlueKept(t *testing.T) {
	blue := hex.H(4, 2)
	s := newStore(t, map[hex.Hex]species.Species{
		hex.H(0, 0):  species.Red,
		hex.H(1, 0):  species.Red,
		hex.H(1, -1): species.Red,
		blue:         species.Blue,
	})
	res := NewResolver(false).Resolve(s, []hex.Hex{hex.H(0, 0)})
	if len(res.Matched) != 3 {
		t.Fatalf("expected 3 matched balls, got %d", len(res.Matched))
	}
	for _, r := range res.Matched {
		if r.Species != species.Red {
			t.Errorf("matched a %v ball at %v", r.Species, r.Cell)
		}
	}
	occ, ok := s.At(blue)
	if !ok || occ.DespawnRequested {
		t.Error("the blue ball must be left alone")
	}
	if len(res.Groups) != 1 || res.Groups[0] != 3 {
		t.Errorf("Groups = %v, expected [3]", res.Groups)
	}
}

func TestSmallGroupNeverCleared(t *testing.T) {
	s := newStore(t, map[hex.Hex]species.Species{
		hex.H(0, 0): species.Green,
		hex.H(1, 0): species.Green,
		hex.H(2, 0): species.Blue,
	})
	res := NewResolver(true).Resolve(s, []hex.Hex{hex.H(0, 0), hex.H(1, 0)})
	if len(res.Removed()) != 0 {
		t.Errorf("a pair must not be cleared, got %+v", res.Removed())
	}
	for _, occ := range s.Occupants() {
		if occ.DespawnRequested {
			t.Errorf("%v was marked", occ.Cell)
		}
	}
}

func TestFindClusterVisitsOnceAndStaysConnected(t *testing.T) {
	balls := map[hex.Hex]species.Species{}
	for q := 0; q < 5; q++ {
		for r := 0; r < 4; r++ {
			balls[hex.H(q, r)] = species.Yellow
		}
	}
	balls[hex.H(2, 1)] = species.Red
	balls[hex.H(9, 9)] = species.Yellow
	s := newStore(t, balls)

	members, visited := FindCluster(s, hex.H(0, 0), SameSpecies(s, hex.H(0, 0)))
	if len(members) != 19 {
		t.Errorf("expected 19 yellow members, got %d", len(members))
	}
	seen := make(map[hex.Hex]bool)
	for _, m := range members {
		if seen[m] {
			t.Fatalf("%v returned twice", m)
		}
		seen[m] = true
		if m == hex.H(9, 9) {
			t.Error("unreachable ball returned as member")
		}
		if !visited[m] {
			t.Errorf("member %v missing from visited", m)
		}
	}
	if !visited[hex.H(2, 1)] {
		t.Error("rejected neighbor should be reported as visited")
	}
	if seen[hex.H(2, 1)] {
		t.Error("different species must not join the group")
	}
}

func TestFindClusterEmptyOrigin(t *testing.T) {
	s := newStore(t, nil)
	members, visited := FindCluster(s, hex.H(0, 0), Live)
	if len(members) != 0 || len(visited) != 0 {
		t.Error("an empty origin yields nothing")
	}
}

func TestFloatingDropAfterMatch(t *testing.T) {
	// Row 0 is the frontier. The greens hang from it and hold up the red
	// pair, which holds up the blue ball. A third red clears the pair and
	// the blue ball loses its support.
	s := newStore(t, map[hex.Hex]species.Species{
		hex.H(2, 0):  species.Green,
		hex.H(3, 0):  species.Green,
		hex.H(0, 1):  species.Red,
		hex.H(1, 1):  species.Red,
		hex.H(0, 2):  species.Blue,
		hex.H(-1, 2): species.Red,
	})
	s.SetLastActiveRow(0)

	res := NewResolver(true).Resolve(s, []hex.Hex{hex.H(-1, 2)})
	if len(res.Matched) != 3 {
		t.Fatalf("expected 3 matched, got %d", len(res.Matched))
	}
	if len(res.Floating) != 1 || res.Floating[0].Cell != hex.H(0, 2) || !res.Floating[0].Floating {
		t.Fatalf("expected the blue ball to float, got %+v", res.Floating)
	}
	if occ, _ := s.At(hex.H(3, 0)); occ.DespawnRequested {
		t.Error("anchored ball must stay")
	}
}

func TestFloatingDisabled(t *testing.T) {
	s := newStore(t, map[hex.Hex]species.Species{
		hex.H(0, 1): species.Red,
		hex.H(1, 1): species.Red,
		hex.H(2, 1): species.Red,
		hex.H(0, 2): species.Blue,
	})
	res := NewResolver(false).Resolve(s, []hex.Hex{hex.H(1, 1)})
	if len(res.Floating) != 0 {
		t.Errorf("floating drop is off, got %+v", res.Floating)
	}
}

func TestFindFloatingClustersIgnoresSpecies(t *testing.T) {
	s := newStore(t, map[hex.Hex]species.Species{
		hex.H(0, 0): species.Red,
		hex.H(0, 1): species.Blue,
		hex.H(5, 3): species.Green,
		hex.H(6, 3): species.Cyan,
	})
	floating := FindFloatingClusters(s)
	if len(floating) != 1 || len(floating[0]) != 2 {
		t.Fatalf("expected one floating pair, got %v", floating)
	}
}

func TestProjectileOriginCarried(t *testing.T) {
	s := newStore(t, map[hex.Hex]species.Species{
		hex.H(0, 0): species.Purple,
		hex.H(1, 0): species.Purple,
	})
	id, _ := s.Insert(hex.H(2, 0), species.Purple)
	occ, _ := s.Occupant(id)
	occ.ProjectileOrigin = true

	res := NewResolver(false).Resolve(s, []hex.Hex{hex.H(2, 0)})
	found := false
	for _, r := range res.Matched {
		if r.ID == id {
			found = r.ProjectileOrigin
		}
	}
	if !found {
		t.Error("removal of the shot ball should carry its marker")
	}
}

func TestSeedsBatchedIntoOneGroup(t *testing.T) {
	s := newStore(t, map[hex.Hex]species.Species{
		hex.H(0, 0): species.Red,
		hex.H(1, 0): species.Red,
		hex.H(2, 0): species.Red,
	})
	res := NewResolver(false).Resolve(s, []hex.Hex{hex.H(0, 0), hex.H(2, 0), hex.H(1, 0)})
	if len(res.Groups) != 1 || len(res.Matched) != 3 {
		t.Errorf("three seeds in one group should clear it once: %+v", res)
	}
}

func TestCheckCooldownBatches(t *testing.T) {
	c := NewCheckCooldown(50 * time.Millisecond)
	c.Request(hex.H(0, 0))
	c.Request(hex.H(1, 0))
	c.Request(hex.H(0, 0))
	if seeds, ok := c.Advance(20 * time.Millisecond); ok || seeds != nil {
		t.Fatal("fired before the delay")
	}
	c.Request(hex.H(2, 0))
	seeds, ok := c.Advance(30 * time.Millisecond)
	if !ok || len(seeds) != 3 {
		t.Fatalf("Advance = %v, %v; expected 3 deduplicated seeds", seeds, ok)
	}
	if c.Armed() || c.Pending() != 0 {
		t.Error("cooldown should be idle after firing")
	}
	if _, ok := c.Advance(time.Second); ok {
		t.Error("an idle cooldown never fires")
	}
}

func TestCheckCooldownZeroDelay(t *testing.T) {
	c := NewCheckCooldown(0)
	c.Request(hex.H(4, 4))
	if seeds, ok := c.Advance(0); !ok || len(seeds) != 1 {
		t.Errorf("zero delay should fire immediately, got %v, %v", seeds, ok)
	}
}
