package lifecycle

import (
	"math"
	"testing"

	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

const dt = 1.0 / 60

func runShift(t *testing.T, c *Controller) (moved float64, ticks int) {
	t.Helper()
	for ticks = 1; ticks < 10000; ticks++ {
		d, done := c.AdvanceShift(dt)
		moved += d
		if done {
			return moved, ticks
		}
	}
	t.Fatal("shift never completed")
	return 0, 0
}

func TestFiveTurnsOneShiftOneSpawn(t *testing.T) {
	c := New(DefaultConfig())
	if c.MoveCooldown() != 5 {
		t.Fatalf("countdown starts at %d, expected 5", c.MoveCooldown())
	}
	shifts := 0
	for i := 0; i < 5; i++ {
		if c.AddTurn() {
			shifts++
		}
		if i < 4 && c.PendingShifts() != 0 {
			t.Fatalf("shift queued early after %d turns", i+1)
		}
	}
	if shifts != 1 || c.PendingShifts() != 1 {
		t.Fatalf("expected one shift after 5 turns, got %d", shifts)
	}
	if c.MoveCooldown() != 5 {
		t.Errorf("countdown should restart at 5, got %d", c.MoveCooldown())
	}

	rowsBefore := c.RowsLeft()
	plan, ok := c.StartShift(1.5)
	if !ok || !plan.SpawnRow {
		t.Fatalf("StartShift = %+v, %v; expected a shift with a new row", plan, ok)
	}
	if _, again := c.StartShift(1.5); again {
		t.Error("a second shift must not start while one is animating")
	}
	moved, _ := runShift(t, c)
	if math.Abs(moved-1.5) > 1e-9 {
		t.Errorf("shift moved %v, expected exactly one row height", moved)
	}
	if c.Shifting() {
		t.Error("shift should be finished")
	}
	if c.RowsLeft() != rowsBefore-1 {
		t.Errorf("rows left = %d, expected %d", c.RowsLeft(), rowsBefore-1)
	}
	if _, ok := c.StartShift(1.5); ok {
		t.Error("no more shifts are due")
	}
}

func TestShiftRemainingTracksAdvance(t *testing.T) {
	c := New(DefaultConfig())
	if c.ShiftRemaining() != 0 {
		t.Fatalf("no shift running, remaining = %v", c.ShiftRemaining())
	}
	for i := 0; i < 5; i++ {
		c.AddTurn()
	}
	if _, ok := c.StartShift(1.5); !ok {
		t.Fatal("shift should start")
	}
	if c.ShiftRemaining() != 1.5 {
		t.Fatalf("remaining = %v, expected a full row", c.ShiftRemaining())
	}
	d, _ := c.AdvanceShift(dt)
	if math.Abs(c.ShiftRemaining()-(1.5-d)) > 1e-9 {
		t.Errorf("remaining = %v after moving %v", c.ShiftRemaining(), d)
	}
	runShift(t, c)
	if c.ShiftRemaining() != 0 {
		t.Errorf("finished shift left %v", c.ShiftRemaining())
	}
}

func TestShiftWithoutRowsLeft(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalRows = 1
	cfg.TurnsPerShift = 1
	c := New(cfg)

	c.AddTurn()
	plan, _ := c.StartShift(1)
	if !plan.SpawnRow {
		t.Fatal("first shift should bring the only row")
	}
	runShift(t, c)

	c.AddTurn()
	plan, ok := c.StartShift(1)
	if !ok || plan.SpawnRow {
		t.Errorf("shift without rows left = %+v, %v; expected a shift with no row", plan, ok)
	}
}

func TestEndlessAlwaysSpawns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endless = true
	cfg.TotalRows = 1
	cfg.TurnsPerShift = 1
	c := New(cfg)
	for i := 0; i < 4; i++ {
		c.AddTurn()
		plan, ok := c.StartShift(1)
		if !ok || !plan.SpawnRow {
			t.Fatalf("endless shift %d = %+v, %v", i, plan, ok)
		}
		runShift(t, c)
	}
}

func TestLevelRowsGrow(t *testing.T) {
	c := New(DefaultConfig())
	if c.LevelRows(1) != 5 || c.LevelRows(3) != 7 {
		t.Errorf("LevelRows = %d, %d; expected 5, 7", c.LevelRows(1), c.LevelRows(3))
	}
	cfg := DefaultConfig()
	cfg.TotalRows = 250
	c = New(cfg)
	if c.LevelRows(10) != MaxRows {
		t.Errorf("LevelRows should cap at %d, got %d", MaxRows, c.LevelRows(10))
	}
}

func TestWinOnceAndWrap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartLevel = 1
	cfg.MaxLevel = 3
	c := New(cfg)
	c.BeginLevel(3)

	if c.CheckWin(true, 2) {
		t.Fatal("out-balls still animating must delay the win")
	}
	if c.CheckWin(false, 0) {
		t.Fatal("a non-empty field is not a win")
	}
	wins := 0
	for i := 0; i < 3; i++ {
		if c.CheckWin(true, 0) {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("expected one win transition, got %d", wins)
	}
	if c.Phase() != Won {
		t.Errorf("phase = %v", c.Phase())
	}
	if c.Level() != 1 {
		t.Errorf("level should wrap to 1, got %d", c.Level())
	}
	if c.AddTurn() {
		t.Error("turns are not counted after the level ended")
	}
}

func TestGameOverOnce(t *testing.T) {
	c := New(DefaultConfig())
	if c.CheckGameOver(10, 20) {
		t.Fatal("field above the line is not game over")
	}
	if !c.CheckGameOver(20, 20) {
		t.Fatal("touching the line is game over")
	}
	if c.CheckGameOver(30, 20) || c.Phase() != Lost {
		t.Error("game over must fire once")
	}
	if c.CheckWin(true, 0) {
		t.Error("a lost level cannot be won")
	}
}

func TestBeginLevelResets(t *testing.T) {
	c := New(DefaultConfig())
	c.AddTurn()
	c.AddTurn()
	c.CheckGameOver(100, 1)
	c.BeginLevel(2)
	if c.Turns() != 0 || c.MoveCooldown() != 5 || c.Phase() != Playing || c.Level() != 2 {
		t.Errorf("BeginLevel did not reset: turns=%d cooldown=%d phase=%v level=%d",
			c.Turns(), c.MoveCooldown(), c.Phase(), c.Level())
	}
	if c.RowsLeft() != 6 {
		t.Errorf("level 2 should feed 6 rows, got %d", c.RowsLeft())
	}
}

func TestSetTurnsPerShift(t *testing.T) {
	c := New(DefaultConfig())
	c.SetTurnsPerShift(2)
	if c.MoveCooldown() != 2 {
		t.Errorf("countdown = %d, expected 2", c.MoveCooldown())
	}
	c.AddTurn()
	if !c.AddTurn() {
		t.Error("shift should be due after 2 turns")
	}
}

func TestRowCellsRespectParity(t *testing.T) {
	for _, m := range []hex.OffsetMode{hex.OddRow, hex.EvenRow} {
		for row := -3; row <= 3; row++ {
			cells := RowCells(row, 7, m)
			want := 7
			if hex.Shifted(row, m) {
				want = 6
			}
			if len(cells) != want {
				t.Errorf("mode %v row %d: %d cells, expected %d", m, row, len(cells), want)
			}
			for _, h := range cells {
				if h.R != row {
					t.Errorf("cell %v is not on row %d", h, row)
				}
			}
		}
	}
}

func TestRowSpawnsUsePresentSpecies(t *testing.T) {
	p := species.NewPalette(species.DefaultTotal, 3)
	present := []species.Species{species.Cyan}
	for _, s := range RowSpawns(-1, 7, hex.OddRow, p, present) {
		if s.Species != species.Cyan {
			t.Fatalf("spawned %v, only cyan is present", s.Species)
		}
	}
	initial := InitialSpawns(5, 7, hex.OddRow, p)
	if len(initial) != 7+6+7+6+7 {
		t.Errorf("initial grid has %d balls", len(initial))
	}
}
