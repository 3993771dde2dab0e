package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/storage"
)

// stubGame ends the run after a fixed number of steps.
type stubGame struct {
	steps    int
	endAfter int
	resets   int
	resized  [2]int
	bell     bool
	last     core.InputFrame
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.steps * 10, Level: 1, Turns: g.steps, GameOver: g.steps >= g.endAfter}
}

func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *stubGame) TakeBell() bool {
	b := g.bell
	g.bell = false
	return b
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(TickMsg{})
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelSavesLostRunOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{endAfter: 3}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 42})

	for range 6 {
		m, _ = tick(t, m)
	}

	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.Outcome != storage.OutcomeLost || r.Seed != 42 || r.Score == 0 || r.RunID == "" {
		t.Errorf("run = %+v", r)
	}
	if m.LastRun() == nil || m.LastRun().RunID != r.RunID {
		t.Error("LastRun should match the stored run")
	}
}

func TestModelRestartStartsNewRun(t *testing.T) {
	store := openStore(t)
	game := &stubGame{endAfter: 2}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 7})
	for range 3 {
		m, _ = tick(t, m)
	}

	next, _ := m.Update(runeKey('r'))
	m = next.(Model)
	m, _ = tick(t, m)
	if game.resets != 2 {
		t.Fatalf("resets = %d, want 2", game.resets)
	}
	for range 3 {
		m, _ = tick(t, m)
	}

	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].Seed == runs[1].Seed {
		t.Errorf("runs = %+v, want two runs with distinct seeds", runs)
	}
}

func TestModelQuitRecordsRun(t *testing.T) {
	store := openStore(t)
	game := &stubGame{endAfter: 100}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 1})
	m, _ = tick(t, m)

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
	if r := m.LastRun(); r == nil || r.Outcome != storage.OutcomeQuit {
		t.Errorf("LastRun = %+v, want a quit run", r)
	}
}

func TestModelBackToMenu(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 1})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("esc should go back to the menu, not quit")
	}
}

func TestModelForwardsInput(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 1})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	next, _ = m.Update(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	m, _ = tick(t, m)

	if !game.last.Has(core.ActionFire) {
		t.Error("space should reach the game as fire")
	}
	if p := game.last.Pointer; !p.Pressed || p.X != 3 || p.Y != 4 {
		t.Errorf("pointer = %+v", p)
	}

	m, _ = tick(t, m)
	if game.last.Has(core.ActionFire) || game.last.Pointer.Pressed {
		t.Error("input edges should clear after a tick")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 1})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if game.resets != 1 {
		t.Errorf("resize reset the game %d times", game.resets-1)
	}
	if game.resized != [2]int{100, 30} {
		t.Errorf("resized = %v", game.resized)
	}
	if !strings.Contains(m.View(), "stub") {
		t.Error("view should render the game")
	}
}

func TestModelBell(t *testing.T) {
	var buf bytes.Buffer
	game := &stubGame{endAfter: 100, bell: true}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 1000, Seed: 1}).WithBell(&buf)

	_, cmd := tick(t, m)
	runCmd(cmd)
	if buf.String() != "\a" {
		t.Errorf("bell output = %q", buf.String())
	}
}

// runCmd executes a command and any batch it expands to.
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c)
		}
	}
}
