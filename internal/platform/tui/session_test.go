package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/registry"
	"github.com/vovakirdan/hexshooter/internal/storage"
)

// difficultyGame records the preset the session hands it.
type difficultyGame struct {
	stubGame
	preset string
}

func (g *difficultyGame) SetDifficulty(p string) { g.preset = p }

var lastCreated *difficultyGame

func init() {
	registry.Register("stub", func() registry.Game {
		lastCreated = &difficultyGame{stubGame: stubGame{endAfter: 1000}}
		return lastCreated
	})
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	if !strings.Contains(m.View(), "Stub") {
		t.Fatal("menu should list the registered game")
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight}) // normal -> easy
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatal("enter should start the game")
	}
	if lastCreated.preset != "easy" {
		t.Errorf("preset = %q, want easy", lastCreated.preset)
	}

	m = sessionUpdate(t, m, TickMsg{})
	if !strings.Contains(m.View(), "stub") {
		t.Error("game view should be shown while playing")
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Fatal("esc should return to the menu without ending the session")
	}
	if m.menu.Difficulty() != "easy" {
		t.Errorf("menu should remember the difficulty, got %q", m.menu.Difficulty())
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view should be shown")
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Error("esc on the scoreboard should return to the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil || !next.(SessionModel).quitting {
		t.Error("q should end the session")
	}
}

func TestScoreboardToggleRuns(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun(storage.Run{GameID: "stub", Score: 120, Level: 2, Turns: 9, Outcome: storage.OutcomeLost}); err != nil {
		t.Fatal(err)
	}

	sb := NewScoreboardModel(store, 100, 30)
	if sb.currentGameID() != "stub" {
		t.Fatalf("current game = %q", sb.currentGameID())
	}
	if len(sb.scores) != 1 || sb.scores[0].Score != 120 {
		t.Errorf("scores = %+v, want the saved run's score", sb.scores)
	}
	if !strings.Contains(sb.summary, "best 120") || !strings.Contains(sb.summary, "level 2") {
		t.Errorf("summary = %q", sb.summary)
	}

	next, _ := sb.Update(runeKey('v'))
	sb = next.(ScoreboardModel)
	if !sb.showRuns || len(sb.runs) != 1 || sb.runs[0].Level != 2 {
		t.Errorf("runs view = %v %+v", sb.showRuns, sb.runs)
	}
	if !strings.Contains(sb.View(), "RECENT RUNS") {
		t.Error("title should switch to recent runs")
	}
}
