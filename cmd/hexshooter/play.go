package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/platform/tui"
	"github.com/vovakirdan/hexshooter/internal/registry"
	"github.com/vovakirdan/hexshooter/internal/storage"
)

const defaultGame = "hexshooter"

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: hexshooter).

Controls:
  Mouse drag  - Aim, release to fire
  Left/Right  - Rotate the aim (A/D also work)
  Space/F     - Fire
  P           - Pause
  R           - Next level (after a clear) or restart (after game over)
  Esc/B       - Leave the game
  Q/Ctrl+C    - Quit
  Ctrl+S      - Save a text screenshot

Difficulty options:
  easy   - Fewer colors, more shots between row shifts
  normal - Default colors and shift rate, speeds up with score
  hard   - More colors, fewer shots between row shifts
  fixed  - Default settings, no speed-up

Examples:
  hexshooter play
  hexshooter play hexshooter_endless
  hexshooter play --difficulty hard
  hexshooter play --seed 42 --config ./my-hexshooter.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'hexshooter list' to see available modes", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	res, err := tui.Run(game, store, cfg)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	printRun(res.LastRun)
	return nil
}

// terminalSize returns the current terminal size, or 80x24 when unknown.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// openStore opens the scores database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// printRun reports a recorded run after the program leaves the alt screen.
func printRun(run *storage.Run) {
	if run == nil {
		return
	}
	fmt.Printf("Run %s: %d points, level %d, %d shots (%s)\n",
		run.RunID, run.Score, run.Level, run.Turns, run.Outcome)
}
