// hexshooter is a hex-grid bubble shooter for the terminal.
//
// Usage:
//
//	hexshooter list              - List available modes
//	hexshooter play [mode]       - Play a mode (default: hexshooter)
//	hexshooter menu              - Start menu to pick a mode interactively
//	hexshooter serve             - Start SSH server for remote play
//	hexshooter scores <mode>     - Show high scores and recent runs
//	hexshooter sim               - Run a headless autoplayer and print a summary
//	hexshooter config            - Print the effective configuration as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.hexshooter/scores.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error (env HEXSHOOTER_LOG_LEVEL)
//	--strict              - Panic on internal inconsistencies
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexshooter/internal/config"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagStrict     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexshooter",
	Short: "Hex Shooter - a bubble shooter for your terminal",
	Long: `Hex Shooter is a hex-grid bubble shooter that runs in the terminal,
locally or over SSH.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  sim      - Run a headless autoplayer
  config   - Print the effective configuration

Examples:
  hexshooter play
  hexshooter play hexshooter_endless --difficulty hard
  hexshooter menu
  hexshooter serve --ssh :2222
  hexshooter sim --seed 42 --levels 3`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hexshooter/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "Panic on internal inconsistencies")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// setup validates global flags and wires the logger and game settings.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	log.SetDefault(logger)

	hexshooter.SetLogger(logger)
	hexshooter.SetConfigPath(flagConfig)
	hexshooter.SetDifficultyPreset(flagDifficulty)
	hexshooter.SetStrict(flagStrict)
	return nil
}

// newLogger builds the process logger from --log-level, HEXSHOOTER_LOG_LEVEL
// and --log-file. Full-screen commands should log to a file since stderr
// shares the terminal with the game.
func newLogger() (*log.Logger, error) {
	levelName := flagLogLevel
	if levelName == "" {
		levelName = os.Getenv("HEXSHOOTER_LOG_LEVEL")
	}
	level := log.WarnLevel
	if levelName != "" {
		parsed, err := log.ParseLevel(levelName)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
		}
		level = parsed
	}

	out := os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
	}

	return log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "hexshooter",
		Level:           level,
	}), nil
}
