package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexshooter/internal/config"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration the next game would use, after the config search
path, --config and --difficulty have been applied and out-of-range values
replaced with their defaults. With --default, print the built-in defaults.

The output is a valid config file:
  hexshooter config --default > ~/.hexshooter/configs/hexshooter.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefault {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, warnings, err := hexshooter.LoadConfig()
	if err != nil {
		log.Warn("config not loaded, showing defaults", "err", err)
	}
	for _, w := range warnings {
		log.Warn("config value replaced", "detail", w)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
