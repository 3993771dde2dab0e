package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "hexshooter.yaml"

// LoadHexShooter loads the hex shooter configuration.
// Search order: customPath -> ~/.hexshooter/configs/hexshooter.yaml -> ./configs/hexshooter.yaml -> embedded default
//
// Fields missing from a file keep their default values. So do fields whose
// value has the wrong type; each of those is reported as a warning and the
// rest of the file still applies. Only unreadable files and YAML syntax
// errors are returned as errors, with the defaults.
func LoadHexShooter(customPath string) (HexShooterConfig, []string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultHexShooterConfig(), nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, warnings, err := decode(customPath, data)
		if err != nil {
			return DefaultHexShooterConfig(), nil, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, warnings, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if c, warnings, ok := parseFile(userCfgPath); ok {
			return c, warnings, nil
		}
	}

	// Try local configs directory
	if c, warnings, ok := parseFile(filepath.Join("configs", fileName)); ok {
		return c, warnings, nil
	}

	// Use embedded default YAML
	cfg, warnings, err := decode(fileName, defaultHexShooterYAML)
	if err != nil {
		return DefaultHexShooterConfig(), nil, nil // Fallback to hardcoded if embed fails
	}
	return cfg, warnings, nil
}

func parseFile(path string) (HexShooterConfig, []string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HexShooterConfig{}, nil, false
	}
	cfg, warnings, err := decode(path, data)
	if err != nil {
		return HexShooterConfig{}, nil, false
	}
	return cfg, warnings, true
}

// decode unmarshals data over the defaults. A *yaml.TypeError leaves the
// mistyped fields at their defaults and keeps everything else.
func decode(path string, data []byte) (HexShooterConfig, []string, error) {
	cfg := DefaultHexShooterConfig()
	err := yaml.Unmarshal(data, &cfg)

	var typeErr *yaml.TypeError
	switch {
	case err == nil:
		return cfg, nil, nil
	case errors.As(err, &typeErr):
		warnings := make([]string, 0, len(typeErr.Errors))
		for _, e := range typeErr.Errors {
			warnings = append(warnings, fmt.Sprintf("%s: %s, using default", filepath.Base(path), e))
		}
		return cfg, warnings, nil
	default:
		return HexShooterConfig{}, nil, err
	}
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexshooter", "configs", fileName)
}

// Marshal renders a configuration as YAML.
func Marshal(cfg HexShooterConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// ApplyHexShooterPreset modifies the config based on a difficulty preset.
func ApplyHexShooterPreset(cfg *HexShooterConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Settings.TotalColors = 4
		cfg.Settings.TurnsPerShift = 7
	case DifficultyHard:
		cfg.Settings.TotalColors = 6
		cfg.Settings.TurnsPerShift = 3
	}
}
