package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	var cfg HexShooterConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if want := DefaultHexShooterConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded config differs from defaults:\n got %+v\nwant %+v", cfg, want)
	}
}

func TestDefaultsAreNormal(t *testing.T) {
	cfg := DefaultHexShooterConfig()
	if w := cfg.Normalize(); len(w) != 0 {
		t.Errorf("defaults produced warnings: %v", w)
	}
}

func TestNormalize(t *testing.T) {
	def := DefaultHexShooterConfig()
	tests := []struct {
		name   string
		mutate func(*HexShooterConfig)
		check  func(HexShooterConfig) bool
		field  string
	}{
		{"colors too many", func(c *HexShooterConfig) { c.Settings.TotalColors = 9 },
			func(c HexShooterConfig) bool { return c.Settings.TotalColors == def.Settings.TotalColors }, "total_colors"},
		{"colors zero", func(c *HexShooterConfig) { c.Settings.TotalColors = 0 },
			func(c HexShooterConfig) bool { return c.Settings.TotalColors == def.Settings.TotalColors }, "total_colors"},
		{"narrow field", func(c *HexShooterConfig) { c.Settings.Columns = 2 },
			func(c HexShooterConfig) bool { return c.Settings.Columns == def.Settings.Columns }, "columns"},
		{"too many rows", func(c *HexShooterConfig) { c.Settings.TotalRows = 255 },
			func(c HexShooterConfig) bool { return c.Settings.TotalRows == def.Settings.TotalRows }, "total_rows"},
		{"rows shown", func(c *HexShooterConfig) { c.Settings.RowsShown = 7 },
			func(c HexShooterConfig) bool { return c.Settings.RowsShown == def.Settings.RowsShown }, "rows_shown"},
		{"no turns", func(c *HexShooterConfig) { c.Settings.TurnsPerShift = 0 },
			func(c HexShooterConfig) bool { return c.Settings.TurnsPerShift == def.Settings.TurnsPerShift }, "turns_per_shift"},
		{"offset mode", func(c *HexShooterConfig) { c.Settings.OffsetMode = "diagonal" },
			func(c HexShooterConfig) bool { return c.Settings.OffsetMode == "odd" }, "offset_mode"},
		{"bouncy walls", func(c *HexShooterConfig) { c.Physics.WallRestitution = 1.5 },
			func(c HexShooterConfig) bool { return c.Physics.WallRestitution == def.Physics.WallRestitution }, "wall_restitution"},
		{"unsorted checkpoints", func(c *HexShooterConfig) { c.Snap.CheckpointsMS = []int{500, 100} },
			func(c HexShooterConfig) bool { return reflect.DeepEqual(c.Snap.CheckpointsMS, def.Snap.CheckpointsMS) }, "checkpoints_ms"},
		{"max below start", func(c *HexShooterConfig) { c.Gameplay.StartLevel = 3; c.Gameplay.MaxLevel = 2 },
			func(c HexShooterConfig) bool { return c.Gameplay.MaxLevel == def.Gameplay.MaxLevel }, "max_level"},
		{"progression", func(c *HexShooterConfig) { c.Difficulty.Progression.Type = "time" },
			func(c HexShooterConfig) bool { return c.Difficulty.Progression.Type == "score" }, "progression.type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultHexShooterConfig()
			tt.mutate(&cfg)
			warnings := cfg.Normalize()
			if len(warnings) != 1 {
				t.Fatalf("warnings = %v, want exactly one", warnings)
			}
			if !strings.Contains(warnings[0], tt.field) {
				t.Errorf("warning %q does not name %s", warnings[0], tt.field)
			}
			if !tt.check(cfg) {
				t.Errorf("field not reset to default: %+v", cfg)
			}
		})
	}
}

func TestLoadCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "settings:\n  total_colors: 3\n  columns: 9\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, warnings, err := LoadHexShooter(path)
	if err != nil {
		t.Fatalf("LoadHexShooter: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %q, want none", warnings)
	}
	if cfg.Settings.TotalColors != 3 || cfg.Settings.Columns != 9 {
		t.Errorf("settings = %+v", cfg.Settings)
	}
	if cfg.Settings.TurnsPerShift != DefaultHexShooterConfig().Settings.TurnsPerShift {
		t.Error("missing fields should keep defaults")
	}
}

func TestLoadCustomMistypedField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "settings:\n  total_colors: 3\n  columns: abc\nsnap:\n  hard_limit_ms: soon\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, warnings, err := LoadHexShooter(path)
	if err != nil {
		t.Fatalf("a mistyped field should not fail the load: %v", err)
	}
	def := DefaultHexShooterConfig()
	if cfg.Settings.TotalColors != 3 {
		t.Errorf("total_colors = %d, want the file's 3", cfg.Settings.TotalColors)
	}
	if cfg.Settings.Columns != def.Settings.Columns {
		t.Errorf("columns = %d, want default %d", cfg.Settings.Columns, def.Settings.Columns)
	}
	if cfg.Snap.HardLimitMS != def.Snap.HardLimitMS {
		t.Errorf("hard_limit_ms = %d, want default %d", cfg.Snap.HardLimitMS, def.Snap.HardLimitMS)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %q, want one per mistyped field", warnings)
	}
	for _, w := range warnings {
		if !strings.HasPrefix(w, "custom.yaml: ") {
			t.Errorf("warning %q should name the file", w)
		}
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("settings: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bad, filepath.Join(dir, "missing.yaml")} {
		cfg, _, err := LoadHexShooter(path)
		if err == nil {
			t.Errorf("LoadHexShooter(%s) should fail", filepath.Base(path))
		}
		if !reflect.DeepEqual(cfg, DefaultHexShooterConfig()) {
			t.Errorf("LoadHexShooter(%s) should return defaults on error", filepath.Base(path))
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultHexShooterConfig()
	cfg.Settings.TotalColors = 6
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var back HexShooterConfig
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("round trip changed the config")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		colors  int
		turns   int
		enabled bool
	}{
		{DifficultyEasy, 4, 7, true},
		{DifficultyNormal, 5, 5, true},
		{DifficultyHard, 6, 3, true},
		{DifficultyFixed, 5, 5, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultHexShooterConfig()
			ApplyHexShooterPreset(&cfg, tt.preset)
			if cfg.Settings.TotalColors != tt.colors || cfg.Settings.TurnsPerShift != tt.turns {
				t.Errorf("settings = %+v", cfg.Settings)
			}
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("difficulty enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
		})
	}
	if ParsePreset("hard") != DifficultyHard || ParsePreset("insane") != "" {
		t.Error("ParsePreset mismatch")
	}
}

func TestDifficultyTurnsPerShift(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:     ScalingConfig{ShiftReduction: 3},
	})
	tests := []struct {
		score int
		want  int
	}{
		{0, 5},
		{400, 4},
		{1000, 2},
		{5000, 2},
	}
	for _, tt := range tests {
		if got := d.TurnsPerShift(5, tt.score, 0); got != tt.want {
			t.Errorf("TurnsPerShift(score=%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
	if got := d.TurnsPerShift(1, 1000, 0); got != 1 {
		t.Errorf("TurnsPerShift floor = %d, want 1", got)
	}

	d.SetEnabled(false)
	if d.IsEnabled() || d.TurnsPerShift(5, 1000, 0) != 5 {
		t.Error("disabled manager should keep the base value")
	}
}

func TestDifficultyTurnsProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "turns", MaxAt: 10},
	})
	d.SetInitialLevel(0.5)
	if got := d.Level(0, 5); got != 0.75 {
		t.Errorf("Level = %v, want 0.75", got)
	}
}
