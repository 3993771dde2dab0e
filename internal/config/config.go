// Package config provides YAML-based game configuration loading and
// difficulty management for the hex shooter.
package config

// HexShooterConfig contains all configuration for the hex shooter.
type HexShooterConfig struct {
	Settings   HexSettings      `yaml:"settings"`
	Physics    HexPhysics       `yaml:"physics"`
	Snap       HexSnap          `yaml:"snap"`
	Cluster    HexCluster       `yaml:"cluster"`
	Magnet     HexMagnet        `yaml:"magnet"`
	Gameplay   HexGameplay      `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// HexSettings are the player-facing field settings.
type HexSettings struct {
	TotalColors   int    `yaml:"total_colors"`    // 1..7
	Columns       int    `yaml:"columns"`         // 3..9
	TotalRows     int    `yaml:"total_rows"`      // rows fed in during level 1, 1..254
	RowsShown     int    `yaml:"rows_shown"`      // rows generated at level start, 1..6
	TurnsPerShift int    `yaml:"turns_per_shift"` // shots between row shifts
	OffsetMode    string `yaml:"offset_mode"`     // "odd" or "even"
}

// HexPhysics defines body and motion parameters.
type HexPhysics struct {
	BallRadius      float64 `yaml:"ball_radius"`
	BallMass        float64 `yaml:"ball_mass"`
	BallDamping     float64 `yaml:"ball_damping"`
	BallRestitution float64 `yaml:"ball_restitution"`
	WallRestitution float64 `yaml:"wall_restitution"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	ShiftSpeed      float64 `yaml:"shift_speed"` // world units per second
}

// HexSnap tunes when a flying shot lands.
type HexSnap struct {
	SlowSpeed     float64 `yaml:"slow_speed"`
	ReversalDot   float64 `yaml:"reversal_dot"`
	MinAimUp      float64 `yaml:"min_aim_up"`
	CheckpointsMS []int   `yaml:"checkpoints_ms"`
	HardLimitMS   int     `yaml:"hard_limit_ms"`
	MaxFlightMS   int     `yaml:"max_flight_ms"`
}

// HexCluster tunes match resolution.
type HexCluster struct {
	MinSize      int  `yaml:"min_size"`
	DropFloating bool `yaml:"drop_floating"`
	CheckDelayMS int  `yaml:"check_delay_ms"`
}

// HexMagnet tunes the cosmetic cohesion force.
type HexMagnet struct {
	Enabled      bool    `yaml:"enabled"`
	StrongRadius float64 `yaml:"strong_radius"` // in ball radii
	StrongFactor float64 `yaml:"strong_factor"`
	WeakFactor   float64 `yaml:"weak_factor"`
	AnchorFactor float64 `yaml:"anchor_factor"`
}

// HexGameplay defines field size, levels and scoring.
type HexGameplay struct {
	ViewRows       int     `yaml:"view_rows"`
	GameOverLine   float64 `yaml:"game_over_line"` // fraction of the field height
	StartLevel     int     `yaml:"start_level"`
	MaxLevel       int     `yaml:"max_level"`
	PointsPerBall  int     `yaml:"points_per_ball"`
	FloatingPoints int     `yaml:"floating_points"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "turns", or "none"
	MaxAt int    `yaml:"max_at"` // Score/turns at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ShiftReduction int `yaml:"shift_reduction"` // Turns removed from turns_per_shift at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
