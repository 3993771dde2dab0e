package config

import (
	_ "embed"
)

//go:embed defaults/hexshooter.yaml
var defaultHexShooterYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultHexShooterYAML
}

// DefaultHexShooterConfig returns the default hex shooter configuration.
func DefaultHexShooterConfig() HexShooterConfig {
	return HexShooterConfig{
		Settings: HexSettings{
			TotalColors:   5,
			Columns:       7,
			TotalRows:     5,
			RowsShown:     5,
			TurnsPerShift: 5,
			OffsetMode:    "odd",
		},
		Physics: HexPhysics{
			BallRadius:      1.0,
			BallMass:        5.0,
			BallDamping:     6.0,
			BallRestitution: 0.1,
			WallRestitution: 1.0,
			ProjectileSpeed: 40.0,
			ShiftSpeed:      6.0,
		},
		Snap: HexSnap{
			SlowSpeed:     2.0,
			ReversalDot:   0.0,
			MinAimUp:      0.15,
			CheckpointsMS: []int{100, 250, 500, 1000},
			HardLimitMS:   2000,
			MaxFlightMS:   6000,
		},
		Cluster: HexCluster{
			MinSize:      3,
			DropFloating: true,
			CheckDelayMS: 100,
		},
		Magnet: HexMagnet{
			Enabled:      true,
			StrongRadius: 2.2,
			StrongFactor: 6.0,
			WeakFactor:   2.0,
			AnchorFactor: 20.0,
		},
		Gameplay: HexGameplay{
			ViewRows:       14,
			GameOverLine:   0.82,
			StartLevel:     1,
			MaxLevel:       10,
			PointsPerBall:  10,
			FloatingPoints: 20,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				ShiftReduction: 3,
			},
		},
	}
}
