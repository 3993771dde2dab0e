package config

import (
	"fmt"
	"slices"
)

// Normalize replaces every out-of-range field with its default and
// returns one warning per replacement. A malformed setting never aborts
// loading.
func (c *HexShooterConfig) Normalize() []string {
	d := DefaultHexShooterConfig()
	var warnings []string
	fixInt := func(name string, v *int, lo, hi, def int) {
		if *v < lo || *v > hi {
			warnings = append(warnings, fmt.Sprintf("%s=%d out of range [%d,%d], using %d", name, *v, lo, hi, def))
			*v = def
		}
	}
	fixFloat := func(name string, v *float64, lo, hi, def float64) {
		if *v < lo || *v > hi {
			warnings = append(warnings, fmt.Sprintf("%s=%g out of range [%g,%g], using %g", name, *v, lo, hi, def))
			*v = def
		}
	}
	const unbounded = 1e9

	s := &c.Settings
	fixInt("settings.total_colors", &s.TotalColors, 1, 7, d.Settings.TotalColors)
	fixInt("settings.columns", &s.Columns, 3, 9, d.Settings.Columns)
	fixInt("settings.total_rows", &s.TotalRows, 1, 254, d.Settings.TotalRows)
	fixInt("settings.rows_shown", &s.RowsShown, 1, 6, d.Settings.RowsShown)
	fixInt("settings.turns_per_shift", &s.TurnsPerShift, 1, 100, d.Settings.TurnsPerShift)
	if s.OffsetMode != "odd" && s.OffsetMode != "even" {
		warnings = append(warnings, fmt.Sprintf("settings.offset_mode=%q unknown, using %q", s.OffsetMode, d.Settings.OffsetMode))
		s.OffsetMode = d.Settings.OffsetMode
	}

	p := &c.Physics
	fixFloat("physics.ball_radius", &p.BallRadius, 0.1, 100, d.Physics.BallRadius)
	fixFloat("physics.ball_mass", &p.BallMass, 0.01, unbounded, d.Physics.BallMass)
	fixFloat("physics.ball_damping", &p.BallDamping, 0, unbounded, d.Physics.BallDamping)
	fixFloat("physics.ball_restitution", &p.BallRestitution, 0, 1, d.Physics.BallRestitution)
	fixFloat("physics.wall_restitution", &p.WallRestitution, 0, 1, d.Physics.WallRestitution)
	fixFloat("physics.projectile_speed", &p.ProjectileSpeed, 1, unbounded, d.Physics.ProjectileSpeed)
	fixFloat("physics.shift_speed", &p.ShiftSpeed, 0.1, unbounded, d.Physics.ShiftSpeed)

	sn := &c.Snap
	fixFloat("snap.slow_speed", &sn.SlowSpeed, 0, unbounded, d.Snap.SlowSpeed)
	fixFloat("snap.reversal_dot", &sn.ReversalDot, -1, 1, d.Snap.ReversalDot)
	fixFloat("snap.min_aim_up", &sn.MinAimUp, 0, 0.99, d.Snap.MinAimUp)
	fixInt("snap.hard_limit_ms", &sn.HardLimitMS, 1, 60000, d.Snap.HardLimitMS)
	fixInt("snap.max_flight_ms", &sn.MaxFlightMS, 0, 600000, d.Snap.MaxFlightMS)
	if len(sn.CheckpointsMS) == 0 || !slices.IsSorted(sn.CheckpointsMS) || sn.CheckpointsMS[0] <= 0 {
		warnings = append(warnings, fmt.Sprintf("snap.checkpoints_ms=%v must be positive and ascending, using %v", sn.CheckpointsMS, d.Snap.CheckpointsMS))
		sn.CheckpointsMS = d.Snap.CheckpointsMS
	}

	cl := &c.Cluster
	fixInt("cluster.min_size", &cl.MinSize, 2, 20, d.Cluster.MinSize)
	fixInt("cluster.check_delay_ms", &cl.CheckDelayMS, 0, 10000, d.Cluster.CheckDelayMS)

	m := &c.Magnet
	fixFloat("magnet.strong_radius", &m.StrongRadius, 0, unbounded, d.Magnet.StrongRadius)
	fixFloat("magnet.strong_factor", &m.StrongFactor, 0, unbounded, d.Magnet.StrongFactor)
	fixFloat("magnet.weak_factor", &m.WeakFactor, 0, unbounded, d.Magnet.WeakFactor)
	fixFloat("magnet.anchor_factor", &m.AnchorFactor, 0, unbounded, d.Magnet.AnchorFactor)

	g := &c.Gameplay
	fixInt("gameplay.view_rows", &g.ViewRows, s.RowsShown+4, 40, max(d.Gameplay.ViewRows, s.RowsShown+4))
	fixFloat("gameplay.game_over_line", &g.GameOverLine, 0.1, 1, d.Gameplay.GameOverLine)
	fixInt("gameplay.start_level", &g.StartLevel, 1, 254, d.Gameplay.StartLevel)
	fixInt("gameplay.max_level", &g.MaxLevel, g.StartLevel, 254, max(d.Gameplay.MaxLevel, g.StartLevel))
	fixInt("gameplay.points_per_ball", &g.PointsPerBall, 0, 1000000, d.Gameplay.PointsPerBall)
	fixInt("gameplay.floating_points", &g.FloatingPoints, 0, 1000000, d.Gameplay.FloatingPoints)

	df := &c.Difficulty
	fixFloat("difficulty.initial_level", &df.InitialLevel, 0, 1, d.Difficulty.InitialLevel)
	switch df.Progression.Type {
	case "score", "turns", "none":
	default:
		warnings = append(warnings, fmt.Sprintf("difficulty.progression.type=%q unknown, using %q", df.Progression.Type, d.Difficulty.Progression.Type))
		df.Progression.Type = d.Difficulty.Progression.Type
	}
	fixInt("difficulty.scaling.shift_reduction", &df.Scaling.ShiftReduction, 0, 100, d.Difficulty.Scaling.ShiftReduction)

	return warnings
}
