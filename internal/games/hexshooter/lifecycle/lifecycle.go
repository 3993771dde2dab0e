// Package lifecycle drives turns, row shifts, new rows and the end of a level.
//
// The controller holds counters and decides; it never touches physics.
// The engine applies its decisions to bodies and the grid.
package lifecycle

import (
	"github.com/vovakirdan/hexshooter/internal/core"
)

// MaxRows bounds the rows a single level may contain.
const MaxRows = 254

// Phase is the state of the current level.
type Phase uint8

const (
	Playing Phase = iota
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Config tunes level structure and pacing.
type Config struct {
	Cols          int
	TotalRows     int // rows fed in from the top during the first level
	RowsShown     int // rows generated at level start
	TurnsPerShift int
	Endless       bool // a new row arrives with every shift, forever

	StartLevel int
	MaxLevel   int

	ShiftSpeed     float64 // world units per second
	ShiftTolerance float64
}

// DefaultConfig returns the classic campaign setup.
func DefaultConfig() Config {
	return Config{
		Cols:           7,
		TotalRows:      5,
		RowsShown:      5,
		TurnsPerShift:  5,
		StartLevel:     1,
		MaxLevel:       10,
		ShiftSpeed:     6,
		ShiftTolerance: 0.01,
	}
}

// ShiftPlan describes a row shift that has just started.
type ShiftPlan struct {
	Distance float64
	SpawnRow bool // a new row enters once the shift completes
}

type shift struct {
	plan      ShiftPlan
	remaining float64
}

// Controller owns turn and row counters for one run.
type Controller struct {
	cfg Config

	turns         int
	moveCooldown  int
	level         int
	rowsLeft      int
	pendingShifts int
	active        *shift
	phase         Phase
}

// New creates a controller positioned at the start level.
func New(cfg Config) *Controller {
	cfg.TurnsPerShift = max(cfg.TurnsPerShift, 1)
	cfg.StartLevel = max(cfg.StartLevel, 1)
	cfg.MaxLevel = max(cfg.MaxLevel, cfg.StartLevel)
	cfg.TotalRows = core.Clamp(cfg.TotalRows, 1, MaxRows)
	cfg.RowsShown = max(cfg.RowsShown, 1)
	if cfg.ShiftSpeed <= 0 {
		cfg.ShiftSpeed = DefaultConfig().ShiftSpeed
	}
	c := &Controller{cfg: cfg}
	c.BeginLevel(cfg.StartLevel)
	return c
}

// Config returns the normalized configuration.
func (c *Controller) Config() Config { return c.cfg }

// Turns returns the number of shots counted this level.
func (c *Controller) Turns() int { return c.turns }

// MoveCooldown returns the turns left before the next shift.
func (c *Controller) MoveCooldown() int { return c.moveCooldown }

// Level returns the current level.
func (c *Controller) Level() int { return c.level }

// RowsLeft returns the rows still waiting to enter the field.
func (c *Controller) RowsLeft() int { return c.rowsLeft }

// Phase returns the level state.
func (c *Controller) Phase() Phase { return c.phase }

// Shifting reports whether a row shift is animating.
func (c *Controller) Shifting() bool { return c.active != nil }

// PendingShifts returns shifts that are due but not started.
func (c *Controller) PendingShifts() int { return c.pendingShifts }

// LevelRows returns how many rows enter from the top during a level.
// Each level past the first adds one.
func (c *Controller) LevelRows(level int) int {
	return core.Clamp(c.cfg.TotalRows+max(level, 1)-1, 1, MaxRows)
}

// InitialRows returns how many rows are generated when a level starts.
func (c *Controller) InitialRows() int {
	return c.cfg.RowsShown
}

// BeginLevel resets every counter for the given level.
func (c *Controller) BeginLevel(level int) {
	if level < c.cfg.StartLevel || level > c.cfg.MaxLevel {
		level = c.cfg.StartLevel
	}
	c.level = level
	c.turns = 0
	c.moveCooldown = c.cfg.TurnsPerShift
	c.rowsLeft = c.LevelRows(level)
	c.pendingShifts = 0
	c.active = nil
	c.phase = Playing
}

// SetTurnsPerShift changes the shift pace, used by difficulty scaling.
// The running countdown is shortened if it exceeds the new pace.
func (c *Controller) SetTurnsPerShift(n int) {
	c.cfg.TurnsPerShift = max(n, 1)
	c.moveCooldown = min(c.moveCooldown, c.cfg.TurnsPerShift)
}

// AddTurn counts one shot. It reports whether the countdown reached zero,
// in which case a shift is queued and the countdown restarts.
func (c *Controller) AddTurn() bool {
	if c.phase != Playing {
		return false
	}
	c.turns++
	c.moveCooldown--
	if c.moveCooldown > 0 {
		return false
	}
	c.moveCooldown = c.cfg.TurnsPerShift
	c.pendingShifts++
	return true
}

// StartShift begins the next queued shift by one row height.
func (c *Controller) StartShift(rowHeight float64) (ShiftPlan, bool) {
	if c.phase != Playing || c.active != nil || c.pendingShifts == 0 {
		return ShiftPlan{}, false
	}
	c.pendingShifts--
	plan := ShiftPlan{
		Distance: rowHeight,
		SpawnRow: c.cfg.Endless || c.rowsLeft > 0,
	}
	c.active = &shift{plan: plan, remaining: rowHeight}
	return plan, true
}

// AdvanceShift moves the animation by dt seconds. It returns how far the
// field moved this tick and whether the shift is complete; on completion
// the returned delta covers whatever distance was left.
func (c *Controller) AdvanceShift(dt float64) (delta float64, done bool) {
	if c.active == nil {
		return 0, false
	}
	step := c.cfg.ShiftSpeed * dt
	if c.active.remaining-step <= c.cfg.ShiftTolerance {
		delta = c.active.remaining
		c.finishShift()
		return delta, true
	}
	c.active.remaining -= step
	return step, false
}

// ShiftRemaining returns how far the animating shift still has to move the
// field, 0 when none is running.
func (c *Controller) ShiftRemaining() float64 {
	if c.active == nil {
		return 0
	}
	return c.active.remaining
}

// CurrentShift returns the plan of the animating shift.
func (c *Controller) CurrentShift() (ShiftPlan, bool) {
	if c.active == nil {
		return ShiftPlan{}, false
	}
	return c.active.plan, true
}

func (c *Controller) finishShift() {
	if c.active.plan.SpawnRow && !c.cfg.Endless {
		c.rowsLeft--
	}
	c.active = nil
}

// CheckGameOver ends the level once the lowest ball edge reaches limitY.
// It reports true only on the transition.
func (c *Controller) CheckGameOver(lowestY, limitY float64) bool {
	if c.phase != Playing || lowestY < limitY {
		return false
	}
	c.phase = Lost
	return true
}

// CheckWin ends the level when the field and every animation are clear.
// On the transition the level counter advances, wrapping past MaxLevel.
func (c *Controller) CheckWin(fieldEmpty bool, inFlight int) bool {
	if c.phase != Playing || !fieldEmpty || inFlight > 0 {
		return false
	}
	c.phase = Won
	c.level++
	if c.level > c.cfg.MaxLevel {
		c.level = c.cfg.StartLevel
	}
	return true
}
