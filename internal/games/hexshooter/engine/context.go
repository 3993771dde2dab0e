// Package engine runs one hex shooter simulation.
//
// A Context bundles the grid, the shot, the cooldowns, the lifecycle
// counters and the typed event queues, and advances them all in a fixed
// order on every Tick:
//
//  1. grid update: remove balls marked in an earlier tick, refresh bounds
//  2. input and collision interpretation for the live shot
//  3. cluster resolution
//  4. row lifecycle: turns, shifts, new rows, reload, game over and win
//  5. magnetic cohesion forces
//  6. physics step, whose contact events are read on the next tick
package engine

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/cluster"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/grid"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/lifecycle"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/physics"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/projectile"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/queue"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

// Input is the single pointer sample consumed per tick, in world space.
type Input struct {
	Pointer  core.Vec2
	Valid    bool
	Pressed  bool
	Released bool
}

// Route tells how a shot's turn was counted.
type Route uint8

const (
	RouteSnap    Route = iota // the shot ball stayed in the field
	RouteRemoval              // the shot ball was cleared by its own match
)

func (r Route) String() string {
	if r == RouteRemoval {
		return "removal"
	}
	return "snap"
}

// TurnEvent is emitted once per shot by the cluster phase.
type TurnEvent struct {
	Route Route
}

type clusterRequest struct {
	Cell hex.Hex
	Shot grid.OccupantID // set when the request comes from a landing
}

type reloadRequest struct{}

// Context is the simulation state of one run.
type Context struct {
	cfg Config
	log *log.Logger
	fx  Effects

	store    *grid.Store
	palette  *species.Palette
	phys     physics.Collaborator
	resolver cluster.Resolver
	check    *cluster.CheckCooldown
	lc       *lifecycle.Controller

	proj *projectile.Projectile
	next species.Species

	clusterRequests *queue.Queue[clusterRequest]
	reloads         *queue.Queue[reloadRequest]
	turns           *queue.Queue[TurnEvent]
	despawns        *queue.Queue[grid.OccupantID]
	awaitingTurn    []grid.OccupantID

	bodies  map[grid.OccupantID]physics.BodyID
	owners  map[physics.BodyID]grid.OccupantID
	growing map[grid.OccupantID]time.Duration

	walls        [2]physics.BodyID
	ceiling      physics.BodyID
	ceilingY     float64
	ceilingMoves bool

	outBalls []OutBall

	width, height float64
	launcher      core.Vec2

	score   int
	ticks   uint64
	lastHUD HUD
	hudSent bool
}

// New creates a simulation on top of a physics collaborator and starts
// the configured first level. A nil logger discards output and nil
// effects are ignored.
func New(cfg Config, phys physics.Collaborator, fx Effects, logger *log.Logger, seed int64) *Context {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if fx == nil {
		fx = NopEffects{}
	}
	if cfg.BallRadius <= 0 {
		cfg.BallRadius = DefaultConfig().BallRadius
	}
	cfg.ViewRows = max(cfg.ViewRows, 4)

	r := cfg.BallRadius
	cols := max(cfg.Lifecycle.Cols, 3)
	cfg.Lifecycle.Cols = cols
	layout := hex.NewLayout(r, core.V(r, r))
	layout.Origin.X += hex.ModeOrigin(layout, cfg.Mode)

	c := &Context{
		cfg:             cfg,
		log:             logger,
		fx:              fx,
		phys:            phys,
		palette:         species.NewPalette(cfg.TotalColors, seed),
		resolver:        cluster.NewResolver(cfg.DropFloating),
		check:           cluster.NewCheckCooldown(cfg.ClusterDelay),
		lc:              lifecycle.New(cfg.Lifecycle),
		clusterRequests: queue.New[clusterRequest](8),
		reloads:         queue.New[reloadRequest](1),
		turns:           queue.New[TurnEvent](2),
		despawns:        queue.New[grid.OccupantID](32),
		bodies:          make(map[grid.OccupantID]physics.BodyID),
		owners:          make(map[physics.BodyID]grid.OccupantID),
		growing:         make(map[grid.OccupantID]time.Duration),
	}
	if cfg.MinClusterSize > 0 {
		c.resolver.MinSize = cfg.MinClusterSize
	}
	c.store = grid.New(grid.Config{
		Layout:      layout,
		Mode:        cfg.Mode,
		Cols:        cols,
		TotalColors: c.palette.Total(),
	})
	c.width = float64(cols) * 2 * r
	c.height = float64(cfg.ViewRows)*layout.RowHeight() + 2*r
	c.launcher = core.V(c.width/2, c.height-1.5*r)

	c.walls[0] = phys.AddPlane(physics.PlaneDef{
		Point: core.V(0, 0), Normal: core.V(1, 0), Kind: physics.Static,
		Restitution: cfg.WallRestitution, Layer: physics.LayerWall,
		Mask: physics.LayerBall | physics.LayerProjectile,
	})
	c.walls[1] = phys.AddPlane(physics.PlaneDef{
		Point: core.V(c.width, 0), Normal: core.V(-1, 0), Kind: physics.Static,
		Restitution: cfg.WallRestitution, Layer: physics.LayerWall,
		Mask: physics.LayerBall | physics.LayerProjectile,
	})
	c.ceiling = phys.AddPlane(physics.PlaneDef{
		Point: core.V(0, 0), Normal: core.V(0, 1), Kind: physics.Static,
		Layer: physics.LayerCeiling,
		Mask:  physics.LayerBall | physics.LayerProjectile,
	})

	c.StartLevel(c.lc.Level())
	return c
}

// StartLevel clears the field and generates the given level.
func (c *Context) StartLevel(level int) {
	for id, body := range c.bodies {
		c.phys.Remove(body)
		delete(c.bodies, id)
	}
	clear(c.owners)
	clear(c.growing)
	if c.proj != nil {
		c.phys.Remove(c.proj.Body)
		c.proj = nil
	}
	c.phys.Events()

	c.store.Clear()
	c.clusterRequests.Reset()
	c.reloads.Reset()
	c.turns.Reset()
	c.despawns.Reset()
	c.awaitingTurn = nil
	c.check.Reset()
	c.outBalls = c.outBalls[:0]

	c.ceilingY = 0
	c.ceilingMoves = false
	c.phys.SetKind(c.ceiling, physics.Static)
	c.phys.SetPosition(c.ceiling, core.V(0, 0))

	c.lc.BeginLevel(level)
	for _, s := range lifecycle.InitialSpawns(c.lc.InitialRows(), c.store.InitCols(), c.store.Mode(), c.palette) {
		c.spawnBall(s.Cell, s.Species, false, physics.Dynamic)
	}
	c.store.SetLastActiveRow(0)
	c.store.RecomputeBounds()

	c.next = c.palette.PickRandom(c.store.ActiveSpecies())
	c.reload()
	c.log.Debug("level started", "level", c.lc.Level(), "balls", c.store.Len(), "rows_left", c.lc.RowsLeft())
	c.pushHUD()
}

// assert reports an invariant violation. Strict mode panics.
func (c *Context) assert(ok bool, msg string, keyvals ...any) {
	if ok {
		return
	}
	if c.cfg.Strict {
		panic(fmt.Sprintf("engine: invariant violated: %s %v", msg, keyvals))
	}
	c.log.Error("invariant violated: "+msg, keyvals...)
}

// Store returns the grid.
func (c *Context) Store() *grid.Store { return c.store }

// Lifecycle returns the turn and row controller.
func (c *Context) Lifecycle() *lifecycle.Controller { return c.lc }

// Physics returns the physics collaborator.
func (c *Context) Physics() physics.Collaborator { return c.phys }

// Projectile returns the live shot, or nil between shots.
func (c *Context) Projectile() *projectile.Projectile { return c.proj }

// NextSpecies returns the species of the shot after the current one.
func (c *Context) NextSpecies() species.Species { return c.next }

// Score returns the run score.
func (c *Context) Score() int { return c.score }

// Ticks returns how many ticks have run.
func (c *Context) Ticks() uint64 { return c.ticks }

// Config returns the simulation configuration.
func (c *Context) Config() Config { return c.cfg }

// Width returns the playfield width in world units.
func (c *Context) Width() float64 { return c.width }

// Height returns the playfield height in world units.
func (c *Context) Height() float64 { return c.height }

// Launcher returns the world position where shots are loaded.
func (c *Context) Launcher() core.Vec2 { return c.launcher }

// CeilingY returns the world Y of the top boundary.
func (c *Context) CeilingY() float64 {
	if p, ok := c.phys.Position(c.ceiling); ok {
		return p.Y
	}
	return c.ceilingY
}

// GameOverY returns the line the lowest ball edge may not reach.
func (c *Context) GameOverY() float64 {
	return c.cfg.GameOverLine * c.height
}

// OutBalls returns the removal animations in flight.
func (c *Context) OutBalls() []OutBall { return c.outBalls }

// BallPosition returns the body position of a settled ball, falling back
// to its cell center.
func (c *Context) BallPosition(occ *grid.Occupant) core.Vec2 {
	if body, ok := c.bodies[occ.ID]; ok {
		if p, ok := c.phys.Position(body); ok {
			return p
		}
	}
	return c.store.WorldOf(occ.Cell)
}

// Growing reports spawn animation progress in [0,1] for a ball.
func (c *Context) Growing(id grid.OccupantID) (float64, bool) {
	left, ok := c.growing[id]
	if !ok || c.cfg.SpawnGrowTime <= 0 {
		return 1, false
	}
	return 1 - math.Min(1, float64(left)/float64(c.cfg.SpawnGrowTime)), true
}

// ProjectilePosition returns the live shot position.
func (c *Context) ProjectilePosition() (core.Vec2, bool) {
	if c.proj == nil {
		return core.Vec2{}, false
	}
	return c.phys.Position(c.proj.Body)
}
