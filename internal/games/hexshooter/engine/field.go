package engine

import (
	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/grid"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/hex"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/lifecycle"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/physics"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/projectile"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

// spawnBall inserts a settled ball with its body.
func (c *Context) spawnBall(h hex.Hex, sp species.Species, grow bool, kind physics.Kind) (grid.OccupantID, bool) {
	id, err := c.store.Insert(h, sp)
	if err != nil {
		c.assert(false, "spawn on occupied cell", "cell", h, "err", err)
		return grid.OccupantID{}, false
	}
	body := c.phys.AddCircle(physics.CircleDef{
		Position:    c.store.WorldOf(h),
		Radius:      c.cfg.BallRadius,
		Kind:        kind,
		Mass:        c.cfg.BallMass,
		Damping:     c.cfg.BallDamping,
		Restitution: c.cfg.BallRestitution,
		Layer:       physics.LayerBall,
		Mask:        physics.LayerAll,
	})
	c.bodies[id] = body
	c.owners[body] = id
	if grow && c.cfg.SpawnGrowTime > 0 {
		c.growing[id] = c.cfg.SpawnGrowTime
	}
	return id, true
}

func (c *Context) removeBody(id grid.OccupantID) {
	body, ok := c.bodies[id]
	if !ok {
		return
	}
	c.phys.Remove(body)
	delete(c.bodies, id)
	delete(c.owners, body)
	delete(c.growing, id)
}

// reload loads the next shot at the launcher.
func (c *Context) reload() {
	if c.proj != nil {
		c.assert(false, "reload with a live projectile", "state", c.proj.State)
		return
	}
	present := c.store.ActiveSpecies()
	cur := c.next
	if len(present) > 0 && !containsSpecies(present, cur) {
		cur = c.palette.PickRandom(present)
	}
	c.next = c.palette.PickRandom(present)

	body := c.phys.AddCircle(physics.CircleDef{
		Position: c.launcher,
		Radius:   c.cfg.BallRadius,
		Kind:     physics.Kinematic,
		Mass:     1,
		Layer:    physics.LayerProjectile,
		Mask:     physics.LayerAll,
	})
	c.proj = projectile.New(cur, body, c.cfg.Projectile)
}

// settle turns the flying shot into a settled ball.
func (c *Context) settle() {
	p := c.proj
	pos, ok := c.phys.Position(p.Body)
	if !ok {
		pos = c.launcher
	}
	c.phys.Remove(p.Body)
	c.proj = nil

	// Mid-shift the layout is already a row ahead of the balls on screen
	lag := core.V(0, c.lc.ShiftRemaining())
	cell, ok := c.placement(pos.Add(lag))
	if !ok {
		c.assert(false, "no free cell for snapped projectile", "pos", pos)
		c.reloads.Push(reloadRequest{})
		return
	}
	kind := physics.Dynamic
	if c.lc.Shifting() {
		kind = physics.Kinematic
	}
	id, ok := c.spawnBall(cell, p.Species, false, kind)
	if !ok {
		c.reloads.Push(reloadRequest{})
		return
	}
	if !lag.IsZero() {
		// Land with the same lag so driveShift carries it with the others
		c.phys.SetPosition(c.bodies[id], c.store.WorldOf(cell).Sub(lag))
	}
	if occ, ok := c.store.Occupant(id); ok {
		occ.ProjectileOrigin = true
	}
	c.log.Debug("projectile snapped", "cell", cell, "species", p.Species, "reason", p.Reason())
	c.clusterRequests.Push(clusterRequest{Cell: cell, Shot: id})
	c.reloads.Push(reloadRequest{})
}

// placement picks the cell a shot landing at pos occupies: the cell under
// it clamped to the frontier and the row's columns, else the nearest free
// neighbor, else the nearest free cell of a widening ring.
func (c *Context) placement(pos core.Vec2) (hex.Hex, bool) {
	h := c.clampCell(c.store.CellAt(pos))
	if _, taken := c.store.Get(h); !taken {
		return h, true
	}
	if best, ok := c.nearestFree(pos, c.store.EmptyNeighbors(h)); ok {
		return best, true
	}
	for radius := 2; radius <= c.store.InitCols()+2; radius++ {
		if best, ok := c.nearestFree(pos, hex.Ring(h, radius)); ok {
			return best, true
		}
	}
	return hex.Hex{}, false
}

func (c *Context) clampCell(h hex.Hex) hex.Hex {
	m := c.store.Mode()
	off := hex.ToOffset(h, m)
	off.Row = max(off.Row, c.store.LastActiveRow())
	lo, hi := hex.ColumnRange(off.Row, c.store.InitCols(), m)
	off.Col = core.Clamp(off.Col, lo, hi)
	return hex.FromOffset(off.Col, off.Row, m)
}

func (c *Context) nearestFree(pos core.Vec2, cells []hex.Hex) (hex.Hex, bool) {
	var best hex.Hex
	bestDist := -1.0
	for _, h := range cells {
		if h.R < c.store.LastActiveRow() || !c.store.ValidCell(h) {
			continue
		}
		if _, taken := c.store.Get(h); taken {
			continue
		}
		d := pos.DistanceTo(c.store.WorldOf(h))
		if bestDist < 0 || d < bestDist {
			best, bestDist = h, d
		}
	}
	return best, bestDist >= 0
}

// beginShift moves the grid one row down. Every ball becomes kinematic
// until the animation ends; the ceiling follows only when no new row
// will take its place.
func (c *Context) beginShift(plan lifecycle.ShiftPlan) {
	c.store.TranslateLayout(core.V(0, plan.Distance))
	for _, body := range c.sortedBodies() {
		c.phys.SetKind(body, physics.Kinematic)
	}
	c.ceilingMoves = !plan.SpawnRow
	if c.ceilingMoves {
		c.phys.SetKind(c.ceiling, physics.Kinematic)
	}
	c.log.Debug("row shift started", "spawn_row", plan.SpawnRow, "rows_left", c.lc.RowsLeft())
}

// driveShift sets kinematic velocities for this tick and finalizes the
// shift once the controller reports it complete.
func (c *Context) driveShift(delta, secs float64, done bool) {
	if !done {
		vel := core.V(0, delta/secs)
		for _, body := range c.sortedBodies() {
			c.phys.SetVelocity(body, vel)
		}
		if c.ceilingMoves {
			c.phys.SetVelocity(c.ceiling, vel)
		}
		return
	}

	for _, occ := range c.store.Occupants() {
		body, ok := c.bodies[occ.ID]
		if !ok {
			continue
		}
		c.phys.SetPosition(body, c.store.WorldOf(occ.Cell))
		c.phys.SetVelocity(body, core.Vec2{})
		c.phys.SetKind(body, physics.Dynamic)
	}
	if c.ceilingMoves {
		c.ceilingY += c.store.Layout().RowHeight()
		c.phys.SetPosition(c.ceiling, core.V(0, c.ceilingY))
		c.phys.SetKind(c.ceiling, physics.Static)
		c.ceilingMoves = false
		return
	}
	c.spawnRow()
}

// spawnRow fills the row above the frontier and makes it the new frontier.
func (c *Context) spawnRow() {
	row := c.store.LastActiveRow() - 1
	present := c.store.ActiveSpecies()
	for _, s := range lifecycle.RowSpawns(row, c.store.InitCols(), c.store.Mode(), c.palette, present) {
		c.spawnBall(s.Cell, s.Species, true, physics.Dynamic)
	}
	c.store.SetLastActiveRow(row)
	c.log.Debug("row spawned", "row", row, "rows_left", c.lc.RowsLeft())
}

// sortedBodies returns settled ball bodies in grid order.
func (c *Context) sortedBodies() []physics.BodyID {
	occs := c.store.Occupants()
	out := make([]physics.BodyID, 0, len(occs))
	for _, occ := range occs {
		if body, ok := c.bodies[occ.ID]; ok {
			out = append(out, body)
		}
	}
	return out
}

func containsSpecies(list []species.Species, sp species.Species) bool {
	for _, s := range list {
		if s == sp {
			return true
		}
	}
	return false
}
