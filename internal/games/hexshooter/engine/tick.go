package engine

import (
	"time"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/lifecycle"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/magnet"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/physics"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/projectile"
)

// Tick advances the simulation by dt.
func (c *Context) Tick(in Input, dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.ticks++
	if c.lc.Phase() != lifecycle.Playing {
		c.updateOutBalls(dt)
		return
	}

	c.updateGrid(dt)
	c.interpret(in, dt)
	c.resolveClusters(dt)
	c.updateLifecycle(dt)
	c.applyMagnet()
	c.phys.Step(dt.Seconds())
	c.pushHUD()
}

// updateGrid removes balls marked for despawn by an earlier cluster pass.
func (c *Context) updateGrid(dt time.Duration) {
	for _, id := range c.despawns.Drain() {
		occ, ok := c.store.Occupant(id)
		if !ok {
			c.log.Debug("despawn target already gone", "id", id)
			continue
		}
		if !occ.DespawnRequested || occ.ReadyToDespawn {
			continue
		}
		occ.ReadyToDespawn = true
		pos := c.BallPosition(occ)
		floating := occ.Floating
		sp, cell := occ.Species, occ.Cell
		c.removeBody(id)
		c.store.Remove(cell)
		c.spawnOutBall(sp, pos, floating)
	}
	for id, left := range c.growing {
		left -= dt
		if left <= 0 {
			delete(c.growing, id)
			continue
		}
		c.growing[id] = left
	}
	if c.store.Dirty() {
		c.store.RecomputeBounds()
	}
}

// interpret applies the pointer sample and the contact stream to the shot.
func (c *Context) interpret(in Input, dt time.Duration) {
	events := c.phys.Events()
	p := c.proj
	if p == nil {
		return
	}
	pos, ok := c.phys.Position(p.Body)
	if !ok {
		c.log.Debug("projectile body missing", "body", p.Body)
		return
	}

	if in.Pressed && !p.Press(pos, in.Pointer) {
		c.log.Debug("press ignored", "state", p.State)
	}
	if in.Valid {
		p.Drag(in.Pointer)
	}
	if in.Released {
		if v, ok := p.Release(in.Pointer); ok {
			c.phys.SetKind(p.Body, physics.Dynamic)
			c.phys.SetVelocity(p.Body, v)
			c.fx.PlayShoot()
			c.log.Debug("shot fired", "species", p.Species, "velocity", v)
		}
	}
	if p.State != projectile.Flying {
		return
	}

	snapped := false
	for _, ev := range events {
		other, ok := ev.Other(p.Body)
		if !ok || !c.isSnapSurface(other) {
			continue
		}
		v, ok := c.phys.Velocity(p.Body)
		if !ok {
			continue
		}
		var d projectile.Decision
		if ev.Kind == physics.CollisionStarted {
			d = p.ContactStarted(v)
		} else {
			d = p.ContactEnded(v)
		}
		if d.Stop {
			c.phys.SetVelocity(p.Body, core.Vec2{})
		}
		if d.Snap {
			snapped = true
		}
	}
	v, _ := c.phys.Velocity(p.Body)
	if d := p.Tick(dt, v); d.Snap {
		if d.Reason == projectile.ReasonHardLimit {
			c.log.Debug("forced snap", "elapsed", p.Cooldown().Elapsed())
		}
		snapped = true
	}
	if snapped {
		c.settle()
	}
}

// isSnapSurface reports whether a body is a settled ball or the ceiling.
func (c *Context) isSnapSurface(body physics.BodyID) bool {
	if body == c.ceiling {
		return true
	}
	id, ok := c.owners[body]
	if !ok {
		return false
	}
	_, ok = c.store.Occupant(id)
	return ok
}

// resolveClusters batches landing cells and runs the flood fill when the
// check cooldown fires. The landed shot's turn is routed here.
func (c *Context) resolveClusters(dt time.Duration) {
	for _, req := range c.clusterRequests.Drain() {
		c.check.Request(req.Cell)
		if req.Shot.Valid() {
			c.awaitingTurn = append(c.awaitingTurn, req.Shot)
		}
	}
	seeds, ok := c.check.Advance(dt)
	if !ok {
		return
	}
	res := c.resolver.Resolve(c.store, seeds)
	for _, r := range res.Removed() {
		c.despawns.Push(r.ID)
	}
	if n := len(res.Matched) + len(res.Floating); n > 0 {
		points := len(res.Matched)*c.cfg.PointsPerBall + len(res.Floating)*c.cfg.FloatingPoints
		c.score += points
		c.fx.PlayScore(points)
		c.log.Debug("cluster cleared", "matched", len(res.Matched), "floating", len(res.Floating), "points", points)
	}

	for _, shot := range c.awaitingTurn {
		route := RouteSnap
		occ, ok := c.store.Occupant(shot)
		if !ok || occ.DespawnRequested {
			route = RouteRemoval
		}
		if ok {
			occ.ProjectileOrigin = false
		}
		c.turns.Push(TurnEvent{Route: route})
	}
	c.awaitingTurn = c.awaitingTurn[:0]
}

// updateLifecycle counts turns, drives row shifts, reloads the launcher
// and checks the end of the level.
func (c *Context) updateLifecycle(dt time.Duration) {
	for _, ev := range c.turns.Drain() {
		if c.lc.AddTurn() {
			c.log.Debug("row shift due", "turns", c.lc.Turns(), "route", ev.Route)
		}
	}

	flying := c.proj != nil && c.proj.State == projectile.Flying
	if !c.lc.Shifting() && !flying {
		if plan, ok := c.lc.StartShift(c.store.Layout().RowHeight()); ok {
			c.beginShift(plan)
		}
	}
	if c.lc.Shifting() {
		delta, done := c.lc.AdvanceShift(dt.Seconds())
		c.driveShift(delta, dt.Seconds(), done)
	}

	for range c.reloads.Drain() {
		c.reload()
	}

	c.updateOutBalls(dt)

	b := c.store.Bounds()
	if !b.Empty && c.lc.CheckGameOver(b.MaxWorld.Y+c.cfg.BallRadius, c.GameOverY()) {
		c.log.Info("game over", "level", c.lc.Level(), "score", c.score, "turns", c.lc.Turns())
	}
	inFlight := len(c.outBalls) + c.despawns.Len()
	if c.lc.CheckWin(c.store.IsEmpty(), inFlight) {
		c.log.Info("field cleared", "next_level", c.lc.Level(), "score", c.score)
	}
}

// applyMagnet pulls every dynamic settled ball toward its neighbors.
func (c *Context) applyMagnet() {
	if !c.cfg.Magnet.Enabled {
		return
	}
	occs := c.store.Occupants()
	balls := make([]magnet.Ball, 0, len(occs))
	for _, occ := range occs {
		if occ.DespawnRequested {
			continue
		}
		if _, grow := c.growing[occ.ID]; grow {
			continue
		}
		body, ok := c.bodies[occ.ID]
		if !ok {
			continue
		}
		if k, ok := c.phys.Kind(body); !ok || k != physics.Dynamic {
			continue
		}
		b := magnet.Ball{Body: body, Home: c.store.WorldOf(occ.Cell)}
		for _, n := range c.store.NeighborsPresent(occ.Cell) {
			if nb, ok := c.bodies[n.ID]; ok {
				b.Neighbors = append(b.Neighbors, nb)
			}
		}
		balls = append(balls, b)
	}
	magnet.Apply(c.cfg.Magnet, c.phys, balls)
}
