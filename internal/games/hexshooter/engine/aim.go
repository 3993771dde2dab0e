package engine

import (
	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/lifecycle"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/physics"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/projectile"
)

// AimPath traces the current aim from the launcher, reflecting off the
// side walls, and returns the polyline up to the first ball or the
// ceiling. It returns nil when no shot is being aimed.
func (c *Context) AimPath(maxBounces int) []core.Vec2 {
	p := c.proj
	if p == nil || p.State != projectile.Aiming {
		return nil
	}
	dir := projectile.LaunchDirection(p.AimVector, c.cfg.Projectile.MinAimUp)
	if dir.IsZero() {
		return nil
	}
	origin, ok := c.phys.Position(p.Body)
	if !ok {
		origin = c.launcher
	}
	mask := physics.LayerBall | physics.LayerWall | physics.LayerCeiling
	reach := 4 * (c.width + c.height)

	path := []core.Vec2{origin}
	for range maxBounces + 1 {
		hit, ok := c.phys.Cast(c.cfg.BallRadius, origin, dir, reach, mask)
		if !ok {
			path = append(path, origin.Add(dir.Scale(reach)))
			break
		}
		path = append(path, hit.Point)
		if hit.Body != c.walls[0] && hit.Body != c.walls[1] {
			break
		}
		dir = dir.Reflect(hit.Normal)
		origin = hit.Point
	}
	return path
}

// Continue starts the next level after a win, or restarts the current
// one after a loss. It reports whether a new level was started.
func (c *Context) Continue() bool {
	switch c.lc.Phase() {
	case lifecycle.Won:
		c.StartLevel(c.lc.Level())
	case lifecycle.Lost:
		c.score = 0
		c.StartLevel(c.lc.Level())
	default:
		return false
	}
	return true
}
