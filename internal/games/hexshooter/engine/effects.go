package engine

import (
	"time"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/species"
)

// HUD is the display state pushed to the UI whenever it changes.
type HUD struct {
	Score        int
	Turns        int
	Level        int
	MoveCooldown int
	RowsLeft     int
	Current      species.Species
	Next         species.Species
}

// Effects receives fire-and-forget commands for sound, animation and UI.
type Effects interface {
	PlayShoot()
	PlayScore(points int)
	SpawnOutBall(sp species.Species, pos core.Vec2)
	UpdateDisplay(h HUD)
}

// NopEffects ignores every command.
type NopEffects struct{}

func (NopEffects) PlayShoot()                              {}
func (NopEffects) PlayScore(int)                           {}
func (NopEffects) SpawnOutBall(species.Species, core.Vec2) {}
func (NopEffects) UpdateDisplay(HUD)                       {}

// OutBall is a removed ball falling out of the field.
type OutBall struct {
	Species species.Species
	Pos     core.Vec2
	Vel     core.Vec2
	Age     time.Duration
}

const outBallGravity = 60.0

func (c *Context) spawnOutBall(sp species.Species, pos core.Vec2, floating bool) {
	vel := core.V(0, -8)
	if floating {
		vel = core.Vec2{}
	}
	c.outBalls = append(c.outBalls, OutBall{Species: sp, Pos: pos, Vel: vel})
	c.fx.SpawnOutBall(sp, pos)
}

func (c *Context) updateOutBalls(dt time.Duration) {
	secs := dt.Seconds()
	kept := c.outBalls[:0]
	for _, ob := range c.outBalls {
		ob.Age += dt
		if ob.Age >= c.cfg.OutBallLifetime {
			continue
		}
		ob.Vel.Y += outBallGravity * secs
		ob.Pos = ob.Pos.Add(ob.Vel.Scale(secs))
		kept = append(kept, ob)
	}
	c.outBalls = kept
}

func (c *Context) pushHUD() {
	h := HUD{
		Score:        c.score,
		Turns:        c.lc.Turns(),
		Level:        c.lc.Level(),
		MoveCooldown: c.lc.MoveCooldown(),
		RowsLeft:     c.lc.RowsLeft(),
		Next:         c.next,
	}
	if c.proj != nil {
		h.Current = c.proj.Species
	}
	if h == c.lastHUD && c.hudSent {
		return
	}
	c.lastHUD = h
	c.hudSent = true
	c.fx.UpdateDisplay(h)
}
