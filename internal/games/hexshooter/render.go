package hexshooter

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hexshooter/internal/core"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/lifecycle"
	"github.com/vovakirdan/hexshooter/internal/games/hexshooter/projectile"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.ctx == nil {
		return
	}
	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderField(dst)
	g.renderAim(dst)
	g.renderBalls(dst)
	g.renderLauncher(dst)

	switch {
	case g.ctx.Lifecycle().Phase() == lifecycle.Won:
		g.renderOverlay(dst, fmt.Sprintf("Level cleared! Score: %d", g.ctx.Score()),
			fmt.Sprintf("Press R for level %d", g.ctx.Lifecycle().Level()))
	case g.ctx.Lifecycle().Phase() == lifecycle.Lost:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	h := g.fx.hud
	text := fmt.Sprintf(" %s | Score: %d | Level: %d | Turns: %d | Shift in: %d",
		g.Title(), h.Score, h.Level, h.Turns, h.MoveCooldown)
	if g.mode == Campaign {
		text += fmt.Sprintf(" | Rows: %d", h.RowsLeft)
	}
	dst.DrawTextColored(0, 0, text, core.ColorCyan)

	x := len([]rune(text)) + 3
	dst.DrawTextColored(x, 0, "Next:", core.ColorGray)
	dst.SetColored(x+6, 0, h.Next.Char(), h.Next.Color())

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderField draws the walls, the ceiling and the game-over line.
func (g *Game) renderField(dst *core.Screen) {
	left, top := g.toScreen(core.V(0, 0))
	right, bottom := g.toScreen(core.V(g.ctx.Width(), g.ctx.Height()))
	dst.DrawBox(core.NewRect(left-1, top-1, right-left+2, bottom-top+2), core.ColorGray)

	if y := g.ctx.CeilingY(); y > 0 {
		_, sy := g.toScreen(core.V(0, y))
		dst.DrawHLine(left, sy, right-left, '▀', core.ColorDim)
	}
	_, ly := g.toScreen(core.V(0, g.ctx.GameOverY()))
	for x := left; x < right; x += 2 {
		dst.SetColored(x, ly, '╌', core.ColorRed)
	}
}

func (g *Game) renderAim(dst *core.Screen) {
	path := g.ctx.AimPath(aimBounces)
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		steps := int(math.Ceil(a.DistanceTo(b) * g.scaleX / 2))
		for s := 1; s < steps; s += 2 {
			p := a.Add(b.Sub(a).Scale(float64(s) / float64(steps)))
			x, y := g.toScreen(p)
			dst.SetColored(x, y, '·', core.ColorDim)
		}
	}
}

func (g *Game) renderBalls(dst *core.Screen) {
	for _, occ := range g.ctx.Store().Occupants() {
		pos := g.ctx.BallPosition(occ)
		glyph := occ.Species.Char()
		if progress, ok := g.ctx.Growing(occ.ID); ok && progress < 0.5 {
			glyph = '·'
		}
		g.drawBall(dst, pos, glyph, occ.Species.Color())
	}
	for _, ob := range g.ctx.OutBalls() {
		g.drawBall(dst, ob.Pos, '∘', ob.Species.Color())
	}
	if pr := g.ctx.Projectile(); pr != nil {
		if pos, ok := g.ctx.ProjectilePosition(); ok {
			g.drawBall(dst, pos, pr.Species.Char(), pr.Species.Color())
		}
	}
}

// drawBall centers a two-cell glyph on a world point.
func (g *Game) drawBall(dst *core.Screen, pos core.Vec2, glyph rune, c core.Color) {
	x, y := g.toScreen(pos)
	dst.SetColored(x-1, y, glyph, c)
	dst.SetColored(x, y, glyph, c)
}

func (g *Game) renderLauncher(dst *core.Screen) {
	x, y := g.toScreen(g.ctx.Launcher())
	dst.SetColored(x-2, y+1, '╰', core.ColorWhite)
	dst.SetColored(x-1, y+1, '─', core.ColorWhite)
	dst.SetColored(x, y+1, '─', core.ColorWhite)
	dst.SetColored(x+1, y+1, '╯', core.ColorWhite)

	if pr := g.ctx.Projectile(); pr == nil || pr.State != projectile.Loaded {
		return
	}
	tx, ty := g.toScreen(g.AimTarget())
	dst.SetColored(tx, ty, '+', core.ColorDim)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	for y := boxY + 1; y < boxY+boxH-1; y++ {
		dst.DrawHLine(boxX+1, y, boxW-2, ' ', core.ColorDefault)
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)
	dst.DrawTextColored(boxX+(boxW-len([]rune(line1)))/2, boxY+1, line1, core.ColorYellow)
	dst.DrawTextColored(boxX+(boxW-len([]rune(line2)))/2, boxY+3, line2, core.ColorGray)
}
