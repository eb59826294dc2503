package shooter

import (
	"fmt"

	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/entity"
)

// Visual characters for rendering
const (
	ShipChar     = 'A'
	BulletChar   = '|'
	ParticleChar = '*'
	EmberChar    = '.'
	StarChar     = '.'
)

var (
	enemyGlyphs = []rune{'v', 'W', 'M', 'X'}
	enemyColors = []core.Color{core.ColorRed, core.ColorMagenta, core.ColorBlue, core.ColorYellow}
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	view := core.NewViewport(g.world, dst, 1)

	g.drawStars(dst)

	g.particles.ForEachAlive(func(p *entity.Particle) {
		r := ParticleChar
		if p.Fade() < 0.4 {
			r = EmberChar
		}
		view.Plot(p.Pos, r, p.Color)
	})

	g.bullets.ForEachAlive(func(b *entity.Entity) {
		view.Plot(b.Pos, BulletChar, core.ColorBrightCyan)
	})

	g.enemies.ForEachAlive(func(e *Enemy) {
		i := e.kind % len(enemyGlyphs)
		view.Plot(e.Pos, enemyGlyphs[i], enemyColors[i])
	})

	if !g.gameOver {
		view.Plot(g.player, ShipChar, core.ColorBrightCyan)
	}

	dst.DrawTextColor(1, 0, fmt.Sprintf("SCORE: %d", g.score), core.ColorBrightWhite)
	if g.cfg.Levels.ScorePerLevel > 0 {
		lv := fmt.Sprintf("LEVEL: %d", g.level)
		dst.DrawTextColor(dst.Width()-len(lv)-1, 0, lv, core.ColorBrightWhite)
	}

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  R restart", g.score))
	}
}

// drawStars scatters a fixed star field that does not depend on game state.
func (g *Game) drawStars(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	for i := 0; i < w*h/40; i++ {
		x := (i*7919 + 13) % core.Max(w, 1)
		y := 1 + (i*104729+7)%core.Max(h-1, 1)
		dst.SetColor(x, y, StarChar, core.ColorGray)
	}
}
