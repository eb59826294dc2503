package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/entity"
)

// Visual characters for rendering
const (
	WallChar     = '═'
	ShipChar     = '►'
	FloorSpike   = '▲'
	CeilingSpike = '▼'
	BlockChar    = '█'
	CoinChar     = '$'
	ParticleChar = '·'
	GridChar     = '┊'
	gridSpacing  = 40.0
	gridParallax = 0.3
	hudRows      = 1
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	view := core.NewViewport(g.world, dst, hudRows)

	g.drawGrid(view)
	_, ceil := view.Cell(core.V(0, g.ceilingY))
	_, ground := view.Cell(core.V(0, g.groundY))
	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, ceil, WallChar, core.ColorCyan)
		dst.SetColor(x, ground, WallChar, core.ColorCyan)
	}

	g.coins.ForEachAlive(func(c *entity.Entity) {
		view.Plot(c.Pos, CoinChar, core.ColorBrightYellow)
	})

	g.obstacles.ForEachAlive(func(o *Obstacle) {
		r := FloorSpike
		switch {
		case o.Moving:
			r = BlockChar
		case o.Ceiling:
			r = CeilingSpike
		}
		view.Fill(o.Shape(), r, core.ColorBrightRed)
	})

	g.particles.ForEachAlive(func(p *entity.Particle) {
		view.Plot(p.Pos, ParticleChar, p.Color)
	})

	if !g.gameOver {
		view.Plot(g.player, ShipChar, core.ColorBrightCyan)
	}

	dst.DrawTextColor(1, 0, fmt.Sprintf("SCORE: %d  DIST: %dm", g.score, int(g.dist)), core.ColorBrightWhite)
	dst.DrawTextColor(28, 0, fmt.Sprintf("COINS: %d", g.coinsHit), core.ColorBrightYellow)
	lv := fmt.Sprintf("LEVEL %d %s", g.level, g.levelConfig().Name)
	dst.DrawTextColor(dst.Width()-len(lv)-1, 0, lv, core.ColorBrightWhite)

	gravity, color := "▼ NORMAL", core.ColorBrightGreen
	if g.flipped {
		gravity, color = "▲ FLIPPED", core.ColorOrange
	}
	if y := ground + 1; y < dst.Height() {
		dst.DrawTextColor((dst.Width()-len([]rune(gravity)))/2, y, gravity, color)
	}

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  Dist: %dm  Coins: %d  |  R restart", g.score, int(g.dist), g.coinsHit))
	}
}

// drawGrid draws the scrolling background lines.
func (g *Game) drawGrid(view core.Viewport) {
	offset := math.Mod(g.dist/g.cfg.Scoring.DistancePerSpeed*gridParallax, gridSpacing)
	for x := -offset; x < g.world.MaxX; x += gridSpacing {
		for y := g.ceilingY; y < g.groundY; y += gridSpacing / 2 {
			view.Plot(core.V(x, y), GridChar, core.ColorGray)
		}
	}
}
