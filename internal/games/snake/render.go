package snake

import (
	"fmt"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// Visual characters for rendering
const (
	HeadChar = 'O'
	BodyChar = 'o'
	FoodChar = '*'
	WallChar = '#'
	hudRows  = 2
)

// Render draws the grid centered below the HUD. A screen smaller than the
// grid gets a scaled-down view of it instead.
func (g *Game) Render(dst *core.Screen) {
	hud := fmt.Sprintf(" SCORE: %d  LENGTH: %d", g.score, len(g.snake))
	if g.cfg.WinLength > 0 {
		hud += fmt.Sprintf("/%d", g.cfg.WinLength)
	}
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	plot := g.cellMapper(dst)
	for y := 0; y < g.cfg.Height; y++ {
		for x := 0; x < g.cfg.Width; x++ {
			if p := (Point{x, y}); g.Wall(p) {
				plot(p, WallChar, core.ColorGray)
			}
		}
	}
	if g.food.X >= 0 {
		plot(g.food, FoodChar, core.ColorBrightRed)
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		if i == 0 {
			plot(g.snake[i], HeadChar, core.ColorBrightGreen)
		} else {
			plot(g.snake[i], BodyChar, core.ColorGreen)
		}
	}

	switch {
	case g.won:
		dst.DrawMessage("YOU WIN", fmt.Sprintf("Final Score: %d", g.score))
	case g.gameOver:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  R restart", g.score))
	case g.paused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
}

// cellMapper returns a function drawing a grid cell on dst.
func (g *Game) cellMapper(dst *core.Screen) func(Point, rune, core.Color) {
	w, h := g.cfg.Width, g.cfg.Height
	if dst.Width() >= w && dst.Height()-hudRows >= h {
		ox := (dst.Width() - w) / 2
		oy := hudRows + (dst.Height()-hudRows-h)/2
		return func(p Point, r rune, c core.Color) {
			dst.SetColor(ox+p.X, oy+p.Y, r, c)
		}
	}
	view := core.NewViewport(core.NewBounds(float64(w), float64(h)), dst, hudRows)
	return func(p Point, r rune, c core.Color) {
		view.Plot(core.V(float64(p.X)+0.5, float64(p.Y)+0.5), r, c)
	}
}
