package match3

import (
	"fmt"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// Gem glyphs and colors, indexed by gem.
var (
	GemChars  = []rune{'◆', '●', '▲', '■', '★', '♥', '♣', '♦', '✚'}
	GemColors = []core.Color{
		core.ColorBrightCyan, core.ColorBrightRed, core.ColorBrightGreen, core.ColorBrightBlue,
		core.ColorBrightYellow, core.ColorBrightMagenta, core.ColorOrange, core.ColorWhite, core.ColorGray,
	}
)

const (
	cellWidth = 3
	boardTop  = 2
)

// Render draws the board and the HUD.
func (g *Game) Render(dst *core.Screen) {
	hud := fmt.Sprintf("SCORE: %d  COMBO: x%.1f  MOVES: %d", g.score, g.combo, g.moves)
	if g.cfg.TargetScore > 0 {
		hud += fmt.Sprintf("  TARGET: %d", g.cfg.TargetScore)
	}
	dst.DrawTextColor(1, 0, hud, core.ColorBrightWhite)

	boardW := g.cfg.Cols * cellWidth
	x0 := core.Max((dst.Width()-boardW)/2, 0)
	y0 := boardTop
	if spare := dst.Height() - boardTop - g.cfg.Rows; spare > 2 {
		y0 += spare / 2
	}
	g.view = layout{
		area:  core.NewRect(x0, y0, boardW, g.cfg.Rows),
		cellW: cellWidth,
	}

	for r, row := range g.board {
		for c, gem := range row {
			x, y := x0+c*cellWidth, y0+r
			dst.SetColor(x+1, y, GemChars[gem%len(GemChars)], GemColors[gem%len(GemColors)])

			here := Cell{r, c}
			switch {
			case g.selected != nil && *g.selected == here:
				dst.SetColor(x, y, '[', core.ColorBrightYellow)
				dst.SetColor(x+2, y, ']', core.ColorBrightYellow)
			case g.cursor == here:
				dst.SetColor(x, y, '>', core.ColorBrightWhite)
				dst.SetColor(x+2, y, '<', core.ColorBrightWhite)
			}
		}
	}

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.won {
		dst.DrawMessage("YOU WIN", fmt.Sprintf("Score: %d with %d moves left", g.score, g.moves))
	}
	if g.gameOver {
		dst.DrawMessage("OUT OF MOVES", fmt.Sprintf("Final Score: %d  |  R restart", g.score))
	}
}
