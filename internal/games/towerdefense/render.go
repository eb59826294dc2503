package towerdefense

import (
	"fmt"
	"math"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// Visual characters for rendering
const (
	PathChar   = '░'
	TowerChar  = 'T'
	CreepChar  = 'o'
	StrongChar = 'O'
	LaserChar  = '·'
	RangeChar  = '.'
	CursorChar = '+'
	hudRows    = 1
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.view = core.NewViewport(g.world, dst, hudRows)
	view := g.view

	for i := 0; i+1 < len(g.path); i++ {
		view.Line(g.path[i], g.path[i+1], PathChar, core.ColorOrange)
	}

	// Range rings blink twice a second.
	if math.Mod(g.ticks, 60) < 30 {
		for _, t := range g.towers {
			for a := 0.0; a < 2*math.Pi; a += math.Pi / 16 {
				p := t.Pos.Add(core.V(math.Cos(a), math.Sin(a)).Scale(g.cfg.Tower.Range))
				if g.world.ContainsPoint(p) {
					view.Plot(p, RangeChar, core.ColorBlue)
				}
			}
		}
	}

	for _, s := range g.shots {
		view.Line(s.from, s.to, LaserChar, core.ColorBrightYellow)
	}

	g.creeps.ForEachAlive(func(c *Creep) {
		r, color := CreepChar, core.ColorGreen
		if c.Health*2 > c.MaxHealth {
			r, color = StrongChar, core.ColorBrightGreen
		}
		view.Plot(c.Pos, r, color)
	})

	for _, t := range g.towers {
		view.Plot(t.Pos, TowerChar, core.ColorBrightBlue)
	}

	cursorColor := core.ColorBrightWhite
	if !g.CanBuild(g.cursor) {
		cursorColor = core.ColorRed
	}
	view.Plot(g.cursor, CursorChar, cursorColor)

	hud := fmt.Sprintf("WAVE: %d  MONEY: $%d  LIVES: %d  SCORE: %d", g.wave+1, g.money, g.lives, g.score())
	dst.DrawTextColor(1, 0, hud, core.ColorBrightWhite)

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Wave %d  Score: %d  |  R restart", g.wave+1, g.score()))
	}
	if g.won {
		dst.DrawMessage("VICTORY", fmt.Sprintf("All %d waves held  Score: %d", g.cfg.Waves.WinWave, g.score()))
	}
}
