package racing

import (
	"fmt"
	"math"

	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/entity"
)

// Visual characters for rendering
const (
	TrackChar      = '░'
	CheckpointChar = '◆'
	ParticleChar   = '*'
	hudRows        = 1
)

// headings are car glyphs for the eight compass directions, clockwise from
// right in screen space.
var headings = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

func heading(angle float64) rune {
	i := int(math.Round(angle/(math.Pi/4))) % len(headings)
	if i < 0 {
		i += len(headings)
	}
	return headings[i]
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.view = core.NewViewport(g.world, dst, hudRows)
	view := g.view

	for i := range g.track {
		view.Line(g.track[i], g.track[(i+1)%len(g.track)], TrackChar, core.ColorGray)
	}
	if !g.won {
		view.Plot(g.track[g.player.Checkpoint], CheckpointChar, core.ColorBrightYellow)
	}

	g.particles.ForEachAlive(func(p *entity.Particle) {
		view.Plot(p.Pos, ParticleChar, p.Color)
	})
	g.opponents.ForEachAlive(func(c *Car) {
		view.Plot(c.Pos, heading(c.Angle), c.Color)
	})
	view.Plot(g.player.Pos, heading(g.player.Angle), g.player.Color)

	cars := g.opponents.Len() + 1
	lap := min(g.player.Lap+1, g.cfg.Laps)
	hud := fmt.Sprintf("LAP: %d/%d  POS: %d/%d  TIME: %.1fs", lap, g.cfg.Laps, g.Position(), cars, g.raceTime)
	dst.DrawTextColor(1, 0, hud, core.ColorBrightWhite)

	switch {
	case g.won:
		dst.DrawMessage("RACE COMPLETE", fmt.Sprintf("Place %d/%d  Time %.1fs  Score: %d", g.finishers+1, cars, g.raceTime, g.score))
	case g.paused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	case g.countdown > 0:
		dst.DrawMessage(fmt.Sprintf("%d", int(math.Ceil(g.countdown))), "Get ready")
	}
}
