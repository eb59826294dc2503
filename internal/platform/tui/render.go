package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// palette maps core.Color to ANSI 256 color codes.
var palette = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// ScreenRenderer turns screens into styled strings for one output. SSH
// sessions each get their own, built on the session's lipgloss renderer, so
// the color profile matches the remote terminal.
type ScreenRenderer struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
}

// NewScreenRenderer creates a screen renderer. A nil r uses the default
// lipgloss renderer of the local terminal.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	sr := &ScreenRenderer{
		styles: make(map[core.Color]lipgloss.Style, len(palette)),
		plain:  r.NewStyle(),
	}
	for c, code := range palette {
		sr.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return sr
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			style, ok := sr.styles[color]
			if !ok {
				style = sr.plain
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders s for the local terminal.
func RenderScreen(s *core.Screen) string {
	return localRenderer().Render(s)
}

var localRenderer = sync.OnceValue(func() *ScreenRenderer {
	return NewScreenRenderer(nil)
})
