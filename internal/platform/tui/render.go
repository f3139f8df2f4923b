package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/microtris/internal/core"
)

// ansiCodes maps core.Color to terminal color codes.
var ansiCodes = map[core.Color]string{
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

// Palette holds one lipgloss style per color, bound to a renderer.
// SSH sessions get their own renderer so color detection follows the
// client's terminal rather than the server's.
type Palette struct {
	styles map[core.Color]lipgloss.Style
}

// NewPalette builds the styles for r. A nil renderer means the default one.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make(map[core.Color]lipgloss.Style, len(ansiCodes)+1)
	styles[core.ColorDefault] = r.NewStyle()
	for c, code := range ansiCodes {
		styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return Palette{styles: styles}
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells of the same color share one escape sequence.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p.styles[start]
			if !ok {
				style = p.styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders with the default renderer.
func RenderScreen(s *core.Screen) string {
	return NewPalette(nil).Render(s)
}
