package microtris

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vovakirdan/microtris/internal/core"
	"github.com/vovakirdan/microtris/internal/games/microtris/field"
)

// Style controls how cell states are drawn. Each grid cell is two screen
// columns wide so the board looks square in a terminal.
type Style struct {
	Empty        rune
	Falling      rune
	Landed       rune
	FallingColor core.Color
	LandedColor  core.Color
	FrameColor   core.Color
}

// DefaultStyle mirrors the LED board: a bright falling piece over a dimmer stack.
func DefaultStyle() Style {
	return Style{
		Empty:        '·',
		Falling:      '█',
		Landed:       '▓',
		FallingColor: core.ColorBrightCyan,
		LandedColor:  core.ColorBlue,
		FrameColor:   core.ColorGray,
	}
}

var (
	styleMu      sync.RWMutex
	defaultStyle = DefaultStyle()
)

// SetStyle changes the style used by games created afterwards.
func SetStyle(s Style) {
	styleMu.Lock()
	defer styleMu.Unlock()
	defaultStyle = s
}

func currentStyle() Style {
	styleMu.RLock()
	defer styleMu.RUnlock()
	return defaultStyle
}

const (
	cellW  = 2
	hudH   = 2
	boardW = field.Cols*cellW + 2
	boardH = field.Rows + 2
)

// MinScreen is the smallest screen the board fits on.
var MinScreen = core.NewRect(0, 0, boardW+2, boardH+hudH+2)

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreen.W || dst.Height() < MinScreen.H {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	g.renderHUD(dst)
	frame := core.NewRect((dst.Width()-boardW)/2, hudH, boardW, boardH)
	g.renderBoard(dst, frame)

	status := g.Stats().String()
	dst.DrawTextCentered(frame.Bottom(), status)

	switch {
	case g.st != nil && g.st.GameOver():
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("%d rows - R to restart", g.st.Cleared))
	case g.paused:
		g.renderOverlay(dst, "Paused", "P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s - Rows: %d", g.title, g.State().Score)
	dst.DrawText(0, 0, hud)
	dst.DrawTextColored(0, 1, strings.Repeat("─", dst.Width()), g.style.FrameColor)
}

func (g *Game) renderBoard(dst *core.Screen, frame core.Rect) {
	dst.DrawBox(frame, g.style.FrameColor)
	for r := range field.Rows {
		for c := range field.Cols {
			ch, color := g.glyph(g.grid[r][c])
			x := frame.X + 1 + c*cellW
			y := frame.Y + 1 + r
			for i := range cellW {
				dst.SetColored(x+i, y, ch, color)
			}
		}
	}
}

// glyph maps a cell state to its rune and color.
func (g *Game) glyph(c field.Cell) (rune, core.Color) {
	switch c {
	case field.Falling:
		return g.style.Falling, g.style.FallingColor
	case field.Landed:
		return g.style.Landed, g.style.LandedColor
	default:
		return g.style.Empty, g.style.FrameColor
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(w, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, g.style.FrameColor)
	drawCentered(dst, box, box.Y+1, line1)
	drawCentered(dst, box, box.Y+3, line2)
}

func drawCentered(dst *core.Screen, box core.Rect, y int, text string) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawText(x, y, text)
}
