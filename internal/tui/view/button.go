package view

import (
	"math"
	"strings"

	"github.com/Iron-Ham/splash/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ButtonRise is how many rows below rest the hidden button sits.
const ButtonRise = 2

// ButtonSink is how many rows below rest the button settles while fading out.
const ButtonSink = ButtonRise / 2

// ButtonVisual is the appearance of the welcome button at one instant.
type ButtonVisual struct {
	// Alpha is the opacity in [0,1].
	Alpha float64
	// Offset is the vertical displacement in rows from the resting
	// position; positive is below.
	Offset int
}

// Hidden reports whether the button is fully transparent.
func (v ButtonVisual) Hidden() bool {
	return v.Alpha <= 0
}

// ButtonVisualFor computes the button appearance. Before it is visible the
// button is transparent and sits ButtonRise rows low; once visible it fades
// in while rising to rest; once fading out it fades while sinking ButtonSink
// rows. Fading out takes precedence over visibility.
func ButtonVisualFor(visible, fadingOut bool, progress float64) ButtonVisual {
	p := math.Max(0, math.Min(1, progress))
	switch {
	case fadingOut:
		return ButtonVisual{Alpha: 1 - p, Offset: int(math.Round(p * ButtonSink))}
	case visible:
		return ButtonVisual{Alpha: p, Offset: int(math.Round((1 - p) * ButtonRise))}
	default:
		return ButtonVisual{Alpha: 0, Offset: ButtonRise}
	}
}

// renderButton draws the bordered label faded against bg.
func renderButton(f Frame, alpha float64, bg lipgloss.Color) string {
	fg := styles.Fade(f.Palette.Button, bg, alpha)
	border := styles.Fade(f.Palette.ButtonBorder, bg, alpha)

	return f.Face.Style().
		Foreground(fg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		Render(f.Face.Apply(f.Text.Button))
}

// placeButton overlays the button on the center of the canvas.
func (c *canvas) placeButton(f Frame) {
	visual := ButtonVisualFor(f.State.ButtonVisible, f.State.ButtonFadingOut, f.ButtonProgress)
	if visual.Hidden() || len(c.rows) == 0 {
		return
	}

	width := len(c.rows[0])
	height := len(c.rows)
	mid := height / 2

	block := strings.Split(renderButton(f, visual.Alpha, c.colorAt(mid)), "\n")
	bw := lipgloss.Width(strings.Join(block, "\n"))
	bh := len(block)

	x := max(0, (width-bw)/2)
	y := (height-bh)/2 + visual.Offset
	for i, line := range block {
		row := y + i
		if row < 0 || row >= height {
			continue
		}
		line = ansi.Truncate(line, width, "")
		c.spans[row] = span{x: x, width: min(bw, width), text: line}
	}
}
