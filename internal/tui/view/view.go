package view

import (
	"strings"

	"github.com/Iron-Ham/splash/internal/assets"
	"github.com/Iron-Ham/splash/internal/splash"
	"github.com/Iron-Ham/splash/internal/tui/styles"
	"github.com/Iron-Ham/splash/internal/util"
	"github.com/charmbracelet/lipgloss"
)

// Text holds the copy shown by the sequence.
type Text struct {
	Button      string
	BlackScreen string
}

// DefaultText returns the stock copy.
func DefaultText() Text {
	return Text{Button: "Explore the world of HOBBIT's", BlackScreen: "It's done soon"}
}

// Frame is everything needed for one paint.
type Frame struct {
	State  splash.State
	Width  int
	Height int

	// ButtonProgress is how far the current button transition has run, in
	// [0,1]. It means fade-in progress while the button is visible and
	// fade-out progress once it is fading out.
	ButtonProgress float64
	// Zoom is the background scale factor, 1 meaning unscaled.
	Zoom float64
	// VideoFrame indexes the background frame; it wraps around.
	VideoFrame int
	// Overlay is the opacity of the darkening layer, in [0,1].
	Overlay float64

	Background *assets.Background
	Palette    styles.Palette
	Face       Face
	Text       Text

	// Footer is an already rendered line drawn at the bottom, if any.
	Footer string
}

// Variant is one of the three screens of the sequence. The set is closed.
type Variant interface {
	Name() string
	render(f Frame, width, height int) []string
}

// WelcomeVariant shows the background and the welcome button.
type WelcomeVariant struct{}

// ZoomingVariant shows the background zooming in.
type ZoomingVariant struct{}

// BlackScreenVariant shows the final text on a solid backdrop.
type BlackScreenVariant struct{}

func (WelcomeVariant) Name() string     { return "welcome" }
func (ZoomingVariant) Name() string     { return "zooming" }
func (BlackScreenVariant) Name() string { return "blackScreen" }

// VariantFor returns the variant that renders phase.
func VariantFor(phase splash.Phase) Variant {
	switch phase {
	case splash.PhaseZooming:
		return ZoomingVariant{}
	case splash.PhaseBlackScreen:
		return BlackScreenVariant{}
	default:
		return WelcomeVariant{}
	}
}

// Render paints f. The result has exactly f.Height lines, each f.Width
// cells wide.
func Render(f Frame) string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}

	height := f.Height
	footer := ""
	if f.Footer != "" && f.Height > 2 {
		height--
		footer = util.FitLine(f.Footer, f.Width)
	}

	lines := VariantFor(f.State.Phase).render(f, f.Width, height)
	if footer != "" {
		lines = append(lines, footer)
	}
	return strings.Join(lines, "\n")
}

func (WelcomeVariant) render(f Frame, width, height int) []string {
	c := newCanvas(f, width, height, 1)
	c.placeButton(f)
	return c.lines()
}

func (ZoomingVariant) render(f Frame, width, height int) []string {
	return newCanvas(f, width, height, f.Zoom).lines()
}

func (BlackScreenVariant) render(f Frame, width, height int) []string {
	label := f.Face.Apply(f.Text.BlackScreen)
	label = util.Truncate(label, width)

	text := f.Face.Style().
		Foreground(f.Palette.Text).
		Background(f.Palette.Backdrop).
		Render(label)

	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text,
		lipgloss.WithWhitespaceBackground(f.Palette.Backdrop))
	return strings.Split(placed, "\n")
}
