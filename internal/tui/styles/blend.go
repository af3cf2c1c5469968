package styles

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// toColorful parses a hex lipgloss color, treating anything unparseable as
// black.
func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}
	}
	return col
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Blend mixes a toward b by t in [0,1] and returns the hex result.
func Blend(a, b lipgloss.Color, t float64) lipgloss.Color {
	return lipgloss.Color(toColorful(a).BlendRgb(toColorful(b), clamp01(t)).Clamped().Hex())
}

// Fade returns fg as seen at the given opacity over bg.
func Fade(fg, bg lipgloss.Color, alpha float64) lipgloss.Color {
	return Blend(bg, fg, alpha)
}

// Gradient returns n colors from a to b blended in Luv space. n < 1 yields
// nil; n == 1 yields a.
func Gradient(a, b lipgloss.Color, n int) []lipgloss.Color {
	if n < 1 {
		return nil
	}
	ca, cb := toColorful(a), toColorful(b)
	out := make([]lipgloss.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = lipgloss.Color(ca.BlendLuv(cb, t).Clamped().Hex())
	}
	return out
}
