package view

import (
	"math"
	"strings"
	"time"

	"github.com/Iron-Ham/splash/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Progress returns elapsed/duration clamped to [0,1]. A non-positive
// duration completes immediately.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return math.Max(0, math.Min(1, float64(elapsed)/float64(duration)))
}

// ZoomFactor grows linearly from 1 at rate per second, capped at maxZoom.
func ZoomFactor(elapsed time.Duration, rate, maxZoom float64) float64 {
	z := 1 + rate*math.Max(0, elapsed.Seconds())
	if maxZoom >= 1 {
		z = math.Min(z, maxZoom)
	}
	return z
}

// canvas is the dimmed background of the welcome and zooming screens, one
// plain row of single-width cells per line with a color per row.
type canvas struct {
	rows   [][]rune
	colors []lipgloss.Color
	// spans maps a row to an already styled segment drawn over it.
	spans map[int]span
}

type span struct {
	x, width int
	text     string
}

func newCanvas(f Frame, width, height int, zoom float64) *canvas {
	var frame []string
	if f.Background != nil {
		frame = f.Background.Frame(f.VideoFrame)
	}

	sky := styles.Gradient(f.Palette.SkyTop, f.Palette.SkyBottom, height)
	colors := make([]lipgloss.Color, height)
	for y, c := range sky {
		colors[y] = styles.Fade(f.Palette.Overlay, c, f.Overlay)
	}

	return &canvas{
		rows:   sampleFrame(frame, width, height, zoom),
		colors: colors,
		spans:  make(map[int]span),
	}
}

// sampleFrame scales frame to width x height with nearest-neighbor sampling,
// stretched to fill and then magnified about the center by zoom. Cells that
// are not single-width are blanked.
func sampleFrame(frame []string, width, height int, zoom float64) [][]rune {
	if zoom < 1 {
		zoom = 1
	}

	src := make([][]rune, len(frame))
	srcW := 0
	for i, line := range frame {
		src[i] = []rune(line)
		srcW = max(srcW, len(src[i]))
	}

	rows := make([][]rune, height)
	for y := range rows {
		row := make([]rune, width)
		sy := sampleIndex(y, height, len(src), zoom)
		for x := range row {
			r := ' '
			if sy >= 0 {
				if sx := sampleIndex(x, width, srcW, zoom); sx < len(src[sy]) {
					r = src[sy][sx]
				}
			}
			if runewidth.RuneWidth(r) != 1 {
				r = ' '
			}
			row[x] = r
		}
		rows[y] = row
	}
	return rows
}

// sampleIndex maps output cell i of n onto a source of srcN cells. It
// returns -1 for an empty source.
func sampleIndex(i, n, srcN int, zoom float64) int {
	if srcN == 0 || n == 0 {
		return -1
	}
	t := (float64(i)+0.5)/float64(n) - 0.5
	idx := int(math.Floor(t/zoom*float64(srcN) + float64(srcN)/2))
	return min(max(idx, 0), srcN-1)
}

// colorAt is the dimmed background color of row y.
func (c *canvas) colorAt(y int) lipgloss.Color {
	if len(c.colors) == 0 {
		return ""
	}
	return c.colors[min(max(y, 0), len(c.colors)-1)]
}

func (c *canvas) lines() []string {
	out := make([]string, len(c.rows))
	for y, row := range c.rows {
		style := lipgloss.NewStyle().Foreground(c.colors[y])
		sp, ok := c.spans[y]
		if !ok {
			out[y] = style.Render(string(row))
			continue
		}

		var b strings.Builder
		if sp.x > 0 {
			b.WriteString(style.Render(string(row[:sp.x])))
		}
		b.WriteString(sp.text)
		if end := sp.x + sp.width; end < len(row) {
			b.WriteString(style.Render(string(row[end:])))
		}
		out[y] = b.String()
	}
	return out
}
