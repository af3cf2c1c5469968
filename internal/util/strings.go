// Package util provides text fitting helpers shared by the views.
package util

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

// Truncate cuts plain text to maxWidth cells, marking the cut with an
// ellipsis. Wide runes count as two cells.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// FitLine returns the first line of s cut or padded to exactly width cells.
// Escape sequences are kept and do not count toward the width.
func FitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
