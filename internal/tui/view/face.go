package view

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultFaceName is the face used when none, or an unknown one, is named.
const DefaultFaceName = "Metamorphous"

// Face is a named text treatment standing in for a typeface.
type Face struct {
	Name   string
	Bold   bool
	Italic bool
	Upper  bool
	// Tracking is the number of spaces inserted between letters.
	Tracking int
}

var faces = map[string]Face{
	"Metamorphous": {Name: "Metamorphous", Bold: true, Tracking: 1},
	"Cinzel":       {Name: "Cinzel", Upper: true, Tracking: 2},
	"Garamond":     {Name: "Garamond", Italic: true},
	"Plain":        {Name: "Plain"},
}

// FaceNames lists the registered faces in alphabetical order.
func FaceNames() []string {
	names := make([]string, 0, len(faces))
	for name := range faces {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupFace returns the named face, matching case-insensitively. Unknown
// names yield the default face and false.
func LookupFace(name string) (Face, bool) {
	for key, f := range faces {
		if strings.EqualFold(key, name) {
			return f, true
		}
	}
	return faces[DefaultFaceName], false
}

// Style returns the lipgloss style carrying the face's weight and slant.
func (f Face) Style() lipgloss.Style {
	return lipgloss.NewStyle().Bold(f.Bold).Italic(f.Italic)
}

// Apply transforms text by the face's case and tracking.
func (f Face) Apply(text string) string {
	if f.Upper {
		text = strings.ToUpper(text)
	}
	if f.Tracking <= 0 || text == "" {
		return text
	}

	gap := strings.Repeat(" ", f.Tracking)
	var b strings.Builder
	for i, r := range []rune(text) {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteRune(r)
	}
	return b.String()
}
