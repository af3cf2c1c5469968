// Package styles defines the colors and lipgloss styles used by the splash
// views, the built-in themes, and YAML theme loading.
package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault ThemeName = "default" // Violet dusk over a dark sky
	ThemeEmber   ThemeName = "ember"   // Warm amber glow
	ThemeMono    ThemeName = "mono"    // Grayscale
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeEmber),
		string(ThemeMono),
	}
}

// IsBuiltinTheme checks if a theme name is built in.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// Palette is the color scheme of the splash. All colors are hex.
type Palette struct {
	// SkyTop and SkyBottom are the vertical gradient of the background.
	SkyTop    lipgloss.Color
	SkyBottom lipgloss.Color
	// Overlay is the translucent layer dimming the background.
	Overlay lipgloss.Color
	// Button is the button label color; ButtonBorder frames it.
	Button       lipgloss.Color
	ButtonBorder lipgloss.Color
	// Backdrop is the solid color of the final screen.
	Backdrop lipgloss.Color
	// Text is the final screen text color.
	Text lipgloss.Color
	// Muted is used for the help footer.
	Muted lipgloss.Color
}

var palettes = map[ThemeName]Palette{
	ThemeDefault: {
		SkyTop:       "#7C3AED",
		SkyBottom:    "#0EA5E9",
		Overlay:      "#000000",
		Button:       "#F9FAFB",
		ButtonBorder: "#A78BFA",
		Backdrop:     "#000000",
		Text:         "#F9FAFB",
		Muted:        "#6B7280",
	},
	ThemeEmber: {
		SkyTop:       "#F59E0B",
		SkyBottom:    "#B91C1C",
		Overlay:      "#0C0A09",
		Button:       "#FEF3C7",
		ButtonBorder: "#FB923C",
		Backdrop:     "#000000",
		Text:         "#FDE68A",
		Muted:        "#78716C",
	},
	ThemeMono: {
		SkyTop:       "#E5E7EB",
		SkyBottom:    "#4B5563",
		Overlay:      "#000000",
		Button:       "#FFFFFF",
		ButtonBorder: "#9CA3AF",
		Backdrop:     "#000000",
		Text:         "#FFFFFF",
		Muted:        "#6B7280",
	},
}

// GetPalette returns the palette for a built-in theme, or the default
// palette if the name is unknown.
func GetPalette(name ThemeName) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[ThemeDefault]
}

// DefaultPalette returns the default theme palette.
func DefaultPalette() Palette {
	return palettes[ThemeDefault]
}
