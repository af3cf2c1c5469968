package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
// Missing colors inherit from the Base theme.
type ThemeFile struct {
	Name    string      `yaml:"name"`
	Base    string      `yaml:"base,omitempty"`
	Version string      `yaml:"version"`
	Colors  ThemeColors `yaml:"colors"`
}

// ThemeColors contains the color overrides of a theme file.
type ThemeColors struct {
	SkyTop       string `yaml:"sky_top,omitempty"`
	SkyBottom    string `yaml:"sky_bottom,omitempty"`
	Overlay      string `yaml:"overlay,omitempty"`
	Button       string `yaml:"button,omitempty"`
	ButtonBorder string `yaml:"button_border,omitempty"`
	Backdrop     string `yaml:"backdrop,omitempty"`
	Text         string `yaml:"text,omitempty"`
	Muted        string `yaml:"muted,omitempty"`
}

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads and validates a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("name is required")
	}
	if t.Version != "" && t.Version != "1" {
		return fmt.Errorf("unsupported version %q (supported: 1)", t.Version)
	}
	if t.Base != "" && !IsBuiltinTheme(t.Base) {
		return fmt.Errorf("unknown base theme %q", t.Base)
	}

	for _, f := range t.Colors.fields() {
		if f.value != "" && !hexColorRegex.MatchString(f.value) {
			return fmt.Errorf("colors.%s: invalid hex color %q", f.name, f.value)
		}
	}
	return nil
}

type colorField struct {
	name  string
	value string
}

// fields lists the colors in file order.
func (c ThemeColors) fields() []colorField {
	return []colorField{
		{"sky_top", c.SkyTop},
		{"sky_bottom", c.SkyBottom},
		{"overlay", c.Overlay},
		{"button", c.Button},
		{"button_border", c.ButtonBorder},
		{"backdrop", c.Backdrop},
		{"text", c.Text},
		{"muted", c.Muted},
	}
}

// Palette builds the palette of the theme file on top of its base theme.
func (t *ThemeFile) Palette() Palette {
	base := ThemeDefault
	if t.Base != "" {
		base = ThemeName(t.Base)
	}
	p := GetPalette(base)

	override := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	override(&p.SkyTop, t.Colors.SkyTop)
	override(&p.SkyBottom, t.Colors.SkyBottom)
	override(&p.Overlay, t.Colors.Overlay)
	override(&p.Button, t.Colors.Button)
	override(&p.ButtonBorder, t.Colors.ButtonBorder)
	override(&p.Backdrop, t.Colors.Backdrop)
	override(&p.Text, t.Colors.Text)
	override(&p.Muted, t.Colors.Muted)
	return p
}

// Resolve returns the palette for the configured theme. A theme file wins
// over the theme name; if it cannot be loaded the named theme is used and
// the load error is returned alongside for logging.
func Resolve(theme, themeFile string) (Palette, error) {
	if themeFile != "" {
		tf, err := LoadThemeFile(themeFile)
		if err == nil {
			return tf.Palette(), nil
		}
		return GetPalette(ThemeName(theme)), err
	}
	return GetPalette(ThemeName(theme)), nil
}

// MarshalTheme renders a palette as a theme file, used by `config init`.
func MarshalTheme(name string, p Palette) ([]byte, error) {
	tf := ThemeFile{
		Name:    name,
		Version: "1",
		Colors: ThemeColors{
			SkyTop:       string(p.SkyTop),
			SkyBottom:    string(p.SkyBottom),
			Overlay:      string(p.Overlay),
			Button:       string(p.Button),
			ButtonBorder: string(p.ButtonBorder),
			Backdrop:     string(p.Backdrop),
			Text:         string(p.Text),
			Muted:        string(p.Muted),
		},
	}
	return yaml.Marshal(&tf)
}
