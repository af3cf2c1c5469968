package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete splash configuration
type Config struct {
	Timing  TimingConfig  `mapstructure:"timing"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Text    TextConfig    `mapstructure:"text"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TimingConfig controls the sequence delays and animation speeds
type TimingConfig struct {
	// RevealDelayMs is the delay from mount until the button fades in (default: 1000)
	RevealDelayMs int `mapstructure:"reveal_delay_ms"`
	// ZoomDelayMs is the delay from activation until the zoom begins (default: 500)
	ZoomDelayMs int `mapstructure:"zoom_delay_ms"`
	// BlackScreenDelayMs is the delay from activation until the black screen (default: 2000).
	// Must be greater than ZoomDelayMs.
	BlackScreenDelayMs int `mapstructure:"black_screen_delay_ms"`
	// ButtonTransitionMs is the duration of the button fade in and fade out (default: 500)
	ButtonTransitionMs int `mapstructure:"button_transition_ms"`
	// ZoomRate is the scale added per second while zooming (default: 0.75)
	ZoomRate float64 `mapstructure:"zoom_rate"`
	// MaxZoom caps the zoom scale (default: 4)
	MaxZoom float64 `mapstructure:"max_zoom"`
}

// AssetsConfig controls the background video and its fallback image
type AssetsConfig struct {
	// Video is the path of the ASCII frame file looped behind the button (default: "welcome.frames")
	Video string `mapstructure:"video"`
	// Fallback is a path or http(s) URL of a static image shown if the video fails to load.
	// Empty uses the built-in image.
	Fallback string `mapstructure:"fallback"`
	// FetchTimeoutMs bounds a remote fallback fetch (default: 3000)
	FetchTimeoutMs int `mapstructure:"fetch_timeout_ms"`
	// VideoFrameMs is how long each video frame stays on screen (default: 120)
	VideoFrameMs int `mapstructure:"video_frame_ms"`
	// Watch reloads the video when its file changes (default: false)
	Watch bool `mapstructure:"watch"`
}

// TextConfig controls the two text elements and their face
type TextConfig struct {
	// Button is the welcome button label (default: "Explore the world of HOBBIT's")
	Button string `mapstructure:"button"`
	// BlackScreen is the text centered on the final black screen
	BlackScreen string `mapstructure:"black_screen"`
	// Font is the face applied to both texts (default: "Metamorphous").
	// Unknown faces fall back to the default face.
	Font string `mapstructure:"font"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the built-in color theme (default: "default")
	Theme string `mapstructure:"theme"`
	// ThemeFile is an optional YAML theme that overrides Theme
	ThemeFile string `mapstructure:"theme_file"`
	// AltScreen runs the splash in the alternate screen buffer (default: true)
	AltScreen bool `mapstructure:"alt_screen"`
	// ShowHelp shows the key binding footer (default: true)
	ShowHelp bool `mapstructure:"show_help"`
	// FrameIntervalMs is the repaint interval for animations (default: 33)
	FrameIntervalMs int `mapstructure:"frame_interval_ms"`
	// OverlayOpacity is how strongly the dark overlay dims the background, 0-1 (default: 0.4)
	OverlayOpacity float64 `mapstructure:"overlay_opacity"`
	// ExitAfterMs quits this long after the black screen appears, 0 = stay until quit (default: 0)
	ExitAfterMs int `mapstructure:"exit_after_ms"`
	// Keys rebinds commands ("activate", "quit", "toggle_help") to lists of keys.
	// Unlisted commands keep their default keys.
	Keys map[string][]string `mapstructure:"keys"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logs are written (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the log directory. Empty means {config dir}/logs.
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the maximum log file size before rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep (default: 2)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Timing: TimingConfig{
			RevealDelayMs:      1000,
			ZoomDelayMs:        500,
			BlackScreenDelayMs: 2000,
			ButtonTransitionMs: 500,
			ZoomRate:           0.75,
			MaxZoom:            4,
		},
		Assets: AssetsConfig{
			Video:          "welcome.frames",
			Fallback:       "",
			FetchTimeoutMs: 3000,
			VideoFrameMs:   120,
			Watch:          false,
		},
		Text: TextConfig{
			Button:      "Explore the world of HOBBIT's",
			BlackScreen: "It's done soon",
			Font:        "Metamorphous",
		},
		TUI: TUIConfig{
			Theme:           "default",
			ThemeFile:       "",
			AltScreen:       true,
			ShowHelp:        true,
			FrameIntervalMs: 33,
			OverlayOpacity:  0.4,
			ExitAfterMs:     0,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// RevealDelay returns the reveal delay as a time.Duration
func (c *TimingConfig) RevealDelay() time.Duration {
	return time.Duration(c.RevealDelayMs) * time.Millisecond
}

// ZoomDelay returns the zoom delay as a time.Duration
func (c *TimingConfig) ZoomDelay() time.Duration {
	return time.Duration(c.ZoomDelayMs) * time.Millisecond
}

// BlackScreenDelay returns the black screen delay as a time.Duration
func (c *TimingConfig) BlackScreenDelay() time.Duration {
	return time.Duration(c.BlackScreenDelayMs) * time.Millisecond
}

// ButtonTransition returns the button fade duration as a time.Duration
func (c *TimingConfig) ButtonTransition() time.Duration {
	return time.Duration(c.ButtonTransitionMs) * time.Millisecond
}

// FetchTimeout returns the fallback fetch timeout as a time.Duration
func (c *AssetsConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// VideoFrame returns the per-frame duration of the background video
func (c *AssetsConfig) VideoFrame() time.Duration {
	return time.Duration(c.VideoFrameMs) * time.Millisecond
}

// FrameInterval returns the repaint interval as a time.Duration
func (c *TUIConfig) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// ExitAfter returns the delay before quitting on the black screen (0 means never)
func (c *TUIConfig) ExitAfter() time.Duration {
	return time.Duration(c.ExitAfterMs) * time.Millisecond
}

// ResolveDir returns the log directory, defaulting to {config dir}/logs.
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}
	return expandHome(c.Dir)
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Timing defaults
	viper.SetDefault("timing.reveal_delay_ms", defaults.Timing.RevealDelayMs)
	viper.SetDefault("timing.zoom_delay_ms", defaults.Timing.ZoomDelayMs)
	viper.SetDefault("timing.black_screen_delay_ms", defaults.Timing.BlackScreenDelayMs)
	viper.SetDefault("timing.button_transition_ms", defaults.Timing.ButtonTransitionMs)
	viper.SetDefault("timing.zoom_rate", defaults.Timing.ZoomRate)
	viper.SetDefault("timing.max_zoom", defaults.Timing.MaxZoom)

	// Asset defaults
	viper.SetDefault("assets.video", defaults.Assets.Video)
	viper.SetDefault("assets.fallback", defaults.Assets.Fallback)
	viper.SetDefault("assets.fetch_timeout_ms", defaults.Assets.FetchTimeoutMs)
	viper.SetDefault("assets.video_frame_ms", defaults.Assets.VideoFrameMs)
	viper.SetDefault("assets.watch", defaults.Assets.Watch)

	// Text defaults
	viper.SetDefault("text.button", defaults.Text.Button)
	viper.SetDefault("text.black_screen", defaults.Text.BlackScreen)
	viper.SetDefault("text.font", defaults.Text.Font)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)
	viper.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)
	viper.SetDefault("tui.show_help", defaults.TUI.ShowHelp)
	viper.SetDefault("tui.frame_interval_ms", defaults.TUI.FrameIntervalMs)
	viper.SetDefault("tui.overlay_opacity", defaults.TUI.OverlayOpacity)
	viper.SetDefault("tui.exit_after_ms", defaults.TUI.ExitAfterMs)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if it
// cannot be loaded.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "splash")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".splash"
	}
	return filepath.Join(home, ".config", "splash")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
