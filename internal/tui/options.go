package tui

import (
	"fmt"
	"time"

	"github.com/Iron-Ham/splash/internal/assets"
	"github.com/Iron-Ham/splash/internal/config"
	"github.com/Iron-Ham/splash/internal/logging"
	"github.com/Iron-Ham/splash/internal/splash"
	"github.com/Iron-Ham/splash/internal/tui/keymap"
	"github.com/Iron-Ham/splash/internal/tui/styles"
	"github.com/Iron-Ham/splash/internal/tui/view"
)

// Options configures a Model.
type Options struct {
	Timing           splash.Timing
	ButtonTransition time.Duration
	ZoomRate         float64
	MaxZoom          float64
	VideoFrame       time.Duration
	FrameInterval    time.Duration
	Overlay          float64
	// ExitAfter quits this long after the black screen appears; 0 stays.
	ExitAfter time.Duration
	ShowHelp  bool

	Palette styles.Palette
	Face    view.Face
	Text    view.Text
	Keymap  *keymap.Keymap

	// Loader loads the background; nil shows the builtin image.
	Loader *assets.Loader
	// Watcher triggers background reloads; nil disables hot reload.
	Watcher *assets.Watcher

	Logger *logging.Logger
	// Now is the clock; nil uses time.Now.
	Now func() time.Time
}

// DefaultOptions returns options matching the default configuration.
func DefaultOptions() Options {
	face, _ := view.LookupFace(view.DefaultFaceName)
	return Options{
		Timing:           splash.DefaultTiming(),
		ButtonTransition: 500 * time.Millisecond,
		ZoomRate:         0.75,
		MaxZoom:          4,
		VideoFrame:       120 * time.Millisecond,
		FrameInterval:    33 * time.Millisecond,
		Overlay:          0.4,
		ShowHelp:         true,
		Palette:          styles.DefaultPalette(),
		Face:             face,
		Text:             view.DefaultText(),
		Keymap:           keymap.DefaultKeymap(),
	}
}

// OptionsFromConfig builds options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config, logger *logging.Logger) (Options, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}

	palette, err := styles.Resolve(cfg.TUI.Theme, cfg.TUI.ThemeFile)
	if err != nil {
		logger.Warn("theme file unavailable, using named theme",
			"theme_file", cfg.TUI.ThemeFile, "theme", cfg.TUI.Theme, "error", err)
	}

	face, ok := view.LookupFace(cfg.Text.Font)
	if !ok {
		logger.Warn("unknown font face, using default", "font", cfg.Text.Font, "default", face.Name)
	}

	km := keymap.DefaultKeymap()
	if err := km.Rebind(cfg.TUI.Keys); err != nil {
		return Options{}, fmt.Errorf("invalid key bindings: %w", err)
	}

	return Options{
		Timing: splash.Timing{
			RevealDelay:      cfg.Timing.RevealDelay(),
			ZoomDelay:        cfg.Timing.ZoomDelay(),
			BlackScreenDelay: cfg.Timing.BlackScreenDelay(),
		},
		ButtonTransition: cfg.Timing.ButtonTransition(),
		ZoomRate:         cfg.Timing.ZoomRate,
		MaxZoom:          cfg.Timing.MaxZoom,
		VideoFrame:       cfg.Assets.VideoFrame(),
		FrameInterval:    cfg.TUI.FrameInterval(),
		Overlay:          cfg.TUI.OverlayOpacity,
		ExitAfter:        cfg.TUI.ExitAfter(),
		ShowHelp:         cfg.TUI.ShowHelp,
		Palette:          palette,
		Face:             face,
		Text: view.Text{
			Button:      cfg.Text.Button,
			BlackScreen: cfg.Text.BlackScreen,
		},
		Keymap: km,
		Loader: &assets.Loader{
			Video:    cfg.Assets.Video,
			Fallback: cfg.Assets.Fallback,
			Timeout:  cfg.Assets.FetchTimeout(),
			Logger:   logger,
		},
		Logger: logger,
	}, nil
}
