package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/Iron-Ham/splash/internal/tui/keymap"
	"github.com/Iron-Ham/splash/internal/tui/styles"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "timing.zoom_delay_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateTiming()...)
	errors = append(errors, c.validateAssets()...)
	errors = append(errors, c.validateText()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateTiming() []ValidationError {
	var errors []ValidationError
	t := c.Timing

	positive := []struct {
		field string
		value int
	}{
		{"timing.reveal_delay_ms", t.RevealDelayMs},
		{"timing.zoom_delay_ms", t.ZoomDelayMs},
		{"timing.black_screen_delay_ms", t.BlackScreenDelayMs},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must be positive",
			})
		}
	}

	// The black screen must land after the zoom or the phases would skip zooming.
	if t.ZoomDelayMs > 0 && t.BlackScreenDelayMs <= t.ZoomDelayMs {
		errors = append(errors, ValidationError{
			Field:   "timing.black_screen_delay_ms",
			Value:   t.BlackScreenDelayMs,
			Message: fmt.Sprintf("must be greater than timing.zoom_delay_ms (%d)", t.ZoomDelayMs),
		})
	}

	if t.ButtonTransitionMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "timing.button_transition_ms",
			Value:   t.ButtonTransitionMs,
			Message: "must be non-negative",
		})
	}
	if t.ZoomRate <= 0 {
		errors = append(errors, ValidationError{
			Field:   "timing.zoom_rate",
			Value:   t.ZoomRate,
			Message: "must be positive",
		})
	}
	if t.MaxZoom < 1 {
		errors = append(errors, ValidationError{
			Field:   "timing.max_zoom",
			Value:   t.MaxZoom,
			Message: "must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateAssets() []ValidationError {
	var errors []ValidationError
	a := c.Assets

	if strings.TrimSpace(a.Video) == "" {
		errors = append(errors, ValidationError{
			Field:   "assets.video",
			Value:   a.Video,
			Message: "must not be empty",
		})
	}

	if IsRemote(a.Fallback) {
		if u, err := url.Parse(a.Fallback); err != nil || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "assets.fallback",
				Value:   a.Fallback,
				Message: "must be a valid http(s) URL or a file path",
			})
		}
	}

	if a.FetchTimeoutMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "assets.fetch_timeout_ms",
			Value:   a.FetchTimeoutMs,
			Message: "must be positive",
		})
	}

	const minVideoFrame = 10
	if a.VideoFrameMs < minVideoFrame {
		errors = append(errors, ValidationError{
			Field:   "assets.video_frame_ms",
			Value:   a.VideoFrameMs,
			Message: fmt.Sprintf("must be at least %dms", minVideoFrame),
		})
	}

	return errors
}

func (c *Config) validateText() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Text.Button) == "" {
		errors = append(errors, ValidationError{
			Field:   "text.button",
			Value:   c.Text.Button,
			Message: "must not be empty",
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError
	t := c.TUI

	if t.ThemeFile == "" && !styles.IsBuiltinTheme(t.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   t.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(styles.BuiltinThemes(), ", ")),
		})
	}

	const minFrameInterval = 10
	const maxFrameInterval = 1000
	if t.FrameIntervalMs < minFrameInterval || t.FrameIntervalMs > maxFrameInterval {
		errors = append(errors, ValidationError{
			Field:   "tui.frame_interval_ms",
			Value:   t.FrameIntervalMs,
			Message: fmt.Sprintf("must be between %d and %d", minFrameInterval, maxFrameInterval),
		})
	}

	if t.OverlayOpacity < 0 || t.OverlayOpacity > 1 {
		errors = append(errors, ValidationError{
			Field:   "tui.overlay_opacity",
			Value:   t.OverlayOpacity,
			Message: "must be between 0 and 1",
		})
	}

	if t.ExitAfterMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "tui.exit_after_ms",
			Value:   t.ExitAfterMs,
			Message: "must be non-negative (0 disables)",
		})
	}

	if err := keymap.ValidateOverrides(t.Keys); err != nil {
		errors = append(errors, ValidationError{
			Field:   "tui.keys",
			Value:   t.Keys,
			Message: err.Error(),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError
	l := c.Logging

	if l.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(l.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   l.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if l.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   l.MaxSizeMB,
			Message: "must be non-negative (0 disables rotation)",
		})
	}
	if l.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   l.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// IsRemote reports whether an asset source is an http(s) URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
