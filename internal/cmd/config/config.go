// Package config provides CLI commands for managing splash configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	appconfig "github.com/Iron-Ham/splash/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify splash configuration",
	Long: `View or modify splash configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  splash config set timing.reveal_delay_ms 1500
  splash config set text.font Cinzel
  splash config set tui.theme ember

The resulting configuration is validated before it is written, so a value
that breaks a constraint (such as a black screen delay not after the zoom
delay) is rejected.

Run 'splash config show' to list every key.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/splash/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  splash config reset                        # Reset all to defaults
  splash config reset timing.zoom_delay_ms   # Reset only the zoom delay`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyKind is the value type of a settable key.
type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindFloat
)

// settableKeys returns every scalar key with its kind and default value.
func settableKeys() map[string]struct {
	kind keyKind
	def  any
} {
	d := appconfig.Default()
	type entry = struct {
		kind keyKind
		def  any
	}
	return map[string]entry{
		"timing.reveal_delay_ms":       {kindInt, d.Timing.RevealDelayMs},
		"timing.zoom_delay_ms":         {kindInt, d.Timing.ZoomDelayMs},
		"timing.black_screen_delay_ms": {kindInt, d.Timing.BlackScreenDelayMs},
		"timing.button_transition_ms":  {kindInt, d.Timing.ButtonTransitionMs},
		"timing.zoom_rate":             {kindFloat, d.Timing.ZoomRate},
		"timing.max_zoom":              {kindFloat, d.Timing.MaxZoom},
		"assets.video":                 {kindString, d.Assets.Video},
		"assets.fallback":              {kindString, d.Assets.Fallback},
		"assets.fetch_timeout_ms":      {kindInt, d.Assets.FetchTimeoutMs},
		"assets.video_frame_ms":        {kindInt, d.Assets.VideoFrameMs},
		"assets.watch":                 {kindBool, d.Assets.Watch},
		"text.button":                  {kindString, d.Text.Button},
		"text.black_screen":            {kindString, d.Text.BlackScreen},
		"text.font":                    {kindString, d.Text.Font},
		"tui.theme":                    {kindString, d.TUI.Theme},
		"tui.theme_file":               {kindString, d.TUI.ThemeFile},
		"tui.alt_screen":               {kindBool, d.TUI.AltScreen},
		"tui.show_help":                {kindBool, d.TUI.ShowHelp},
		"tui.frame_interval_ms":        {kindInt, d.TUI.FrameIntervalMs},
		"tui.overlay_opacity":          {kindFloat, d.TUI.OverlayOpacity},
		"tui.exit_after_ms":            {kindInt, d.TUI.ExitAfterMs},
		"logging.enabled":              {kindBool, d.Logging.Enabled},
		"logging.level":                {kindString, d.Logging.Level},
		"logging.dir":                  {kindString, d.Logging.Dir},
		"logging.max_size_mb":          {kindInt, d.Logging.MaxSizeMB},
		"logging.max_backups":          {kindInt, d.Logging.MaxBackups},
	}
}

// parseValue converts a command-line value to the key's type.
func parseValue(key string, kind keyKind, value string) (any, error) {
	switch kind {
	case kindBool:
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected number", key)
		}
		return f, nil
	default:
		return value, nil
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	spec, ok := settableKeys()[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(sortedKeys(), ", "))
	}

	typedValue, err := parseValue(key, spec.kind, value)
	if err != nil {
		return err
	}

	previous := viper.Get(key)
	viper.Set(key, typedValue)
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("rejected %s = %v: %w", key, typedValue, err)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'splash config set' to modify values", configFile)
	}

	if err := os.MkdirAll(appconfig.ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit this file to customize the splash.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: SPLASH_* (e.g., SPLASH_TIMING_REVEAL_DELAY_MS)")
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	keys := settableKeys()

	if len(args) == 0 {
		for key, spec := range keys {
			viper.Set(key, spec.def)
		}
		viper.Set("tui.keys", map[string][]string{})
		fmt.Fprintln(cmd.OutOrStdout(), "Reset all configuration to defaults.")
	} else {
		key := args[0]
		spec, ok := keys[key]
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(sortedKeys(), ", "))
		}
		viper.Set(key, spec.def)
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s to default: %v\n", key, spec.def)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

func writeConfig() (string, error) {
	if err := os.MkdirAll(appconfig.ConfigDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

func sortedKeys() []string {
	keys := make([]string, 0)
	for k := range settableKeys() {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

const defaultConfigContent = `# Splash Configuration

# Sequence timing. Zoom and black screen delays are measured from activation;
# the black screen must come after the zoom.
timing:
  reveal_delay_ms: 1000
  zoom_delay_ms: 500
  black_screen_delay_ms: 2000
  # Duration of the button fade in and fade out
  button_transition_ms: 500
  # Scale added per second while zooming, and its cap
  zoom_rate: 0.75
  max_zoom: 4

# Background assets
assets:
  # ASCII frames separated by lines containing only %%
  video: welcome.frames
  # Static image (path or http(s) URL) shown if the video cannot load.
  # Empty uses the built-in image.
  fallback: ""
  fetch_timeout_ms: 3000
  video_frame_ms: 120
  # Reload the video when the file changes
  watch: false

# Text elements
text:
  button: Explore the world of HOBBIT's
  black_screen: It's done soon
  # Face: Metamorphous, Cinzel, Garamond, Plain
  font: Metamorphous

# Terminal UI
tui:
  # Built-in theme: default, ember, mono
  theme: default
  # Optional YAML theme file overriding the theme above
  theme_file: ""
  alt_screen: true
  show_help: true
  frame_interval_ms: 33
  overlay_opacity: 0.4
  # Quit this long after the black screen appears (0 = stay)
  exit_after_ms: 0
  # Rebind commands: activate, quit, toggle_help
  # keys:
  #   activate: [enter, space]

# Debug logging
logging:
  enabled: true
  # debug, info, warn, error
  level: info
  # Empty uses ~/.config/splash/logs
  dir: ""
  max_size_mb: 5
  max_backups: 2
`
