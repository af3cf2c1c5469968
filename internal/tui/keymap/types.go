// Package keymap provides the key bindings of the splash screen.
//
// Bindings are declared per command and grouped by mode, one mode per
// animation phase, so the same key can mean different things, or nothing,
// as the sequence advances. Users may rebind commands from configuration.
package keymap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/splash/internal/splash"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the input mode, which follows the animation phase.
type Mode string

const (
	ModeWelcome     Mode = "welcome"      // Button may be activated
	ModeZooming     Mode = "zooming"      // Transition running
	ModeBlackScreen Mode = "black_screen" // Final screen
)

// ModeFor returns the input mode of a phase.
func ModeFor(phase splash.Phase) Mode {
	switch phase {
	case splash.PhaseZooming:
		return ModeZooming
	case splash.PhaseBlackScreen:
		return ModeBlackScreen
	default:
		return ModeWelcome
	}
}

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	CmdActivate   Command = "activate"
	CmdQuit       Command = "quit"
	CmdToggleHelp Command = "toggle_help"
)

// Commands returns every command in display order.
func Commands() []Command {
	return []Command{CmdActivate, CmdToggleHelp, CmdQuit}
}

// Keymap contains the bindings of every command and the commands active in
// each mode.
type Keymap struct {
	// Name identifies this keymap.
	Name string

	bindings map[Command]key.Binding
	modes    map[Mode][]Command
}

// Binding returns the binding of a command.
func (km *Keymap) Binding(cmd Command) key.Binding {
	return km.bindings[cmd]
}

// Lookup finds the command a key triggers in a mode.
func (km *Keymap) Lookup(msg tea.KeyMsg, mode Mode) (Command, bool) {
	for _, cmd := range km.modes[mode] {
		if key.Matches(msg, km.bindings[cmd]) {
			return cmd, true
		}
	}
	return "", false
}

// Rebind replaces the keys of commands. Keys are given in Bubble Tea's key
// notation ("enter", "ctrl+c", "q"); "space" is accepted for the space bar.
// Nothing is changed if any entry is invalid.
func (km *Keymap) Rebind(overrides map[string][]string) error {
	if err := ValidateOverrides(overrides); err != nil {
		return err
	}
	for name, keys := range overrides {
		cmd := Command(name)
		b := km.bindings[cmd]
		normalized := normalizeKeys(keys)
		b.SetKeys(normalized...)
		b.SetHelp(strings.Join(displayKeys(normalized), "/"), b.Help().Desc)
		km.bindings[cmd] = b
	}
	return nil
}

// ValidateOverrides checks that every command exists, every key spec is
// well formed, and no key ends up bound to two commands once the overrides
// are applied on top of the defaults.
func ValidateOverrides(overrides map[string][]string) error {
	for name, keys := range overrides {
		if !slices.Contains(Commands(), Command(name)) {
			return fmt.Errorf("unknown command %q", name)
		}
		if len(keys) == 0 {
			return fmt.Errorf("command %q has no keys", name)
		}
		for _, k := range keys {
			if err := ParseKeySpec(k); err != nil {
				return err
			}
		}
	}

	defaults := DefaultKeymap()
	owner := make(map[string]Command)
	for _, cmd := range Commands() {
		keys := defaults.bindings[cmd].Keys()
		if override, ok := overrides[string(cmd)]; ok {
			keys = normalizeKeys(override)
		}
		for _, k := range keys {
			if other, taken := owner[k]; taken && other != cmd {
				return fmt.Errorf("key %q is bound to both %q and %q", displayKeys([]string{k})[0], other, cmd)
			}
			owner[k] = cmd
		}
	}
	return nil
}

// ParseKeySpec validates a key specification such as "ctrl+r", "alt+q",
// "enter" or "j".
func ParseKeySpec(spec string) error {
	remaining := spec
	for {
		switch {
		case strings.HasPrefix(remaining, "ctrl+") && len(remaining) > 5:
			remaining = remaining[5:]
		case strings.HasPrefix(remaining, "alt+") && len(remaining) > 4:
			remaining = remaining[4:]
		case strings.HasPrefix(remaining, "shift+") && len(remaining) > 6:
			// Shifted letters arrive as uppercase runes, never as shift+x.
			if !shiftableKeys[remaining[6:]] {
				return fmt.Errorf("unrecognized key spec: %q (shift only combines with tab, arrows, home and end)", spec)
			}
			remaining = remaining[6:]
		default:
			if namedKeys[remaining] || len([]rune(remaining)) == 1 {
				return nil
			}
			return fmt.Errorf("unrecognized key spec: %q", spec)
		}
	}
}

var namedKeys = map[string]bool{
	"enter": true, "tab": true, "esc": true, "space": true, "backspace": true,
	"delete": true, "up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true, "insert": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

var shiftableKeys = map[string]bool{
	"tab": true, "up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true,
}

// normalizeKeys maps the config spelling of the space bar onto Bubble Tea's.
func normalizeKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == "space" {
			k = " "
		}
		out[i] = k
	}
	return out
}

func displayKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return out
}
