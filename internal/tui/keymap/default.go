package keymap

import "github.com/charmbracelet/bubbles/key"

// DefaultKeymap returns the stock bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		bindings: map[Command]key.Binding{
			CmdActivate: key.NewBinding(
				key.WithKeys("enter", " "),
				key.WithHelp("enter/space", "enter"),
			),
			CmdToggleHelp: key.NewBinding(
				key.WithKeys("?"),
				key.WithHelp("?", "hide help"),
			),
			CmdQuit: key.NewBinding(
				key.WithKeys("q", "esc", "ctrl+c"),
				key.WithHelp("q/esc", "quit"),
			),
		},
		modes: map[Mode][]Command{
			ModeWelcome:     {CmdActivate, CmdToggleHelp, CmdQuit},
			ModeZooming:     {CmdToggleHelp, CmdQuit},
			ModeBlackScreen: {CmdToggleHelp, CmdQuit},
		},
	}
}
