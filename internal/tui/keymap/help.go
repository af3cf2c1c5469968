package keymap

import "github.com/charmbracelet/bubbles/key"

// ModeHelp adapts a keymap to bubbles/help for one mode.
type ModeHelp struct {
	km          *Keymap
	mode        Mode
	canActivate bool
}

// Help returns the help bindings for a mode. The activate binding is shown
// only while activation would be accepted.
func (km *Keymap) Help(mode Mode, canActivate bool) ModeHelp {
	return ModeHelp{km: km, mode: mode, canActivate: canActivate}
}

func (h ModeHelp) bindings() []key.Binding {
	var out []key.Binding
	for _, cmd := range h.km.modes[h.mode] {
		b := h.km.bindings[cmd]
		if cmd == CmdActivate && !h.canActivate {
			b.SetEnabled(false)
		}
		out = append(out, b)
	}
	return out
}

// ShortHelp implements help.KeyMap.
func (h ModeHelp) ShortHelp() []key.Binding {
	return h.bindings()
}

// FullHelp implements help.KeyMap.
func (h ModeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.bindings()}
}
