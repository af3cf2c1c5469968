package splash

// State is the AnimationState of one splash session.
type State struct {
	Phase           Phase
	ButtonVisible   bool
	ButtonFadingOut bool
}

// InitialState is the state on mount.
func InitialState() State {
	return State{Phase: PhaseWelcome}
}

// Event is a transition request fed to Reduce.
type Event int

const (
	// EventRevealButton fires once the reveal delay has elapsed after mount.
	EventRevealButton Event = iota
	// EventActivate is the user activating the welcome button.
	EventActivate
	// EventBeginZoom moves welcome to zooming.
	EventBeginZoom
	// EventShowBlackScreen moves zooming to blackScreen.
	EventShowBlackScreen
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventRevealButton:
		return "reveal_button"
	case EventActivate:
		return "activate"
	case EventBeginZoom:
		return "begin_zoom"
	case EventShowBlackScreen:
		return "show_black_screen"
	default:
		return "unknown"
	}
}

// Reduce applies ev to s and reports whether the event was accepted. A
// rejected event returns s unchanged. Reduce never moves the phase backwards
// and never leaves ButtonFadingOut set outside the welcome phase.
func Reduce(s State, ev Event) (State, bool) {
	switch ev {
	case EventRevealButton:
		if s.ButtonVisible || s.Phase != PhaseWelcome {
			return s, false
		}
		s.ButtonVisible = true
		return s, true

	case EventActivate:
		if !s.CanActivate() {
			return s, false
		}
		s.ButtonFadingOut = true
		return s, true

	case EventBeginZoom:
		if s.Phase != PhaseWelcome {
			return s, false
		}
		s.Phase = PhaseZooming
		s.ButtonFadingOut = false
		return s, true

	case EventShowBlackScreen:
		if s.Phase != PhaseZooming {
			return s, false
		}
		s.Phase = PhaseBlackScreen
		return s, true
	}
	return s, false
}

// CanActivate reports whether the button currently accepts activation.
func (s State) CanActivate() bool {
	return s.Phase == PhaseWelcome && s.ButtonVisible && !s.ButtonFadingOut
}

// Transition records one accepted event.
type Transition struct {
	Event Event
	From  State
	To    State
}

// PhaseChanged reports whether the transition moved to a new phase.
func (t Transition) PhaseChanged() bool {
	return t.From.Phase != t.To.Phase
}

// ButtonChanged reports whether either button flag changed.
func (t Transition) ButtonChanged() bool {
	return t.From.ButtonVisible != t.To.ButtonVisible ||
		t.From.ButtonFadingOut != t.To.ButtonFadingOut
}
