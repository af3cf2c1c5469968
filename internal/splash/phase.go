package splash

// Phase selects which view variant is active. Exactly one phase is active at
// any time.
type Phase int

const (
	PhaseWelcome Phase = iota
	PhaseZooming
	PhaseBlackScreen
)

// String returns the phase name used in logs and trace output.
func (p Phase) String() string {
	switch p {
	case PhaseWelcome:
		return "welcome"
	case PhaseZooming:
		return "zooming"
	case PhaseBlackScreen:
		return "blackScreen"
	default:
		return "unknown"
	}
}

// Next returns the phase that follows p. The final phase returns itself.
func (p Phase) Next() Phase {
	switch p {
	case PhaseWelcome:
		return PhaseZooming
	case PhaseZooming:
		return PhaseBlackScreen
	default:
		return PhaseBlackScreen
	}
}

// IsFinal reports whether no further phase exists.
func (p Phase) IsFinal() bool {
	return p == PhaseBlackScreen
}

// Phases returns every phase in sequence order.
func Phases() []Phase {
	return []Phase{PhaseWelcome, PhaseZooming, PhaseBlackScreen}
}
