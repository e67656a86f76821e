package autocomplete

// UIState is the dropdown state the host renders.
type UIState int

const (
	// StateClosed means no rendered items: the input is drawn fully rounded
	// with its bottom border visible.
	StateClosed UIState = iota
	// StateOpen means at least one rendered item: only the input's top corners
	// are rounded and its bottom edge merges into the dropdown.
	StateOpen
)

func (s UIState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Visual describes how the input box is decorated for a UIState.
type Visual struct {
	RoundTop     bool
	RoundBottom  bool
	BottomBorder bool
	// Merged is true when the dropdown is attached directly under the input.
	Merged bool
}

// VisualFor is the single mapping from UI state to input decoration.
func VisualFor(s UIState) Visual {
	if s == StateOpen {
		return Visual{RoundTop: true, Merged: true}
	}
	return Visual{RoundTop: true, RoundBottom: true, BottomBorder: true}
}

// Key classifies a key press for the controller.
type Key int

const (
	KeyOther Key = iota
	KeyDown
	KeyUp
	KeyCommit
)

func (k Key) String() string {
	switch k {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyCommit:
		return "commit"
	default:
		return "other"
	}
}
