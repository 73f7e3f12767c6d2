package domain

// WindowState is the activity classification of one cove window.
type WindowState int

const (
	// StateFresh means no hook event has been seen for the window's pane yet.
	StateFresh WindowState = iota
	// StateWorking means the assistant is generating output.
	StateWorking
	// StateAsking means the assistant is blocked on a question to the user.
	StateAsking
	// StateIdle means the assistant finished and waits for the next prompt.
	StateIdle
	// StateDone means the assistant exited and a shell owns the pane.
	StateDone
)

// String returns the lowercase name used in NDJSON output and --where filters
func (s WindowState) String() string {
	switch s {
	case StateWorking:
		return "working"
	case StateAsking:
		return "asking"
	case StateIdle:
		return "idle"
	case StateDone:
		return "done"
	default:
		return "fresh"
	}
}

// ParseState translates an event tag. Unknown tags map to StateFresh so new
// hook vocabulary never breaks classification.
func ParseState(tag string) WindowState {
	switch tag {
	case TagWorking:
		return StateWorking
	case TagIdle:
		return StateIdle
	case TagAsking:
		return StateAsking
	default:
		return StateFresh
	}
}

// WindowSnapshot is the live view of one window's assistant pane.
type WindowSnapshot struct {
	Index   int    // tmux window index
	Command string // pane_current_command of pane .1
	PaneID  string // pane_id of pane .1
}

// WindowInfo describes a window in the cove session
type WindowInfo struct {
	Index    int
	Name     string
	Active   bool
	PanePath string
}
