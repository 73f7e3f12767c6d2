package domain

// Event state tags written by the hook command.
const (
	TagWorking = "working"
	TagIdle    = "idle"
	TagAsking  = "asking"
)

// EventRecord is one line of a session event log.
type EventRecord struct {
	State  string `json:"state"`             // "working", "idle", "asking"; others are tolerated
	Cwd    string `json:"cwd"`               // Directory the hook observed (informational)
	PaneID string `json:"pane_id,omitempty"` // tmux pane id, e.g. "%3"; empty on legacy records
	TS     uint64 `json:"ts"`                // Unix seconds when the hook fired
}
