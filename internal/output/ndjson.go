// Package output renders command results as NDJSON or text tables.
package output

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/vburojevic/cove/internal/domain"
)

// SchemaVersion is stamped on every NDJSON object cove emits.
const SchemaVersion = 1

// NDJSONWriter writes one JSON object per line
type NDJSONWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewNDJSONWriter creates a writer over w
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{enc: json.NewEncoder(w)}
}

// Write encodes v as one line
func (w *NDJSONWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(v)
}

// ErrorOutput is the NDJSON form of a command failure
type ErrorOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// WriteError emits an error object
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	out := ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		out.Hint = hint[0]
	}
	return w.Write(out)
}

// WindowOutput is one window line of list and status
type WindowOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Index         int    `json:"index"`
	Name          string `json:"name"`
	Active        bool   `json:"active"`
	Path          string `json:"path"`
	PaneID        string `json:"pane_id,omitempty"`
	Command       string `json:"command,omitempty"`
	State         string `json:"state,omitempty"`
}

// WriteWindow emits a "window" object without state
func (w *NDJSONWriter) WriteWindow(ws domain.WindowStatus) error {
	return w.Write(WindowOutput{
		Type:          "window",
		SchemaVersion: SchemaVersion,
		Index:         ws.Index,
		Name:          ws.Name,
		Active:        ws.Active,
		Path:          ws.Path,
	})
}

// WriteStatus emits a "window_status" object
func (w *NDJSONWriter) WriteStatus(ws domain.WindowStatus) error {
	return w.Write(WindowOutput{
		Type:          "window_status",
		SchemaVersion: SchemaVersion,
		Index:         ws.Index,
		Name:          ws.Name,
		Active:        ws.Active,
		Path:          ws.Path,
		PaneID:        ws.PaneID,
		Command:       ws.Command,
		State:         ws.State.String(),
	})
}

// ResultOutput reports the outcome of a mutating command
type ResultOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Action        string `json:"action"`
	Target        string `json:"target,omitempty"`
	Count         *int   `json:"count,omitempty"`
	Message       string `json:"message,omitempty"`
}

// WriteResult emits a "result" object
func (w *NDJSONWriter) WriteResult(action, target, message string) error {
	return w.Write(ResultOutput{
		Type:          "result",
		SchemaVersion: SchemaVersion,
		Action:        action,
		Target:        target,
		Message:       message,
	})
}

// WriteCount emits a "result" object carrying a count
func (w *NDJSONWriter) WriteCount(action, target string, count int) error {
	return w.Write(ResultOutput{
		Type:          "result",
		SchemaVersion: SchemaVersion,
		Action:        action,
		Target:        target,
		Count:         &count,
	})
}
