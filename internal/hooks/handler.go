// Package hooks connects the assistant's hook system to cove: it installs
// hook entries into the assistant settings and turns hook invocations into
// event log records.
package hooks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vburojevic/cove/internal/domain"
	"github.com/vburojevic/cove/internal/events"
)

// Event is a hook subcommand name.
type Event string

const (
	EventUserPrompt Event = "user-prompt" // UserPromptSubmit
	EventStop       Event = "stop"        // Stop
	EventAsk        Event = "ask"         // PreToolUse(AskUserQuestion)
	EventAskDone    Event = "ask-done"    // PostToolUse(AskUserQuestion)
)

// Tag returns the state tag recorded for the event.
func (e Event) Tag() (string, bool) {
	switch e {
	case EventUserPrompt, EventAskDone:
		return domain.TagWorking, true
	case EventStop:
		return domain.TagIdle, true
	case EventAsk:
		return domain.TagAsking, true
	default:
		return "", false
	}
}

// payload is the JSON the assistant sends to hook commands on stdin.
// Unknown fields are ignored.
type payload struct {
	SessionID     string `json:"session_id"`
	Cwd           string `json:"cwd"`
	HookEventName string `json:"hook_event_name"`
}

// Handler appends one event record per hook invocation.
type Handler struct {
	store  *events.Store
	clock  clock.Clock
	logger *zap.Logger

	getenv func(string) string
	getwd  func() (string, error)
	newID  func() string
}

// NewHandler creates a Handler writing to store.
func NewHandler(store *events.Store, clk clock.Clock, logger *zap.Logger) *Handler {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:  store,
		clock:  clk,
		logger: logger,
		getenv: os.Getenv,
		getwd:  os.Getwd,
		newID:  uuid.NewString,
	}
}

// Handle records event for the session described by the payload on r.
// The pane id comes from $TMUX_PANE; outside tmux the record is written
// without one and never correlates to a window.
func (h *Handler) Handle(event Event, r io.Reader) (domain.EventRecord, error) {
	tag, ok := event.Tag()
	if !ok {
		return domain.EventRecord{}, fmt.Errorf("unknown hook event %q", event)
	}

	if r == nil {
		r = strings.NewReader("")
	}

	var p payload
	if data, err := io.ReadAll(r); err != nil {
		h.logger.Debug("hook stdin unreadable", zap.Error(err))
	} else if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			h.logger.Debug("hook payload undecodable", zap.Error(err))
		}
	}

	sessionID := strings.TrimSpace(p.SessionID)
	if sessionID == "" {
		sessionID = h.newID()
	}
	cwd := p.Cwd
	if cwd == "" {
		cwd, _ = h.getwd()
	}

	rec := domain.EventRecord{
		State:  tag,
		Cwd:    cwd,
		PaneID: h.getenv("TMUX_PANE"),
		TS:     uint64(h.clock.Now().Unix()),
	}
	if err := h.store.Append(sessionID, rec); err != nil {
		return rec, err
	}

	h.logger.Debug("hook recorded",
		zap.String("event", string(event)),
		zap.String("session_id", sessionID),
		zap.String("pane_id", rec.PaneID),
		zap.String("state", rec.State),
	)
	return rec, nil
}
