package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vburojevic/cove/internal/domain"
)

// ErrMissingField is returned by ParseRecord when state, cwd or ts is absent.
var ErrMissingField = errors.New("event record missing required field")

// rawRecord mirrors domain.EventRecord with pointers so absent required
// fields can be told apart from zero values.
type rawRecord struct {
	State  *string `json:"state"`
	Cwd    *string `json:"cwd"`
	PaneID string  `json:"pane_id"` // absent and null both read as ""
	TS     *uint64 `json:"ts"`
}

// ParseRecord decodes one event log line.
func ParseRecord(line string) (domain.EventRecord, error) {
	var raw rawRecord
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return domain.EventRecord{}, fmt.Errorf("decode event: %w", err)
	}
	if raw.State == nil || raw.Cwd == nil || raw.TS == nil {
		return domain.EventRecord{}, ErrMissingField
	}
	return domain.EventRecord{
		State:  *raw.State,
		Cwd:    *raw.Cwd,
		PaneID: raw.PaneID,
		TS:     *raw.TS,
	}, nil
}
