package events

import (
	"github.com/samber/lo"

	"github.com/vburojevic/cove/internal/domain"
)

type paneWinner struct {
	state string
	ts    uint64
}

// LatestByPane maps each pane id to the state tag of its newest record
// across all logs. Records without a pane id are ignored. When two logs
// share a pane id and timestamp, the one enumerated last wins.
func (s *Store) LatestByPane() map[string]string {
	winners := make(map[string]paneWinner)

	s.lastRecords(func(_ string, rec domain.EventRecord) {
		if rec.PaneID == "" {
			return
		}
		if prev, ok := winners[rec.PaneID]; ok && rec.TS < prev.ts {
			return
		}
		winners[rec.PaneID] = paneWinner{state: rec.State, ts: rec.TS}
	})

	return lo.MapValues(winners, func(w paneWinner, _ string) string {
		return w.state
	})
}
