package events

import (
	"os"

	"go.uber.org/zap"

	"github.com/vburojevic/cove/internal/domain"
)

// Purge deletes every log whose last record belongs to paneID and returns
// how many were removed. tmux recycles pane ids, so this runs right after a
// pane is created to keep a dead session's history out of the new one.
// Failed deletions are logged and skipped.
func (s *Store) Purge(paneID string) int {
	if paneID == "" {
		return 0
	}

	removed := 0
	s.lastRecords(func(path string, rec domain.EventRecord) {
		if rec.PaneID != paneID {
			return
		}
		if err := os.Remove(path); err != nil {
			s.logger.Debug("purge failed", zap.String("path", path), zap.Error(err))
			return
		}
		s.logger.Debug("purged event log", zap.String("path", path), zap.String("pane_id", paneID))
		removed++
	})
	return removed
}
