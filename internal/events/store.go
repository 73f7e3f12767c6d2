package events

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vburojevic/cove/internal/domain"
)

// Extension is the suffix of every session event log.
const Extension = ".jsonl"

// Store is the directory of session event logs written by hook commands.
// It keeps no state between calls; every method re-reads the disk.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore returns a Store rooted at dir. A nil logger discards output.
func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the events directory.
func (s *Store) Dir() string {
	return s.dir
}

// lastRecords calls fn with the decoded last record of every log file.
// Unreadable and undecodable files are skipped.
func (s *Store) lastRecords(fn func(path string, rec domain.EventRecord)) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Debug("events dir unreadable", zap.String("dir", s.dir), zap.Error(err))
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != Extension {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())

		line, ok := LastLine(path)
		if !ok {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			s.logger.Debug("skipping event log", zap.String("path", path), zap.Error(err))
			continue
		}
		fn(path, rec)
	}
}
