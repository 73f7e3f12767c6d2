package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vburojevic/cove/internal/domain"
)

// Path returns the log file for a session id.
func (s *Store) Path(sessionID string) (string, error) {
	name := strings.TrimSpace(sessionID)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid session id %q", sessionID)
	}
	return filepath.Join(s.dir, name+Extension), nil
}

// Append writes rec as one line at the end of the session's log, creating
// the directory and file as needed. The line goes out in a single write so
// concurrent readers see either the old or the new last line.
func (s *Store) Append(sessionID string, rec domain.EventRecord) error {
	path, err := s.Path(sessionID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create events dir: %w", err)
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	b = append(b, '\n')

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	_, werr := f.Write(b)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return fmt.Errorf("write event log: %w", err)
	}
	return nil
}
