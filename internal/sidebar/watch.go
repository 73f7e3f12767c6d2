package sidebar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vburojevic/cove/internal/events"
)

// Watch nudges the returned channel whenever an event log in dir is
// created, written or removed. Nudges coalesce: at most one is pending.
// The channel closes when ctx is done or the watcher fails.
func Watch(ctx context.Context, dir string, logger *zap.Logger) (<-chan struct{}, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create events dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	nudges := make(chan struct{}, 1)
	go func() {
		defer close(nudges)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Ext(event.Name) != events.Extension {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove) == 0 {
					continue
				}
				select {
				case nudges <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("events watcher error", zap.Error(err))
			}
		}
	}()

	return nudges, nil
}
