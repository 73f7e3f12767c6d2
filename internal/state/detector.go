package state

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/vburojevic/cove/internal/domain"
	"github.com/vburojevic/cove/internal/events"
)

// DefaultShells are the foreground commands that mean the assistant exited.
var DefaultShells = []string{"zsh", "bash", "fish"}

// Detector classifies cove windows from the event logs on disk.
// It holds no state between Detect calls.
type Detector struct {
	store  *events.Store
	shells map[string]struct{}
	logger *zap.Logger
}

// NewDetector returns a Detector reading logs from store. An empty shells
// list falls back to DefaultShells.
func NewDetector(store *events.Store, shells []string, logger *zap.Logger) *Detector {
	if len(shells) == 0 {
		shells = DefaultShells
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		store:  store,
		shells: shellSet(shells),
		logger: logger,
	}
}

// Detect returns the state of every window, keyed by window index.
// The event directory is scanned once per call.
func (d *Detector) Detect(windows []domain.WindowSnapshot) map[int]domain.WindowState {
	if len(windows) == 0 {
		return map[int]domain.WindowState{}
	}
	latest := d.store.LatestByPane()
	d.logger.Debug("detect", zap.Int("windows", len(windows)), zap.Int("panes_with_events", len(latest)))
	return classify(windows, latest, d.shells)
}

// Classify is the pure form of Detect: windows joined with a pane id to
// state tag map such as events.Store.LatestByPane returns.
func Classify(windows []domain.WindowSnapshot, latest map[string]string, shells []string) map[int]domain.WindowState {
	if len(shells) == 0 {
		shells = DefaultShells
	}
	return classify(windows, latest, shellSet(shells))
}

func classify(windows []domain.WindowSnapshot, latest map[string]string, shells map[string]struct{}) map[int]domain.WindowState {
	states := make(map[int]domain.WindowState, len(windows))
	for _, w := range windows {
		states[w.Index] = classifyWindow(w, latest, shells)
	}
	return states
}

func classifyWindow(w domain.WindowSnapshot, latest map[string]string, shells map[string]struct{}) domain.WindowState {
	// A shell in the assistant pane means the assistant exited and can't emit
	// more events, whatever the log says.
	if _, ok := shells[w.Command]; ok {
		return domain.StateDone
	}
	tag, ok := latest[w.PaneID]
	if !ok || w.PaneID == "" {
		return domain.StateFresh
	}
	return domain.ParseState(tag)
}

func shellSet(shells []string) map[string]struct{} {
	return lo.SliceToMap(shells, func(s string) (string, struct{}) {
		return s, struct{}{}
	})
}
