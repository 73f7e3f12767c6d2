// Package sidebar implements the interactive window navigator that runs in
// the sidebar pane of every cove window.
package sidebar

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/vburojevic/cove/internal/domain"
)

// Source lists the session's windows and switches between them.
// *tmux.Client satisfies it.
type Source interface {
	Snapshot() ([]domain.WindowInfo, []domain.WindowSnapshot, error)
	SelectWindow(index int) error
}

// Detector classifies window snapshots. *state.Detector satisfies it.
type Detector interface {
	Detect(windows []domain.WindowSnapshot) map[int]domain.WindowState
}

// Options configures the sidebar.
type Options struct {
	Source   Source
	Detector Detector
	Clock    clock.Clock
	Refresh  time.Duration
	Nudges   <-chan struct{} // optional; each receive triggers a refresh
	Logger   *zap.Logger
}

type tickMsg time.Time

type nudgeMsg struct{}

type windowsMsg struct {
	windows []domain.WindowStatus
	err     error
}

type selectedMsg struct {
	index int
	err   error
}

// Model is the bubbletea model of the sidebar.
type Model struct {
	source   Source
	detector Detector
	clock    clock.Clock
	refresh  time.Duration
	nudges   <-chan struct{}
	logger   *zap.Logger

	keys    keyMap
	spinner spinner.Model

	windows []domain.WindowStatus
	cursor  int
	placed  bool
	err     error
	width   int
	height  int
}

// New creates a sidebar model.
func New(opts Options) Model {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = workingStyle

	return Model{
		source:   opts.Source,
		detector: opts.Detector,
		clock:    clk,
		refresh:  refresh,
		nudges:   opts.Nudges,
		logger:   logger,
		keys:     defaultKeyMap(),
		spinner:  s,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.tickCmd(), m.waitNudge(), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refreshCmd(), m.tickCmd())

	case nudgeMsg:
		return m, tea.Batch(m.refreshCmd(), m.waitNudge())

	case windowsMsg:
		m.applyWindows(msg)
		return m, nil

	case selectedMsg:
		if msg.err != nil {
			m.logger.Debug("select window failed", zap.Int("index", msg.index), zap.Error(msg.err))
			m.err = msg.err
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.windows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(m.windows) {
			return m, m.selectCmd(m.windows[m.cursor].Index)
		}
	}
	return m, nil
}

// applyWindows stores a refresh result. A failed refresh keeps the previous
// rows on screen. The cursor starts on the active window and afterwards
// stays put, clamped to the list.
func (m *Model) applyWindows(msg windowsMsg) {
	if msg.err != nil {
		m.logger.Debug("refresh failed", zap.Error(msg.err))
		m.err = msg.err
		return
	}
	m.err = nil
	m.windows = msg.windows

	if !m.placed && len(m.windows) > 0 {
		if _, idx, ok := lo.FindIndexOf(m.windows, func(w domain.WindowStatus) bool { return w.Active }); ok {
			m.cursor = idx
		}
		m.placed = true
	}
	m.cursor = max(0, min(m.cursor, len(m.windows)-1))
}

func (m Model) refreshCmd() tea.Cmd {
	source, detector := m.source, m.detector
	return func() tea.Msg {
		return loadWindows(source, detector)
	}
}

func loadWindows(source Source, detector Detector) windowsMsg {
	windows, snaps, err := source.Snapshot()
	if err != nil {
		return windowsMsg{err: err}
	}
	return windowsMsg{windows: domain.JoinStatus(windows, snaps, detector.Detect(snaps))}
}

func (m Model) tickCmd() tea.Cmd {
	clk, d := m.clock, m.refresh
	return func() tea.Msg {
		return tickMsg(<-clk.After(d))
	}
}

func (m Model) waitNudge() tea.Cmd {
	if m.nudges == nil {
		return nil
	}
	nudges := m.nudges
	return func() tea.Msg {
		if _, ok := <-nudges; !ok {
			return nil
		}
		return nudgeMsg{}
	}
}

func (m Model) selectCmd(index int) tea.Cmd {
	source := m.source
	return func() tea.Msg {
		return selectedMsg{index: index, err: source.SelectWindow(index)}
	}
}
