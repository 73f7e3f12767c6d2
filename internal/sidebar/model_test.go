package sidebar

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/cove/internal/domain"
)

type fakeSource struct {
	windows  []domain.WindowInfo
	snaps    []domain.WindowSnapshot
	err      error
	selected []int
}

func (f *fakeSource) Snapshot() ([]domain.WindowInfo, []domain.WindowSnapshot, error) {
	return f.windows, f.snaps, f.err
}

func (f *fakeSource) SelectWindow(index int) error {
	f.selected = append(f.selected, index)
	return nil
}

type fakeDetector map[int]domain.WindowState

func (d fakeDetector) Detect(windows []domain.WindowSnapshot) map[int]domain.WindowState {
	return d
}

func newFixture() (*fakeSource, fakeDetector) {
	src := &fakeSource{
		windows: []domain.WindowInfo{
			{Index: 1, Name: "api"},
			{Index: 2, Name: "web", Active: true},
			{Index: 3, Name: "ops"},
		},
		snaps: []domain.WindowSnapshot{
			{Index: 1, Command: "claude", PaneID: "%1"},
			{Index: 2, Command: "claude", PaneID: "%2"},
			{Index: 3, Command: "zsh", PaneID: "%3"},
		},
	}
	det := fakeDetector{1: domain.StateWorking, 2: domain.StateAsking, 3: domain.StateDone}
	return src, det
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadWindows(t *testing.T) {
	src, det := newFixture()

	msg := loadWindows(src, det)
	require.NoError(t, msg.err)
	require.Len(t, msg.windows, 3)
	assert.Equal(t, domain.StateWorking, msg.windows[0].State)
	assert.Equal(t, domain.StateAsking, msg.windows[1].State)
	assert.Equal(t, domain.StateDone, msg.windows[2].State)
	assert.Equal(t, "%3", msg.windows[2].PaneID)

	src.err = errors.New("no server")
	msg = loadWindows(src, det)
	assert.Error(t, msg.err)
}

func TestCursorStartsOnActiveWindow(t *testing.T) {
	src, det := newFixture()
	m := New(Options{Source: src, Detector: det})

	m, _ = update(t, m, loadWindows(src, det))
	assert.Equal(t, 1, m.cursor)

	// later refreshes leave the cursor where the user put it
	m, _ = update(t, m, runes("k"))
	m, _ = update(t, m, loadWindows(src, det))
	assert.Equal(t, 0, m.cursor)
}

func TestNavigation(t *testing.T) {
	src, det := newFixture()
	m := New(Options{Source: src, Detector: det})
	m, _ = update(t, m, loadWindows(src, det))

	m, _ = update(t, m, runes("j"))
	assert.Equal(t, 2, m.cursor)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, runes("k"))
	m, _ = update(t, m, runes("k"))
	assert.Equal(t, 0, m.cursor, "cursor stops at the first row")
}

func TestSelect(t *testing.T) {
	src, det := newFixture()
	m := New(Options{Source: src, Detector: det})
	m, _ = update(t, m, loadWindows(src, det))
	m, _ = update(t, m, runes("j"))

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, selectedMsg{index: 3}, msg)
	assert.Equal(t, []int{3}, src.selected)
}

func TestSelectWithoutWindows(t *testing.T) {
	m := New(Options{Source: &fakeSource{}, Detector: fakeDetector{}})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestQuit(t *testing.T) {
	m := New(Options{Source: &fakeSource{}, Detector: fakeDetector{}})
	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRefreshFailureKeepsRows(t *testing.T) {
	src, det := newFixture()
	m := New(Options{Source: src, Detector: det})
	m, _ = update(t, m, loadWindows(src, det))

	m, _ = update(t, m, windowsMsg{err: errors.New("tmux gone")})
	assert.Len(t, m.windows, 3)
	assert.Contains(t, m.View(), "tmux gone")

	m, _ = update(t, m, loadWindows(src, det))
	assert.NoError(t, m.err)
}

func TestCursorClampsWhenWindowsClose(t *testing.T) {
	src, det := newFixture()
	m := New(Options{Source: src, Detector: det})
	m, _ = update(t, m, loadWindows(src, det))
	m, _ = update(t, m, runes("j"))
	require.Equal(t, 2, m.cursor)

	src.windows = src.windows[:1]
	m, _ = update(t, m, loadWindows(src, det))
	assert.Equal(t, 0, m.cursor)

	src.windows = nil
	m, _ = update(t, m, loadWindows(src, det))
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, m.View(), "no windows")
}

func TestTickRefreshes(t *testing.T) {
	src, det := newFixture()
	mock := clock.NewMock()
	m := New(Options{Source: src, Detector: det, Clock: mock, Refresh: time.Second})

	done := make(chan tea.Msg, 1)
	go func() { done <- m.tickCmd()() }()

	var got tea.Msg
	require.Eventually(t, func() bool {
		mock.Add(time.Second)
		select {
		case got = <-done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	assert.IsType(t, tickMsg{}, got)

	_, cmd := update(t, m, got)
	assert.NotNil(t, cmd)
}

func TestNudge(t *testing.T) {
	nudges := make(chan struct{}, 1)
	m := New(Options{Source: &fakeSource{}, Detector: fakeDetector{}, Nudges: nudges})

	nudges <- struct{}{}
	assert.Equal(t, nudgeMsg{}, m.waitNudge()())

	close(nudges)
	assert.Nil(t, m.waitNudge()())

	assert.Nil(t, New(Options{}).waitNudge())
}

func TestView(t *testing.T) {
	src, det := newFixture()
	m := New(Options{Source: src, Detector: det})
	m, _ = update(t, m, loadWindows(src, det))

	view := m.View()
	assert.Contains(t, view, "cove")
	assert.Contains(t, view, "api")
	assert.Contains(t, view, "web")
	assert.Contains(t, view, "ops")
	assert.Contains(t, view, "?")
	assert.Contains(t, view, "quit")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 0))
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "h", truncate("hello", 1))
}
