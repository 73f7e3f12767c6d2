package tmux

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/cove/internal/domain"
)

// fakeRunner answers tmux commands by subcommand name and records calls.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   [][]string
}

func (f *fakeRunner) Command(args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if err, ok := f.errs[args[0]]; ok {
		return "", err
	}
	return f.outputs[args[0]], nil
}

func newFake() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{}, errs: map[string]error{}}
}

func TestNewClientDefaults(t *testing.T) {
	c := newClient(newFake(), nil)
	assert.Equal(t, "cove", c.SessionName())
	assert.Equal(t, "claude", c.config.AssistantCommand)
}

func TestHasSession(t *testing.T) {
	f := newFake()
	c := newClient(f, &Config{SessionName: "work"})
	assert.True(t, c.HasSession())
	assert.Equal(t, []string{"has-session", "-t", "work"}, f.calls[0])

	f.errs["has-session"] = errors.New("can't find session: work")
	assert.False(t, c.HasSession())
}

func TestListWindows(t *testing.T) {
	f := newFake()
	f.outputs["list-windows"] = "1|api|1|/home/me/api\n2|web|0|/home/me/web|with|pipes\nbroken\n\n"
	c := newClient(f, nil)

	windows, err := c.ListWindows()
	require.NoError(t, err)
	assert.Equal(t, []domain.WindowInfo{
		{Index: 1, Name: "api", Active: true, PanePath: "/home/me/api"},
		{Index: 2, Name: "web", Active: false, PanePath: "/home/me/web|with|pipes"},
	}, windows)

	names, err := c.ListWindowNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "web"}, names)
}

func TestListWindowsError(t *testing.T) {
	f := newFake()
	f.errs["list-windows"] = errors.New("no server running")
	_, err := newClient(f, nil).ListWindows()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tmux list-windows")
}

func TestNewWindowPicksNextIndex(t *testing.T) {
	f := newFake()
	f.outputs["list-windows"] = "1|api|1|/a\n4|zombie|0|/b\n2|web|0|/c\n"
	c := newClient(f, nil)

	require.NoError(t, c.NewWindow("docs", "/home/me/docs"))
	last := f.calls[len(f.calls)-1]
	assert.Equal(t, []string{"new-window", "-t", "cove:5", "-n", "docs", "-c", "/home/me/docs", "claude"}, last)
}

func TestNewWindowEmptySession(t *testing.T) {
	f := newFake()
	c := newClient(f, nil)

	require.NoError(t, c.NewWindow("docs", "/d"))
	assert.Equal(t, "cove:1", f.calls[len(f.calls)-1][2])
}

func TestNewSessionLayout(t *testing.T) {
	f := newFake()
	c := newClient(f, &Config{SidebarCommand: "/bin/cove sidebar"})

	require.NoError(t, c.NewSession("api", "/home/me/api"))
	require.Len(t, f.calls, 1)
	args := strings.Join(f.calls[0], " ")
	assert.True(t, strings.HasPrefix(args, "new-session -d -s cove -n api -c /home/me/api"))
	assert.Contains(t, args, "split-window -t cove:api -h -p 30 -c /home/me/api")
	assert.Contains(t, args, "split-window -t cove:api.2 -v -b -p 50 /bin/cove sidebar")
	assert.Contains(t, args, "respawn-pane -t cove:api.1 -k claude")
	assert.Contains(t, args, "resize-pane -t cove:api.1")
}

func TestSetupLayoutWithoutSidebar(t *testing.T) {
	f := newFake()
	c := newClient(f, nil)

	require.NoError(t, c.SetupLayout("api", "/a"))
	args := f.calls[0]
	assert.Equal(t, "set-option", args[0])
	assert.Contains(t, args, "window-layout-changed")
	// Without a sidebar command the split runs the default shell.
	idx := indexOf(args, "-b")
	require.Greater(t, idx, 0)
	assert.Equal(t, []string{"-b", "-p", "50", ";"}, args[idx:idx+4])
}

func TestAttachUsesInteractiveRunner(t *testing.T) {
	c := newClient(newFake(), &Config{SessionName: "cove"})
	var got []string
	c.interactive = func(args ...string) error {
		got = args
		return nil
	}

	require.NoError(t, c.Attach())
	assert.Equal(t, []string{"attach", "-t", "cove"}, got)

	require.NoError(t, c.SwitchClient())
	assert.Equal(t, []string{"switch-client", "-t", "cove"}, got)
}

func TestKill(t *testing.T) {
	f := newFake()
	c := newClient(f, nil)

	require.NoError(t, c.KillWindow("api"))
	require.NoError(t, c.KillSession())
	assert.Equal(t, []string{"kill-window", "-t", "cove:api"}, f.calls[0])
	assert.Equal(t, []string{"kill-session", "-t", "cove"}, f.calls[1])
}

func indexOf(args []string, s string) int {
	for i, a := range args {
		if a == s {
			return i
		}
	}
	return -1
}
