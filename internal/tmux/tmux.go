package tmux

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/GianlucaP106/gotmux/gotmux"
	"github.com/samber/lo"

	"github.com/vburojevic/cove/internal/domain"
)

// DefaultSessionName is the tmux session cove manages.
const DefaultSessionName = "cove"

// ErrNoSession is returned when the cove session does not exist
var ErrNoSession = errors.New("no cove session")

// runner executes one tmux invocation and returns its stdout.
// *gotmux.Tmux satisfies it.
type runner interface {
	Command(args ...string) (string, error)
}

// Config holds tmux session configuration
type Config struct {
	SessionName      string // tmux session name (default "cove")
	AssistantCommand string // command started in pane .1 (default "claude")
	SidebarCommand   string // command started in the sidebar pane
}

// Client wraps the tmux commands cove issues
type Client struct {
	mu     sync.Mutex
	tmux   runner
	config *Config

	// interactive runs tmux attached to the caller's terminal
	interactive func(args ...string) error
}

// IsTmuxAvailable reports whether tmux is on PATH
func IsTmuxAvailable() bool {
	_, err := exec.LookPath("tmux")
	return err == nil
}

// IsInsideTmux reports whether the current process runs inside tmux
func IsInsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// NewClient creates a tmux client for the cove session
func NewClient(cfg *Config) (*Client, error) {
	t, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("tmux: %w", err)
	}
	return newClient(t, cfg), nil
}

func newClient(r runner, cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.SessionName == "" {
		cfg.SessionName = DefaultSessionName
	}
	if cfg.AssistantCommand == "" {
		cfg.AssistantCommand = "claude"
	}
	return &Client{
		tmux:        r,
		config:      cfg,
		interactive: runInteractive,
	}
}

// SessionName returns the managed session name
func (c *Client) SessionName() string {
	return c.config.SessionName
}

func (c *Client) command(args ...string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out, err := c.tmux.Command(args...)
	if err != nil {
		return "", fmt.Errorf("tmux %s: %w", args[0], err)
	}
	return out, nil
}

// HasSession reports whether the cove session exists
func (c *Client) HasSession() bool {
	_, err := c.command("has-session", "-t", c.config.SessionName)
	return err == nil
}

// ListWindows lists the windows of the cove session
func (c *Client) ListWindows() ([]domain.WindowInfo, error) {
	out, err := c.command("list-windows", "-t", c.config.SessionName,
		"-F", "#{window_index}|#{window_name}|#{window_active}|#{pane_current_path}")
	if err != nil {
		return nil, err
	}
	return parseWindows(out), nil
}

// ListWindowNames lists window names only, for duplicate checks
func (c *Client) ListWindowNames() ([]string, error) {
	windows, err := c.ListWindows()
	if err != nil {
		return nil, err
	}
	return lo.Map(windows, func(w domain.WindowInfo, _ int) string { return w.Name }), nil
}

// NewSession creates the detached cove session with the first window laid
// out as assistant | shell over sidebar.
func (c *Client) NewSession(name, dir string) error {
	session := c.config.SessionName
	args := []string{
		"new-session", "-d", "-s", session, "-n", name, "-c", dir,
		";", "set-option", "-w", "remain-on-exit", "on",
		";", "set-hook", "pane-died", "respawn-pane",
	}
	args = append(args, c.layoutArgs(session+":"+name, dir)...)
	args = append(args,
		";", "respawn-pane", "-t", session+":"+name+".1", "-k", c.config.AssistantCommand,
	)
	_, err := c.command(args...)
	return err
}

// NewWindow adds a window running the assistant. The index is picked
// explicitly as max+1 because windows kept alive by remain-on-exit can
// still hold lower indexes.
func (c *Client) NewWindow(name, dir string) error {
	windows, err := c.ListWindows()
	if err != nil {
		return err
	}
	next := lo.Max(lo.Map(windows, func(w domain.WindowInfo, _ int) int { return w.Index })) + 1
	target := fmt.Sprintf("%s:%d", c.config.SessionName, next)

	_, err = c.command("new-window", "-t", target, "-n", name, "-c", dir, c.config.AssistantCommand)
	return err
}

// SetupLayout splits a fresh window into the cove layout
func (c *Client) SetupLayout(name, dir string) error {
	win := c.config.SessionName + ":" + name
	args := []string{
		"set-option", "-w", "-t", win, "remain-on-exit", "on",
		";", "set-hook", "-w", "-t", win, "pane-died", "respawn-pane",
	}
	args = append(args, c.layoutArgs(win, dir)...)
	_, err := c.command(args...)
	return err
}

// layoutArgs splits off a 30% shell column, stacks the sidebar above it and
// pins the assistant pane at 70% width on every layout change.
func (c *Client) layoutArgs(win, dir string) []string {
	args := []string{
		";", "split-window", "-t", win, "-h", "-p", "30", "-c", dir,
		";", "split-window", "-t", win + ".2", "-v", "-b", "-p", "50",
	}
	if c.config.SidebarCommand != "" {
		args = append(args, c.config.SidebarCommand)
	}
	return append(args,
		";", "select-pane", "-t", win+".2",
		";", "set-hook", "-w", "-t", win, "window-layout-changed",
		fmt.Sprintf("run-shell 'tmux resize-pane -t %s.1 -x $(( #{window_width} * 70 / 100 ))'", win),
	)
}

// Attach attaches the current terminal to the cove session
func (c *Client) Attach() error {
	return c.interactive("attach", "-t", c.config.SessionName)
}

// SwitchClient switches the current tmux client to the cove session
func (c *Client) SwitchClient() error {
	return c.interactive("switch-client", "-t", c.config.SessionName)
}

// KillWindow kills a window by name
func (c *Client) KillWindow(name string) error {
	_, err := c.command("kill-window", "-t", c.config.SessionName+":"+name)
	return err
}

// KillSession kills the whole cove session
func (c *Client) KillSession() error {
	_, err := c.command("kill-session", "-t", c.config.SessionName)
	return err
}

func parseWindows(out string) []domain.WindowInfo {
	var windows []domain.WindowInfo
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(strings.TrimRight(line, "\r"), "|", 4)
		if len(parts) < 4 {
			continue
		}
		index, _ := strconv.Atoi(parts[0])
		windows = append(windows, domain.WindowInfo{
			Index:    index,
			Name:     parts[1],
			Active:   parts[2] == "1",
			PanePath: parts[3],
		})
	}
	return windows
}

func runInteractive(args ...string) error {
	cmd := exec.Command("tmux", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux %s: %w", args[0], err)
	}
	return nil
}
