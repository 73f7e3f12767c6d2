package tmux

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/vburojevic/cove/internal/domain"
)

// assistantPane is the pane index that hosts the assistant in every window.
const assistantPane = "1"

// missingPaneCommand stands in for the foreground command of a window whose
// assistant pane is absent from the listing, so it classifies as finished.
const missingPaneCommand = "zsh"

// PaneInfo describes the assistant pane of one window
type PaneInfo struct {
	WindowIndex int
	Command     string
	PaneID      string // e.g. "%0"
}

// ListAssistantPanes returns the foreground command and pane id of pane .1
// in every window, from a single list-panes call.
func (c *Client) ListAssistantPanes() ([]PaneInfo, error) {
	out, err := c.command("list-panes", "-s", "-t", c.config.SessionName,
		"-F", "#{window_index}|#{pane_index}|#{pane_current_command}|#{pane_id}")
	if err != nil {
		return nil, err
	}
	return parsePanes(out), nil
}

// Snapshot joins the window list with the assistant panes. Windows whose
// assistant pane is missing report a shell and no pane id.
func (c *Client) Snapshot() ([]domain.WindowInfo, []domain.WindowSnapshot, error) {
	windows, err := c.ListWindows()
	if err != nil {
		return nil, nil, err
	}
	panes, err := c.ListAssistantPanes()
	if err != nil {
		return nil, nil, err
	}
	return windows, joinPanes(windows, panes), nil
}

func joinPanes(windows []domain.WindowInfo, panes []PaneInfo) []domain.WindowSnapshot {
	byWindow := lo.KeyBy(panes, func(p PaneInfo) int { return p.WindowIndex })
	return lo.Map(windows, func(w domain.WindowInfo, _ int) domain.WindowSnapshot {
		p, ok := byWindow[w.Index]
		if !ok {
			return domain.WindowSnapshot{Index: w.Index, Command: missingPaneCommand}
		}
		return domain.WindowSnapshot{Index: w.Index, Command: p.Command, PaneID: p.PaneID}
	})
}

// AssistantPaneID returns the pane id of pane .1 in the named window
func (c *Client) AssistantPaneID(windowName string) (string, error) {
	target := fmt.Sprintf("%s:%s.%s", c.config.SessionName, windowName, assistantPane)
	out, err := c.command("display-message", "-t", target, "-p", "#{pane_id}")
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(out)
	if id == "" {
		return "", fmt.Errorf("no pane id for %s", target)
	}
	return id, nil
}

// SelectWindow switches to a window and focuses its assistant pane
func (c *Client) SelectWindow(index int) error {
	return c.selectWindow(index, assistantPane)
}

// SelectWindowSidebar switches to a window and focuses its sidebar pane,
// so the navigator keeps keyboard focus while moving between windows.
func (c *Client) SelectWindowSidebar(index int) error {
	return c.selectWindow(index, "2")
}

func (c *Client) selectWindow(index int, pane string) error {
	target := fmt.Sprintf("%s:%d", c.config.SessionName, index)
	_, err := c.command("select-window", "-t", target, ";", "select-pane", "-t", ":."+pane)
	return err
}

func parsePanes(out string) []PaneInfo {
	var panes []PaneInfo
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(strings.TrimRight(line, "\r"), "|", 4)
		if len(parts) < 4 || parts[1] != assistantPane {
			continue
		}
		index, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		panes = append(panes, PaneInfo{
			WindowIndex: index,
			Command:     parts[2],
			PaneID:      parts[3],
		})
	}
	return panes
}
