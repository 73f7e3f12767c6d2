package cli

import (
	"fmt"

	"github.com/mattn/go-isatty"
	"github.com/samber/lo"

	"github.com/vburojevic/cove/internal/domain"
	"github.com/vburojevic/cove/internal/output"
	"github.com/vburojevic/cove/internal/tmux"
)

// ListCmd lists windows in the cove session
type ListCmd struct{}

// Run executes the list command
func (c *ListCmd) Run(globals *Globals) error {
	client, err := globals.tmuxClient()
	if err != nil {
		return err
	}
	if err := globals.requireSession(client); err != nil {
		return err
	}

	windows, err := client.ListWindows()
	if err != nil {
		return outputErrorCommon(globals, "TMUX_ERROR", err.Error())
	}
	rows := domain.JoinStatus(windows, nil, nil)

	if globals.Format == "ndjson" {
		w := output.NewNDJSONWriter(globals.Stdout)
		for _, row := range rows {
			if err := w.WriteWindow(row); err != nil {
				return err
			}
		}
		return nil
	}
	return output.RenderTable(globals.Stdout, []string{"#", "Window", "Active", "Path"}, output.WindowRows(rows))
}

// KillCmd kills a single window
type KillCmd struct {
	Name string `arg:"" help:"Window name to kill"`
}

// Run executes the kill command
func (c *KillCmd) Run(globals *Globals) error {
	client, err := globals.tmuxClient()
	if err != nil {
		return err
	}
	if err := globals.requireSession(client); err != nil {
		return err
	}

	names, err := client.ListWindowNames()
	if err != nil {
		return outputErrorCommon(globals, "TMUX_ERROR", err.Error())
	}
	if !lo.Contains(names, c.Name) {
		return outputErrorCommon(globals, "WINDOW_NOT_FOUND",
			fmt.Sprintf("no window named '%s'", c.Name), "run cove list to see windows")
	}

	if err := client.KillWindow(c.Name); err != nil {
		return outputErrorCommon(globals, "TMUX_ERROR", err.Error())
	}
	return writeResult(globals, "kill", c.Name, fmt.Sprintf("Killed window %s", c.Name))
}

// AllKillCmd kills the whole cove session
type AllKillCmd struct{}

// Run executes the all-kill command
func (c *AllKillCmd) Run(globals *Globals) error {
	client, err := globals.tmuxClient()
	if err != nil {
		return err
	}
	if err := globals.requireSession(client); err != nil {
		return err
	}
	if err := client.KillSession(); err != nil {
		return outputErrorCommon(globals, "TMUX_ERROR", err.Error())
	}
	return writeResult(globals, "all-kill", client.SessionName(), fmt.Sprintf("Killed session %s", client.SessionName()))
}

// ResumeCmd reattaches to the cove session
type ResumeCmd struct{}

// Run executes the resume command
func (c *ResumeCmd) Run(globals *Globals) error {
	client, err := globals.tmuxClient()
	if err != nil {
		return err
	}
	return c.resume(globals, client)
}

func (c *ResumeCmd) resume(globals *Globals, client *tmux.Client) error {
	if err := globals.requireSession(client); err != nil {
		return err
	}
	if tmux.IsInsideTmux() {
		return client.SwitchClient()
	}
	return client.Attach()
}

func writeResult(globals *Globals, action, target, message string) error {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteResult(action, target, message)
	}
	_, err := fmt.Fprintln(globals.Stdout, message)
	return err
}

// useColor reports whether text output goes to a terminal
func useColor(globals *Globals) bool {
	f, ok := globals.Stdout.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
