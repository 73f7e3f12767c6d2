package cli

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vburojevic/cove/internal/hooks"
	"github.com/vburojevic/cove/internal/tmux"
)

const defaultWindowName = "session"

// StartCmd creates an assistant window, or the whole session on first run
type StartCmd struct {
	Name string `arg:"" optional:"" help:"Window name"`
	Dir  string `arg:"" optional:"" help:"Working directory (default: current directory)"`
	Yes  bool   `short:"y" help:"Install or update hooks without prompting"`
}

// Run executes the start command
func (c *StartCmd) Run(globals *Globals) error {
	client, err := globals.tmuxClient()
	if err != nil {
		return err
	}

	name := c.Name
	if name == "" {
		if client.HasSession() {
			return (&ResumeCmd{}).resume(globals, client)
		}
		name = defaultWindowName
	}

	dir, err := canonicalDir(c.Dir)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_DIR", err.Error())
	}

	c.checkHooks(globals)

	if client.HasSession() {
		names, err := client.ListWindowNames()
		if err != nil {
			return outputErrorCommon(globals, "TMUX_ERROR", err.Error())
		}
		for _, n := range names {
			if n == name {
				return outputErrorCommon(globals, "DUPLICATE_WINDOW",
					fmt.Sprintf("window '%s' already exists", name), "pick a different name")
			}
		}

		globals.Debug("creating window %s in %s", name, dir)
		if err := client.NewWindow(name, dir); err != nil {
			return outputErrorCommon(globals, "TMUX_ERROR", err.Error())
		}
		if err := client.SetupLayout(name, dir); err != nil {
			return outputErrorCommon(globals, "TMUX_ERROR", err.Error())
		}
		c.purgeRecycled(globals, client, name)

		if !tmux.IsInsideTmux() {
			return client.Attach()
		}
		return nil
	}

	// A new session must be created from outside tmux to get the real terminal size.
	if tmux.IsInsideTmux() {
		return outputErrorCommon(globals, "NO_SESSION",
			fmt.Sprintf("no %s session exists", client.SessionName()),
			fmt.Sprintf("run from outside tmux first: cove %s %s", name, dir))
	}

	globals.Debug("creating session %s with window %s in %s", client.SessionName(), name, dir)
	if err := client.NewSession(name, dir); err != nil {
		return outputErrorCommon(globals, "TMUX_ERROR", err.Error())
	}
	c.purgeRecycled(globals, client, name)
	return client.Attach()
}

// purgeRecycled deletes event logs left behind by an earlier owner of the
// new window's pane id.
func (c *StartCmd) purgeRecycled(globals *Globals, client *tmux.Client, name string) {
	paneID, err := client.AssistantPaneID(name)
	if err != nil {
		globals.Debug("no pane id for %s: %v", name, err)
		return
	}
	removed := globals.store().Purge(paneID)
	globals.Debug("purged %d stale event logs for %s", removed, paneID)
}

// checkHooks offers to install hooks when they are missing or point to an
// old binary. Failures only print; starting a window never depends on hooks.
func (c *StartCmd) checkHooks(globals *Globals) {
	path := globals.settingsPath()
	if hooks.Installed(path, globals.Bin) {
		return
	}
	stale := hooks.HasStale(path, globals.Bin)

	if !c.Yes {
		if stale {
			fmt.Fprintln(globals.Stdout, "Warning: cove hooks point to an old binary path.")
			fmt.Fprintln(globals.Stdout, "State indicators won't work until hooks are updated.")
			fmt.Fprintln(globals.Stdout)
			fmt.Fprint(globals.Stdout, "Update hook paths? [Y/n] ")
		} else {
			fmt.Fprintf(globals.Stdout, "cove needs assistant hooks to show window state (working/idle/asking).\n")
			fmt.Fprintf(globals.Stdout, "This adds async hooks to %s:\n", path)
			fmt.Fprintln(globals.Stdout, "  UserPromptSubmit  detects when you send a message")
			fmt.Fprintln(globals.Stdout, "  Stop              detects when the assistant finishes responding")
			fmt.Fprintln(globals.Stdout, "  Pre/PostToolUse   detects questions waiting for an answer")
			fmt.Fprintln(globals.Stdout)
			fmt.Fprint(globals.Stdout, "Add cove hooks? [Y/n] ")
		}
		if !confirm(globals) {
			fmt.Fprintln(globals.Stdout, "Skipped. Run `cove init` later to enable state indicators.")
			fmt.Fprintln(globals.Stdout)
			return
		}
	}

	if err := hooks.Install(path, globals.Bin); err != nil {
		fmt.Fprintf(globals.Stderr, "Failed to install hooks: %v\n\n", err)
		return
	}
	if stale {
		fmt.Fprintln(globals.Stdout, "Hooks updated.")
	} else {
		fmt.Fprintln(globals.Stdout, "Hooks installed.")
	}
	fmt.Fprintln(globals.Stdout)
}

// confirm reads a [Y/n] answer. An empty answer is yes; a closed stdin is no.
func confirm(globals *Globals) bool {
	if globals.Stdin == nil {
		return false
	}
	line, err := bufio.NewReader(globals.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(globals.Stdout)
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes"
}

func canonicalDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid directory '%s': %w", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("invalid directory '%s': %w", dir, err)
	}
	return resolved, nil
}
