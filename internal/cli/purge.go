package cli

import (
	"fmt"

	"github.com/vburojevic/cove/internal/output"
)

// PurgeCmd deletes event logs that belong to a (recycled) pane id
type PurgeCmd struct {
	PaneID string `arg:"" name:"pane-id" help:"tmux pane id, e.g. %3"`
}

// Run executes the purge command
func (c *PurgeCmd) Run(globals *Globals) error {
	if _, err := validateFlags(globals, nil); err != nil {
		return err
	}
	if c.PaneID == "" {
		return outputErrorCommon(globals, "INVALID_PANE", "pane id must not be empty", "pass a tmux pane id such as %3")
	}

	removed := globals.store().Purge(c.PaneID)

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteCount("purge", c.PaneID, removed)
	}
	_, err := fmt.Fprintf(globals.Stdout, "Removed %d event log(s) for pane %s\n", removed, c.PaneID)
	return err
}
