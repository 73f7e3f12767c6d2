package cli

import (
	"github.com/vburojevic/cove/internal/domain"
	"github.com/vburojevic/cove/internal/output"
)

// StatusCmd runs state detection once over every window
type StatusCmd struct {
	Where []string `short:"w" help:"Filter windows (e.g. state=working, name^api); repeat for AND"`
}

// Run executes the status command
func (c *StatusCmd) Run(globals *Globals) error {
	where, err := validateFlags(globals, c.Where)
	if err != nil {
		return err
	}

	client, err := globals.tmuxClient()
	if err != nil {
		return err
	}
	if err := globals.requireSession(client); err != nil {
		return err
	}

	windows, snaps, err := client.Snapshot()
	if err != nil {
		return outputErrorCommon(globals, "TMUX_ERROR", err.Error())
	}
	states := globals.detector().Detect(snaps)
	rows := where.Apply(domain.JoinStatus(windows, snaps, states))
	globals.Debug("status: %d windows, %d after filter", len(windows), len(rows))

	if globals.Format == "ndjson" {
		w := output.NewNDJSONWriter(globals.Stdout)
		for _, row := range rows {
			if err := w.WriteStatus(row); err != nil {
				return err
			}
		}
		return nil
	}
	return output.RenderTable(globals.Stdout,
		[]string{"#", "Window", "State", "Command", "Pane"},
		output.StatusRows(rows, useColor(globals)))
}
