package cli

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/cove/internal/events"
	"github.com/vburojevic/cove/internal/hooks"
	"github.com/vburojevic/cove/internal/output"
)

// HookCmd records one hook event. It always exits 0 so a broken event log
// never interrupts the assistant; failures go to the log file.
type HookCmd struct {
	Event string `arg:"" enum:"user-prompt,stop,ask,ask-done" help:"Hook event (user-prompt, stop, ask, ask-done)"`
}

// hookClock stamps event records
var hookClock clock.Clock = clock.New()

// Run executes the hook command
func (c *HookCmd) Run(globals *Globals) error {
	logger := newLogger(globals, true)
	defer func() { _ = logger.Sync() }()

	handler := hooks.NewHandler(events.NewStore(globals.EventsDir, logger), hookClock, logger)
	if _, err := handler.Handle(hooks.Event(c.Event), globals.Stdin); err != nil {
		logger.Error("hook failed", zap.String("event", c.Event), zap.Error(err))
	}
	return nil
}

// InitCmd installs the assistant hooks
type InitCmd struct {
	Settings string `type:"path" help:"Settings file to update (default: settings_path from config)"`
}

// Run executes the init command
func (c *InitCmd) Run(globals *Globals) error {
	path := c.Settings
	if path == "" {
		path = globals.settingsPath()
	}

	stale := hooks.HasStale(path, globals.Bin)
	if err := hooks.Install(path, globals.Bin); err != nil {
		return outputErrorCommon(globals, "INSTALL_FAILED", err.Error(), "fix or remove the settings file and retry")
	}

	action := "installed"
	if stale {
		action = "updated"
	}
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteResult("init", path, "hooks "+action)
	}
	fmt.Fprintf(globals.Stdout, "Hooks %s in %s\n", action, path)
	for _, e := range hooks.Entries {
		fmt.Fprintf(globals.Stdout, "  %-17s %s\n", e.HookType, hooks.Command(globals.Bin, e.Event))
	}
	return nil
}
