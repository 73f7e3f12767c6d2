package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/vburojevic/cove/internal/events"
	"github.com/vburojevic/cove/internal/sidebar"
	"github.com/vburojevic/cove/internal/state"
)

// SidebarCmd runs the interactive window navigator
type SidebarCmd struct{}

// Run executes the sidebar command
func (c *SidebarCmd) Run(globals *Globals) error {
	logger := newLogger(globals, true)
	defer func() { _ = logger.Sync() }()

	client, err := globals.tmuxClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	nudges, err := sidebar.Watch(ctx, globals.EventsDir, logger)
	if err != nil {
		// polling alone still refreshes every tick
		logger.Warn("events watcher unavailable", zap.Error(err))
	}

	var refresh time.Duration
	if globals.Config != nil {
		refresh = globals.Config.Sidebar.Refresh
	}
	store := events.NewStore(globals.EventsDir, logger)
	model := sidebar.New(sidebar.Options{
		Source:   client,
		Detector: state.NewDetector(store, globals.shells(), logger),
		Refresh:  refresh,
		Nudges:   nudges,
		Logger:   logger,
	})

	if _, err := tea.NewProgram(model).Run(); err != nil {
		logger.Error("sidebar exited", zap.Error(err))
		return fmt.Errorf("sidebar: %w", err)
	}
	return nil
}
