package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/vburojevic/cove/internal/config"
	"github.com/vburojevic/cove/internal/events"
	"github.com/vburojevic/cove/internal/state"
	"github.com/vburojevic/cove/internal/tmux"
)

// Version information, set by ldflags at build time
var (
	Version = "dev"
	Commit  = "none"
)

// CLI is the root command structure
type CLI struct {
	Format    string `short:"f" default:"${config_format}" enum:"text,ndjson" help:"Output format (text or ndjson)"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	Session   string `default:"${config_session}" help:"tmux session that hosts assistant windows"`
	EventsDir string `default:"${config_events_dir}" type:"path" help:"Directory of hook event logs"`

	Start   StartCmd   `cmd:"" default:"withargs" help:"Start an assistant window (or resume the session when no name is given)"`
	List    ListCmd    `cmd:"" aliases:"ls" help:"List windows in the cove session"`
	Kill    KillCmd    `cmd:"" help:"Kill a single window"`
	AllKill AllKillCmd `cmd:"" help:"Kill the whole cove session"`
	Resume  ResumeCmd  `cmd:"" help:"Reattach to the cove session"`
	Status  StatusCmd  `cmd:"" help:"Show the activity state of every window"`
	Purge   PurgeCmd   `cmd:"" help:"Delete event logs whose latest record belongs to a pane id"`
	Sidebar SidebarCmd `cmd:"" help:"Interactive window navigator (launched by start)"`
	Hook    HookCmd    `cmd:"" help:"Record an assistant hook event (called by hooks, not directly)"`
	Init    InitCmd    `cmd:"" help:"Install assistant hooks for state detection"`
	Config  ConfigCmd  `cmd:"" help:"Show configuration"`

	Completion CompletionCmd `cmd:"" help:"Generate shell completion script"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals holds global flags and shared state for commands
type Globals struct {
	Format    string
	Verbose   bool
	Session   string
	EventsDir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config *config.Config

	// Bin is the cove binary path written into hooks and the sidebar pane
	Bin string

	logger *zap.Logger
}

// Vars returns the kong interpolation variables backed by cfg
func Vars(cfg *config.Config) kong.Vars {
	return kong.Vars{
		"config_format":     cfg.Format,
		"config_session":    cfg.Session,
		"config_events_dir": cfg.EventsDir,
	}
}

// NewGlobalsWithConfig builds Globals from parsed flags with config fallbacks
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Format:    c.Format,
		Verbose:   c.Verbose || cfg.Verbose,
		Session:   c.Session,
		EventsDir: c.EventsDir,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Config:    cfg,
		Bin:       resolveBinary(),
	}
	if g.Format == "" {
		g.Format = cfg.Format
	}
	if g.Session == "" {
		g.Session = cfg.Session
	}
	if g.EventsDir == "" {
		g.EventsDir = cfg.EventsDir
	}
	return g
}

// Debug logs a debug message when --verbose is set
func (g *Globals) Debug(format string, args ...interface{}) {
	g.Logger().Sugar().Debugf(format, args...)
}

// Logger returns the command logger, building it on first use
func (g *Globals) Logger() *zap.Logger {
	if g.logger == nil {
		g.logger = newLogger(g, false)
	}
	return g.logger
}

// store opens the event log store
func (g *Globals) store() *events.Store {
	return events.NewStore(g.EventsDir, g.Logger())
}

// detector builds a state detector over the event log store
func (g *Globals) detector() *state.Detector {
	return state.NewDetector(g.store(), g.shells(), g.Logger())
}

func (g *Globals) shells() []string {
	if g.Config != nil && len(g.Config.Shells) > 0 {
		return g.Config.Shells
	}
	return state.DefaultShells
}

func (g *Globals) settingsPath() string {
	if g.Config != nil && g.Config.SettingsPath != "" {
		return g.Config.SettingsPath
	}
	return config.ExpandHome(config.Default().SettingsPath)
}

// tmuxClient connects to tmux, reporting TMUX_NOT_FOUND when it is missing
func (g *Globals) tmuxClient() (*tmux.Client, error) {
	if !tmux.IsTmuxAvailable() {
		return nil, outputErrorCommon(g, "TMUX_NOT_FOUND", "tmux is not installed or not on PATH", "install tmux 3.x")
	}
	cfg := &tmux.Config{
		SessionName:    g.Session,
		SidebarCommand: g.Bin + " sidebar",
	}
	if g.Config != nil {
		cfg.AssistantCommand = g.Config.AssistantCommand
	}
	client, err := tmux.NewClient(cfg)
	if err != nil {
		return nil, outputErrorCommon(g, "TMUX_ERROR", err.Error())
	}
	return client, nil
}

// requireSession fails with NO_SESSION when the cove session is not running
func (g *Globals) requireSession(client *tmux.Client) error {
	if client.HasSession() {
		return nil
	}
	return outputErrorCommon(g, "NO_SESSION",
		fmt.Sprintf("no active %s session", client.SessionName()),
		"run cove to create one")
}

// resolveBinary returns the canonical path of the running executable,
// falling back to ~/.local/bin/cove.
func resolveBinary() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			return resolved
		}
		return exe
	}
	return config.ExpandHome("~/.local/bin/cove")
}
