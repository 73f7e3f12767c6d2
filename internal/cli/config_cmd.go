package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vburojevic/cove/internal/config"
	"github.com/vburojevic/cove/internal/output"
)

// ConfigCmd groups configuration subcommands
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Show effective configuration"`
	Path ConfigPathCmd `cmd:"" help:"Show the config file in use"`
}

// ConfigShowCmd prints the effective configuration
type ConfigShowCmd struct{}

// ConfigOutput is the NDJSON form of the effective configuration
type ConfigOutput struct {
	Type             string   `json:"type"`
	SchemaVersion    int      `json:"schemaVersion"`
	ConfigFile       string   `json:"config_file,omitempty"`
	Format           string   `json:"format"`
	Verbose          bool     `json:"verbose"`
	Session          string   `json:"session"`
	AssistantCommand string   `json:"assistant_command"`
	EventsDir        string   `json:"events_dir"`
	SettingsPath     string   `json:"settings_path"`
	Shells           []string `json:"shells"`
	LogFile          string   `json:"log_file"`
	SidebarRefresh   string   `json:"sidebar_refresh"`
}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	out := ConfigOutput{
		Type:             "config",
		SchemaVersion:    output.SchemaVersion,
		ConfigFile:       config.ConfigFile(),
		Format:           globals.Format,
		Verbose:          globals.Verbose,
		Session:          globals.Session,
		AssistantCommand: cfg.AssistantCommand,
		EventsDir:        globals.EventsDir,
		SettingsPath:     cfg.SettingsPath,
		Shells:           cfg.Shells,
		LogFile:          cfg.LogFile,
		SidebarRefresh:   cfg.Sidebar.Refresh.String(),
	}

	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(out)
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	if out.ConfigFile != "" {
		fmt.Fprintf(globals.Stdout, "  (from %s)\n", out.ConfigFile)
	}
	fmt.Fprintln(globals.Stdout)
	fmt.Fprintf(globals.Stdout, "  format: %s\n", out.Format)
	fmt.Fprintf(globals.Stdout, "  verbose: %t\n", out.Verbose)
	fmt.Fprintf(globals.Stdout, "  session: %s\n", out.Session)
	fmt.Fprintf(globals.Stdout, "  assistant_command: %s\n", out.AssistantCommand)
	fmt.Fprintf(globals.Stdout, "  events_dir: %s\n", out.EventsDir)
	fmt.Fprintf(globals.Stdout, "  settings_path: %s\n", out.SettingsPath)
	fmt.Fprintf(globals.Stdout, "  shells: [%s]\n", strings.Join(out.Shells, ", "))
	fmt.Fprintf(globals.Stdout, "  log_file: %s\n", out.LogFile)
	fmt.Fprintln(globals.Stdout, "  sidebar:")
	fmt.Fprintf(globals.Stdout, "    refresh: %s\n", out.SidebarRefresh)
	return nil
}

// ConfigPathCmd prints the config file location
type ConfigPathCmd struct{}

// ConfigPathOutput is the NDJSON form of the config file location
type ConfigPathOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Path          string `json:"path"`
	Found         bool   `json:"found"`
}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(ConfigPathOutput{
			Type:          "config_path",
			SchemaVersion: output.SchemaVersion,
			Path:          path,
			Found:         path != "",
		})
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "Searched: ./.coverc, ./.cove.yaml, ~/.cove.yaml, $XDG_CONFIG_HOME/cove/cove.yaml, /etc/cove/cove.yaml")
		return nil
	}
	fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	return nil
}
