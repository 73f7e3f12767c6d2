package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`

	// tmux session that hosts assistant windows
	Session          string `mapstructure:"session"`
	AssistantCommand string `mapstructure:"assistant_command"`

	// Event log directory written by hooks and read by the detector
	EventsDir    string   `mapstructure:"events_dir"`
	SettingsPath string   `mapstructure:"settings_path"`
	Shells       []string `mapstructure:"shells"`
	LogFile      string   `mapstructure:"log_file"`

	Sidebar SidebarConfig `mapstructure:"sidebar"`
}

// SidebarConfig holds sidebar navigator settings
type SidebarConfig struct {
	Refresh time.Duration `mapstructure:"refresh"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:           "text",
		Verbose:          false,
		Session:          "cove",
		AssistantCommand: "claude",
		EventsDir:        "~/.cove/events",
		SettingsPath:     "~/.claude/settings.json",
		Shells:           []string{"zsh", "bash", "fish"},
		LogFile:          "~/.cove/cove.log",
		Sidebar: SidebarConfig{
			Refresh: time.Second,
		},
	}
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := newViper()

	if path := findConfigFile(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := newViper()

	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

// ConfigFile returns the path to the config file Load would read, or ""
func ConfigFile() string {
	return findConfigFile()
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("COVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("format", "COVE_FORMAT")
	_ = v.BindEnv("verbose", "COVE_VERBOSE")
	_ = v.BindEnv("session", "COVE_SESSION")
	_ = v.BindEnv("events_dir", "COVE_EVENTS_DIR")

	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("session", cfg.Session)
	v.SetDefault("assistant_command", cfg.AssistantCommand)
	v.SetDefault("events_dir", cfg.EventsDir)
	v.SetDefault("settings_path", cfg.SettingsPath)
	v.SetDefault("shells", cfg.Shells)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("sidebar.refresh", cfg.Sidebar.Refresh)

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Session == "" {
		return nil, errors.New("session name must not be empty")
	}
	if cfg.Sidebar.Refresh <= 0 {
		cfg.Sidebar.Refresh = time.Second
	}

	cfg.EventsDir = ExpandHome(cfg.EventsDir)
	cfg.SettingsPath = ExpandHome(cfg.SettingsPath)
	cfg.LogFile = ExpandHome(cfg.LogFile)
	return cfg, nil
}

// findConfigFile returns the first existing config file, highest precedence first:
// ./.coverc, ./.cove.yaml, ~/.cove.yaml, $XDG_CONFIG_HOME/cove/cove.yaml, /etc/cove/cove.yaml
func findConfigFile() string {
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates,
			filepath.Join(cwd, ".coverc"),
			filepath.Join(cwd, ".cove.yaml"),
		)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".cove.yaml"))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(configDir, "cove", "cove.yaml"))
	}
	candidates = append(candidates, "/etc/cove/cove.yaml")

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
