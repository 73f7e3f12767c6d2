package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and XDG_CONFIG_HOME at an empty temp tree and chdirs into it.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	t.Chdir(tmpDir)
	return tmpDir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "cove", cfg.Session)
	assert.Equal(t, "claude", cfg.AssistantCommand)
	assert.Equal(t, "~/.cove/events", cfg.EventsDir)
	assert.Equal(t, []string{"zsh", "bash", "fish"}, cfg.Shells)
	assert.Equal(t, time.Second, cfg.Sidebar.Refresh)
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		home := isolate(t)

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "text", cfg.Format)
		assert.Equal(t, filepath.Join(home, ".cove", "events"), cfg.EventsDir)
		assert.Equal(t, filepath.Join(home, ".claude", "settings.json"), cfg.SettingsPath)
		assert.Equal(t, filepath.Join(home, ".cove", "cove.log"), cfg.LogFile)
	})

	t.Run("loads .coverc from current directory", func(t *testing.T) {
		home := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(home, ".coverc"), []byte("session: work\nshells: [nu]\n"), 0644))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "work", cfg.Session)
		assert.Equal(t, []string{"nu"}, cfg.Shells)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "bad.yaml")
		err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("rejects empty session name", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "cove.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(`session: ""`), 0644))

		_, err := LoadFromFile(configPath)
		assert.Error(t, err)
	})

	t.Run("parses all config fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		configContent := `
format: ndjson
verbose: true
session: agents
assistant_command: claude --continue
events_dir: /var/tmp/cove-events
settings_path: /tmp/settings.json
shells:
  - zsh
  - nu
log_file: /tmp/cove.log
sidebar:
  refresh: 2s
`
		configPath := filepath.Join(tmpDir, "cove.yaml")
		err := os.WriteFile(configPath, []byte(configContent), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "ndjson", cfg.Format)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "agents", cfg.Session)
		assert.Equal(t, "claude --continue", cfg.AssistantCommand)
		assert.Equal(t, "/var/tmp/cove-events", cfg.EventsDir)
		assert.Equal(t, "/tmp/settings.json", cfg.SettingsPath)
		assert.Equal(t, []string{"zsh", "nu"}, cfg.Shells)
		assert.Equal(t, "/tmp/cove.log", cfg.LogFile)
		assert.Equal(t, 2*time.Second, cfg.Sidebar.Refresh)
	})
}

func TestConfigEnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("COVE_FORMAT", "ndjson")
	t.Setenv("COVE_SESSION", "env-session")
	t.Setenv("COVE_EVENTS_DIR", "/tmp/env-events")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ndjson", cfg.Format)
	assert.Equal(t, "env-session", cfg.Session)
	assert.Equal(t, "/tmp/env-events", cfg.EventsDir)
}

func TestFindConfigFile(t *testing.T) {
	t.Run("finds .cove.yaml in home directory", func(t *testing.T) {
		home := isolate(t)
		require.NoError(t, os.Mkdir(filepath.Join(home, "work"), 0755))
		t.Chdir(filepath.Join(home, "work"))

		configPath := filepath.Join(home, ".cove.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: ndjson"), 0644))

		assert.Equal(t, configPath, findConfigFile())
		assert.Equal(t, configPath, ConfigFile())
	})

	t.Run("finds cove.yaml in XDG config directory", func(t *testing.T) {
		home := isolate(t)
		dir := filepath.Join(home, ".config", "cove")
		require.NoError(t, os.MkdirAll(dir, 0755))
		configPath := filepath.Join(dir, "cove.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: ndjson"), 0644))

		assert.Equal(t, configPath, findConfigFile())
	})

	t.Run("prefers .coverc over .cove.yaml", func(t *testing.T) {
		tmpDir := isolate(t)

		rcPath := filepath.Join(tmpDir, ".coverc")
		yamlPath := filepath.Join(tmpDir, ".cove.yaml")
		require.NoError(t, os.WriteFile(rcPath, []byte("format: ndjson"), 0644))
		require.NoError(t, os.WriteFile(yamlPath, []byte("format: text"), 0644))

		found := findConfigFile()
		expectedPath, _ := filepath.EvalSymlinks(rcPath)
		foundPath, _ := filepath.EvalSymlinks(found)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("returns empty string when no config found", func(t *testing.T) {
		isolate(t)
		if _, err := os.Stat("/etc/cove/cove.yaml"); err == nil {
			t.Skip("system config present")
		}
		assert.Empty(t, findConfigFile())
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/.cove/events", filepath.Join(home, ".cove", "events")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~user/x", "~user/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
