package hooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// coveHookMarker identifies cove entries regardless of the binary path.
const coveHookMarker = "cove hook"

// hookEntry is one hook cove installs.
type hookEntry struct {
	HookType string
	Matcher  string
	Event    Event
}

// Entries are the hooks cove installs, in install order.
var Entries = []hookEntry{
	{HookType: "UserPromptSubmit", Matcher: "*", Event: EventUserPrompt},
	{HookType: "Stop", Matcher: "*", Event: EventStop},
	{HookType: "PreToolUse", Matcher: "AskUserQuestion", Event: EventAsk},
	{HookType: "PostToolUse", Matcher: "AskUserQuestion", Event: EventAskDone},
}

// Command returns the shell command for a hook event.
func Command(bin string, event Event) string {
	return bin + " hook " + string(event)
}

// Installed reports whether settings at path carry the current cove hooks.
// The ask hook is checked because it was added last, and the binary path
// must match so moved installs are reported as missing.
func Installed(path, bin string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(content), Command(bin, EventAsk))
}

// HasStale reports whether settings carry cove hooks pointing at a binary
// other than bin.
func HasStale(path, bin string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	s := string(content)
	return strings.Contains(s, " hook "+string(EventUserPrompt)) && !strings.Contains(s, bin)
}

// Install adds cove hooks to the settings file at path, creating it if
// needed. Existing cove entries are replaced; everything else is kept.
func Install(path, bin string) error {
	settings := map[string]any{}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(content, &settings); err != nil {
			return fmt.Errorf("parse settings: %w", err)
		}
		if settings == nil {
			return errors.New("settings.json is not an object")
		}
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	default:
		return fmt.Errorf("read settings: %w", err)
	}

	if _, ok := settings["hooks"]; !ok {
		settings["hooks"] = map[string]any{}
	}
	hooks, ok := settings["hooks"].(map[string]any)
	if !ok {
		return errors.New("hooks is not an object")
	}

	for _, e := range Entries {
		if _, ok := hooks[e.HookType]; !ok {
			hooks[e.HookType] = []any{}
		}
		arr, ok := hooks[e.HookType].([]any)
		if !ok {
			return fmt.Errorf("%s is not an array", e.HookType)
		}

		arr = removeHookCommands(arr, coveHookMarker)
		cmd := Command(bin, e.Event)
		if !hasHookCommand(arr, cmd) {
			arr = append(arr, map[string]any{
				"matcher": e.Matcher,
				"hooks": []any{map[string]any{
					"type":    "command",
					"command": cmd,
					"async":   true,
					"timeout": 5,
				}},
			})
		}
		hooks[e.HookType] = arr
	}

	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// entryCommands returns the commands of one matcher block.
func entryCommands(entry any) []string {
	m, ok := entry.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := m["hooks"].([]any)
	if !ok {
		return nil
	}
	var cmds []string
	for _, h := range list {
		hm, ok := h.(map[string]any)
		if !ok {
			continue
		}
		if c, ok := hm["command"].(string); ok {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

func hasHookCommand(arr []any, needle string) bool {
	for _, entry := range arr {
		for _, c := range entryCommands(entry) {
			if strings.Contains(c, needle) {
				return true
			}
		}
	}
	return false
}

func removeHookCommands(arr []any, needle string) []any {
	kept := arr[:0]
	for _, entry := range arr {
		if !hasHookCommand([]any{entry}, needle) {
			kept = append(kept, entry)
		}
	}
	return kept
}
