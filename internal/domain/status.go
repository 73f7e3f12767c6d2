package domain

import (
	"os"
	"strconv"
	"strings"
)

// WindowStatus is one window joined with its classified state, as shown by
// status, list and the sidebar.
type WindowStatus struct {
	Index   int
	Name    string
	Active  bool
	Path    string
	PaneID  string
	Command string
	State   WindowState
}

// Field returns a named field as a string for --where matching.
// Unknown fields return "".
func (w WindowStatus) Field(name string) string {
	switch strings.ToLower(name) {
	case "index":
		return strconv.Itoa(w.Index)
	case "name":
		return w.Name
	case "active":
		return strconv.FormatBool(w.Active)
	case "path":
		return w.Path
	case "pane", "pane_id":
		return w.PaneID
	case "command":
		return w.Command
	case "state":
		return w.State.String()
	default:
		return ""
	}
}

// ShortPath abbreviates the home directory prefix of path to "~".
func ShortPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+"/") {
		return "~" + path[len(home):]
	}
	return path
}

// JoinStatus merges window info, pane snapshots and classified states by
// window index, preserving window order.
func JoinStatus(windows []WindowInfo, snaps []WindowSnapshot, states map[int]WindowState) []WindowStatus {
	byIndex := make(map[int]WindowSnapshot, len(snaps))
	for _, s := range snaps {
		byIndex[s.Index] = s
	}
	out := make([]WindowStatus, 0, len(windows))
	for _, w := range windows {
		snap := byIndex[w.Index]
		out = append(out, WindowStatus{
			Index:   w.Index,
			Name:    w.Name,
			Active:  w.Active,
			Path:    w.PanePath,
			PaneID:  snap.PaneID,
			Command: snap.Command,
			State:   states[w.Index],
		})
	}
	return out
}
