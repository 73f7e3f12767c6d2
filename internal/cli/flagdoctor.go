package cli

import "github.com/vburojevic/cove/internal/filter"

// validateFlags centralizes checks shared by commands that read state.
func validateFlags(globals *Globals, where []string) (*filter.WhereFilter, error) {
	if globals != nil && globals.EventsDir == "" {
		return nil, outputErrorCommon(globals, "INVALID_FLAGS", "--events-dir must not be empty", "set events_dir in cove.yaml or pass --events-dir")
	}
	f, err := filter.NewWhereFilter(where)
	if err != nil {
		return nil, outputErrorCommon(globals, "INVALID_WHERE", err.Error(), "use field=value, e.g. state=working or name^api")
	}
	return f, nil
}
