package cli

import (
	"fmt"

	"github.com/vburojevic/cove/internal/output"
)

// CommandError is a reported command failure. The report has already been
// written by the time the error is returned, so main only sets the exit code.
type CommandError struct {
	Code    string
	Message string
	Hint    string
}

func (e *CommandError) Error() string {
	return e.Message
}

// outputErrorCommon reports a failure once, as an NDJSON error object on
// stdout or as "Error [CODE]: msg (hint: ...)" on stderr, and returns it.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	e := &CommandError{Code: code, Message: message}
	if len(hint) > 0 {
		e.Hint = hint[0]
	}
	if globals == nil {
		return e
	}

	if globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(e.Code, e.Message, e.Hint)
		return e
	}
	fmt.Fprintf(globals.Stderr, "Error [%s]: %s", e.Code, e.Message)
	if e.Hint != "" {
		fmt.Fprintf(globals.Stderr, " (hint: %s)", e.Hint)
	}
	fmt.Fprintln(globals.Stderr)
	return e
}
