// internal/tool/errors.go
package tool

import "fmt"

// ExitError reports a subprocess that ran but did not finish with an
// accepted status, or that could not be started (Err set).
type ExitError struct {
	Tool       string
	Subcommand string
	Status     Status
	Err        error
}

func (e *ExitError) Error() string {
	name := e.Tool
	if e.Subcommand != "" {
		name += " " + e.Subcommand
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", name, e.Err)
	}
	return fmt.Sprintf("%s: exit code %d", name, e.Status.ExitCode)
}

func (e *ExitError) Unwrap() error { return e.Err }
