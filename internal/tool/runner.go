// internal/tool/runner.go
package tool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
)

// Status is the outcome of one finished subprocess.
type Status struct {
	ExitCode int
}

// WaitStatus is the POSIX wait(2) encoding of a normal exit (code << 8),
// which is what a shell-style system() call reports.
func (s Status) WaitStatus() int {
	return s.ExitCode << 8
}

func (s Status) OK() bool { return s.ExitCode == 0 }

// Runner executes one external command to completion.
// A non-zero exit is NOT an error; err is reserved for failing to run at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Status, error)
}

// ExecRunner runs commands as child processes with output passed through.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Status, error) {
	if name == "" {
		return Status{}, errors.New("tool: command is empty")
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	log.Printf("tool: exec %s %s", name, strings.Join(args, " "))

	err := cmd.Run()
	if err == nil {
		return Status{}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		st := Status{ExitCode: exitErr.ExitCode()}
		log.Printf("tool: %s exited with code %d", name, st.ExitCode)
		return st, nil
	}

	// not found, permission denied, context cancelled before start, ...
	return Status{}, fmt.Errorf("tool: run %s: %w", name, err)
}
