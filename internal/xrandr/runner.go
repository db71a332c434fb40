// Package xrandr drives the X11 display tools: xrandr for querying and
// mutating outputs, and cvt for computing timings.
package xrandr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner runs an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandError describes a failed command invocation. ExitCode is -1 when
// the command could not be started at all (not found, permission denied).
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	cmd := strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
	if e.ExitCode < 0 {
		return fmt.Sprintf("running %s: %v", cmd, e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", cmd, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s exited with status %d", cmd, e.ExitCode)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Exited reports whether the command ran and returned a non-zero status, as
// opposed to failing to start.
func (e *CommandError) Exited() bool { return e.ExitCode >= 0 }

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		ce := &CommandError{Name: name, Args: args, ExitCode: -1, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			ce.ExitCode = exitErr.ExitCode()
			ce.Stderr = strings.TrimSpace(stderr.String())
		}
		return stdout.Bytes(), ce
	}
	return stdout.Bytes(), nil
}

// exitedOnly reports whether err is a CommandError for a command that ran
// and failed, which xrandr uses for benign conditions such as redefining an
// existing mode.
func exitedOnly(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce) && ce.Exited()
}
