// Package bootstrap hands the finished configuration to the launcher.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command is one launcher invocation, e.g. "./launcher rebuild app".
type Command struct {
	Launcher   string
	Subcommand string
	App        string

	// Dir is the working directory; empty means the current one.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ExitError is returned when the launcher exits non-zero.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
}

// Args returns the launcher arguments.
func (c Command) Args() []string {
	return []string{c.Subcommand, c.App}
}

// String returns the command line as the operator would type it.
func (c Command) String() string {
	return strings.Join(append([]string{c.Launcher}, c.Args()...), " ")
}

// Run executes the launcher with the configured stdio and waits for it.
// A non-zero exit is returned as *ExitError carrying the launcher's code.
func Run(ctx context.Context, c Command) error {
	// #nosec G204 - launcher path and arguments come from operator settings
	cmd := exec.CommandContext(ctx, c.Launcher, c.Args()...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return &ExitError{Command: c.String(), Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run %s: %w", c.String(), err)
	}

	return nil
}
