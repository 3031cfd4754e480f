// Package execx runs the external commands this tool orchestrates
// (diskutil, brew, mount, ntfs-3g, open) behind a small interface so the
// rest of the code can be tested against a scripted fake instead of live
// system state.
package execx

import (
	"context"
	"fmt"
	"strings"
)

// Result holds the captured output of a finished command.
type Result struct {
	// Stdout is the captured standard output
	Stdout string
	// Stderr is the captured standard error
	Stderr string
	// Combined is the interleaved stdout and stderr output
	Combined string
	// ExitCode is the exit code returned by the command
	ExitCode int
}

// Runner executes external commands.
type Runner interface {
	// Run executes the command, waits for it to finish and captures its
	// output. A non-zero exit status is returned as an *Error alongside
	// the partially filled Result.
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// RunInteractive executes the command attached to the process
	// stdin/stdout/stderr. Used for commands that talk to the user
	// directly (brew install progress, sudo password prompts).
	RunInteractive(ctx context.Context, name string, args ...string) error

	// Start launches the command detached and returns immediately.
	// The command's outcome and output are discarded.
	Start(name string, args ...string) error

	// LookPath reports the path of an executable, or an error when it is
	// not present on PATH.
	LookPath(name string) (string, error)
}

// Error is returned when a command exits with a non-zero status.
type Error struct {
	// Command is the full command line that was executed
	Command []string
	// ExitCode is the exit code returned by the command
	ExitCode int
	// Output is the combined output captured before the failure, empty
	// for interactive commands
	Output string
	// Err is the underlying error from os/exec
	Err error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("command %q failed with exit code %d: %s",
			strings.Join(e.Command, " "), e.ExitCode, strings.TrimSpace(e.Output))
	}
	return fmt.Sprintf("command %q failed with exit code %d",
		strings.Join(e.Command, " "), e.ExitCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}
