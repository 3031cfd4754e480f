package execx

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/kriansa/ntfs-mount/internal/log"
)

// OSRunner is the Runner backed by os/exec.
type OSRunner struct{}

// NewOSRunner creates a Runner that spawns real processes.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run executes the command and captures stdout, stderr and the combined
// stream separately.
func (r *OSRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	log.Debug("running command", "name", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr, combined bytes.Buffer
	cmd.Stdout = io.MultiWriter(&stdout, &combined)
	cmd.Stderr = io.MultiWriter(&stderr, &combined)

	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Combined: combined.String(),
		ExitCode: exitCode(cmd),
	}

	if err != nil {
		return result, &Error{
			Command:  append([]string{name}, args...),
			ExitCode: result.ExitCode,
			Output:   result.Combined,
			Err:      err,
		}
	}

	return result, nil
}

// RunInteractive executes the command with the parent's stdio attached.
func (r *OSRunner) RunInteractive(ctx context.Context, name string, args ...string) error {
	log.Debug("running interactive command", "name", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return &Error{
			Command:  append([]string{name}, args...),
			ExitCode: exitCode(cmd),
			Err:      err,
		}
	}

	return nil
}

// exitCode is safe to call for commands that never started.
func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}

// Start launches the command fire-and-forget. Output and exit status are
// discarded; the child is left running when this process exits.
func (r *OSRunner) Start(name string, args ...string) error {
	log.Debug("starting detached command", "name", name, "args", args)

	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}

	// Reap the child in the background so it does not linger as a zombie
	// if we stay alive longer than it does.
	go func() { _ = cmd.Wait() }()

	return nil
}

// LookPath reports the path of an executable on PATH.
func (r *OSRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
