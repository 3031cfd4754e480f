// Package prompt implements the interactive line-based surfaces: the
// numbered volume menu and the blocking acknowledgment gate.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kriansa/ntfs-mount/internal/volume"
)

// ErrInputClosed is returned when stdin is closed before a valid answer
// was read. It maps to an aborted run, not a crash.
var ErrInputClosed = errors.New("input closed before a selection was made")

// Menu reads a 1-indexed selection from a numbered list of volumes.
type Menu struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewMenu creates a menu reading answers from in and printing to out.
func NewMenu(in io.Reader, out io.Writer) *Menu {
	return &Menu{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Pick renders the candidates as a numbered list and reads choices until
// one maps to a list index. Invalid input (blank, non-numeric, out of
// range) is rejected with a re-prompt; there is no retry limit. The loop
// ends early only on context cancellation or closed input.
func (m *Menu) Pick(ctx context.Context, candidates []volume.Candidate) (volume.Candidate, error) {
	fmt.Fprintf(m.out, "Found %d NTFS volume(s):\n", len(candidates))
	for i, c := range candidates {
		fmt.Fprintf(m.out, "  %d) %s (%s)\n", i+1, displayLabel(c), c.DeviceID)
	}

	for {
		if err := ctx.Err(); err != nil {
			return volume.Candidate{}, err
		}

		fmt.Fprintf(m.out, "Select a volume to mount [1-%d]: ", len(candidates))

		if !m.in.Scan() {
			if err := m.in.Err(); err != nil {
				return volume.Candidate{}, fmt.Errorf("read selection: %w", err)
			}
			return volume.Candidate{}, ErrInputClosed
		}

		answer := strings.TrimSpace(m.in.Text())
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(candidates) {
			fmt.Fprintf(m.out, "Invalid selection %q, enter a number between 1 and %d.\n",
				answer, len(candidates))
			continue
		}

		return candidates[n-1], nil
	}
}

func displayLabel(c volume.Candidate) string {
	if c.Label == "" {
		return volume.DefaultLabel
	}
	return c.Label
}

// Ack prints a message and blocks until the user presses Enter. The wait
// has no timeout; it ends early only when the context is canceled or the
// input is closed.
func Ack(ctx context.Context, in io.Reader, out io.Writer, message string) error {
	fmt.Fprintln(out, message)
	fmt.Fprint(out, "Press Enter to continue... ")

	done := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				done <- err
				return
			}
			done <- ErrInputClosed
			return
		}
		done <- nil
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("wait for acknowledgment: %w", err)
		}
		return nil
	}
}
