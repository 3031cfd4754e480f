// Package app drives the single linear run: verify dependencies, scan
// for volumes, obtain a selection, mount it. Each run is one pass with
// no cycles; any failure aborts at that point.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kriansa/ntfs-mount/internal/deps"
	"github.com/kriansa/ntfs-mount/internal/diskutil"
	"github.com/kriansa/ntfs-mount/internal/log"
	"github.com/kriansa/ntfs-mount/internal/mount"
	"github.com/kriansa/ntfs-mount/internal/volume"
)

// Verifier makes the external toolchain available before anything else
// runs. Implemented by deps.Verifier.
type Verifier interface {
	Ensure(ctx context.Context) error
}

// Picker obtains exactly one selection from the discovered volumes.
// Implemented by prompt.Menu and tui.Picker.
type Picker interface {
	Pick(ctx context.Context, candidates []volume.Candidate) (volume.Candidate, error)
}

// compile-time interface checks
var _ Verifier = (*deps.Verifier)(nil)

// App wires the four workflow components together.
type App struct {
	verifier Verifier
	scanner  diskutil.Scanner
	picker   Picker
	mounter  mount.Mounter
	out      io.Writer

	// device, when set, selects a volume by identifier and skips the
	// interactive picker entirely.
	device string
	// openAfterMount reveals the mounted volume in the file browser
	openAfterMount bool
}

// New creates an App.
func New(verifier Verifier, scanner diskutil.Scanner, picker Picker, mounter mount.Mounter,
	out io.Writer, device string, openAfterMount bool) *App {
	return &App{
		verifier:       verifier,
		scanner:        scanner,
		picker:         picker,
		mounter:        mounter,
		out:            out,
		device:         strings.TrimPrefix(device, "/dev/"),
		openAfterMount: openAfterMount,
	}
}

// Run executes the workflow once.
func (a *App) Run(ctx context.Context) error {
	if err := a.verifier.Ensure(ctx); err != nil {
		return err
	}

	candidates, err := a.scanner.ExternalNTFS(ctx)
	if err != nil {
		return err
	}

	selected, err := a.selectCandidate(ctx, candidates)
	if err != nil {
		return err
	}

	mountPoint, err := a.mounter.Mount(ctx, selected)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Mounted %s read/write at %s%s\n",
		selected.DevicePath(), mountPoint, capacitySuffix(mountPoint))

	if a.openAfterMount {
		a.mounter.Reveal(mountPoint)
	}

	return nil
}

func (a *App) selectCandidate(ctx context.Context, candidates []volume.Candidate) (volume.Candidate, error) {
	if a.device == "" {
		return a.picker.Pick(ctx, candidates)
	}

	var available []string
	for _, c := range candidates {
		if c.DeviceID == a.device {
			log.Debug("volume preselected by flag", "device", c.DeviceID)
			return c, nil
		}
		available = append(available, c.DeviceID)
	}

	return volume.Candidate{}, fmt.Errorf("device %s is not an external NTFS partition (found: %s)",
		a.device, strings.Join(available, ", "))
}

// capacitySuffix renders " (x free of y)" when statfs information is
// available, an empty string otherwise.
func capacitySuffix(mountPoint string) string {
	total, free, err := mount.Capacity(mountPoint)
	if err != nil || total == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s free of %s)", formatBytes(free), formatBytes(total))
}

func formatBytes(n uint64) string {
	const (
		kb = 1000
		mb = 1000 * kb
		gb = 1000 * mb
		tb = 1000 * gb
	)

	switch {
	case n >= tb:
		return fmt.Sprintf("%.1f TB", float64(n)/tb)
	case n >= gb:
		return fmt.Sprintf("%.1f GB", float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
