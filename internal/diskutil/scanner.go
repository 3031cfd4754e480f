// Package diskutil discovers externally attached NTFS partitions by
// invoking diskutil and parsing its output.
package diskutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/kriansa/ntfs-mount/internal/execx"
	"github.com/kriansa/ntfs-mount/internal/volume"
)

// ContentNTFS is the diskutil partition type marker for NTFS.
const ContentNTFS = "Windows_NTFS"

// ErrNoVolumes is returned when no external NTFS partition is attached.
// This is an expected negative outcome, not a parse failure.
var ErrNoVolumes = errors.New("no NTFS partitions found on external disks")

// Scanner produces the ordered list of mountable NTFS partitions.
type Scanner interface {
	// ExternalNTFS returns all NTFS partitions on external disks in
	// enumeration order. Returns ErrNoVolumes when none are attached.
	ExternalNTFS(ctx context.Context) ([]volume.Candidate, error)
}

// NewScanner creates a Scanner based on the specified backend
func NewScanner(backend string, runner execx.Runner) (Scanner, error) {
	switch backend {
	case "text":
		return NewTextScanner(runner), nil
	case "plist":
		return NewPlistScanner(runner), nil
	default:
		return nil, fmt.Errorf("unknown scanner backend: %s (use 'text' or 'plist')", backend)
	}
}
