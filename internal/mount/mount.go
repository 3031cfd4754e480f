package mount

import (
	"context"

	"github.com/kriansa/ntfs-mount/internal/volume"
)

// Mounter defines the interface for attaching a volume read/write
type Mounter interface {
	// Mount attaches the candidate at its deterministic mount point,
	// detaching any pre-existing (typically read-only) attachment first.
	// Returns the final mount point path.
	Mount(ctx context.Context, c volume.Candidate) (string, error)

	// Reveal opens the mount point in the file browser. Best effort:
	// the outcome is discarded and never fails the run.
	Reveal(mountPoint string)
}
