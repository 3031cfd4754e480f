// Package volume defines the discovered-partition record and the rules
// for turning a volume label into a mount point path.
package volume

import (
	"path/filepath"
	"regexp"
)

// DefaultLabel is used when a partition carries no volume name.
const DefaultLabel = "Untitled"

// Candidate is an externally attached NTFS partition eligible for
// mounting. DeviceID is the OS device identifier without the /dev/
// prefix (e.g. "disk3s1"); Label is the free-text volume name and may
// contain spaces and punctuation.
type Candidate struct {
	DeviceID string
	Label    string
}

// DevicePath returns the full device node path.
func (c Candidate) DevicePath() string {
	return "/dev/" + c.DeviceID
}

// unsafeChars matches every character that may not appear in a mount
// point directory name. Everything outside this set is kept verbatim.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeLabel maps a volume label to a filesystem-safe directory name.
// Each disallowed character is replaced with a single underscore, so the
// transform is idempotent. An empty label maps to DefaultLabel.
func SanitizeLabel(label string) string {
	if label == "" {
		return DefaultLabel
	}
	return unsafeChars.ReplaceAllString(label, "_")
}

// MountPoint returns the deterministic mount point for a label under the
// given volumes root.
func MountPoint(root, label string) string {
	return filepath.Join(root, SanitizeLabel(label))
}
