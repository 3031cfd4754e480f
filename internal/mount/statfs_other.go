//go:build !darwin

package mount

import "errors"

// Capacity is only implemented on macOS, the platform this tool targets.
func Capacity(path string) (total, free uint64, err error) {
	return 0, 0, errors.ErrUnsupported
}
