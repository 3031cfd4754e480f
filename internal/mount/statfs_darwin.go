//go:build darwin

package mount

import "golang.org/x/sys/unix"

// Capacity returns the total and free byte counts of the filesystem
// mounted at path.
func Capacity(path string) (total, free uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, err
	}
	return st.Blocks * uint64(st.Bsize), st.Bavail * uint64(st.Bsize), nil
}
