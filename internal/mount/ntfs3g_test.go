package mount

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kriansa/ntfs-mount/internal/execx"
	"github.com/kriansa/ntfs-mount/internal/execx/exectest"
	"github.com/kriansa/ntfs-mount/internal/volume"
)

var windowsHD = volume.Candidate{DeviceID: "disk3s1", Label: "Windows HD!"}

func newTestMounter(runner *exectest.FakeRunner, useSudo bool) *NTFS3G {
	return NewNTFS3G(runner, Options{
		VolumesRoot: "/Volumes",
		UseSudo:     useSudo,
	})
}

func TestMountFreshDevice(t *testing.T) {
	runner := exectest.New()
	runner.Results["mount"] = &execx.Result{
		Stdout: "/dev/disk1s1 on / (apfs, local, journaled)\n",
	}

	mountPoint, err := newTestMounter(runner, true).Mount(context.Background(), windowsHD)
	require.NoError(t, err)

	assert.Equal(t, "/Volumes/Windows_HD_", mountPoint,
		"space and ! each become a single underscore")
	assert.Equal(t, []string{
		"run: mount",
		"interactive: sudo mkdir -p /Volumes/Windows_HD_",
		"interactive: sudo ntfs-3g /dev/disk3s1 /Volumes/Windows_HD_ -o rw,auto_xattr,defer_permissions",
	}, runner.Calls, "no unmount for a device that is not attached")
}

func TestMountDetachesExistingAttachmentFirst(t *testing.T) {
	runner := exectest.New()
	runner.Results["mount"] = &execx.Result{
		Stdout: "/dev/disk3s1 on /Volumes/Windows HD (ntfs, local, read-only)\n",
	}

	_, err := newTestMounter(runner, true).Mount(context.Background(), windowsHD)
	require.NoError(t, err)

	unmount := runner.CallIndex("run: diskutil unmount /dev/disk3s1")
	mkdir := runner.CallIndex("interactive: sudo mkdir")
	require.NotEqual(t, -1, unmount, "already-attached device must be unmounted")
	require.NotEqual(t, -1, mkdir)
	assert.Less(t, unmount, mkdir,
		"unmount must happen strictly before the mount point is created")
}

func TestMountUnmountFailureAborts(t *testing.T) {
	runner := exectest.New()
	runner.Results["mount"] = &execx.Result{
		Stdout: "/dev/disk3s1 on /Volumes/Windows HD (ntfs, read-only)\n",
	}
	runner.Errs["diskutil unmount /dev/disk3s1"] = &execx.Error{ExitCode: 1}

	_, err := newTestMounter(runner, true).Mount(context.Background(), windowsHD)

	assert.ErrorContains(t, err, "unmount existing attachment")
	assert.Equal(t, -1, runner.CallIndex("interactive:"),
		"neither mkdir nor the driver may run after a failed unmount")
}

func TestMountDriverFailurePropagates(t *testing.T) {
	runner := exectest.New()
	runner.Errs["sudo ntfs-3g /dev/disk3s1 /Volumes/Windows_HD_ -o rw,auto_xattr,defer_permissions"] =
		&execx.Error{ExitCode: 13}

	_, err := newTestMounter(runner, true).Mount(context.Background(), windowsHD)
	assert.ErrorContains(t, err, "mount /dev/disk3s1")
}

func TestMountWithoutSudo(t *testing.T) {
	runner := exectest.New()

	_, err := newTestMounter(runner, false).Mount(context.Background(), windowsHD)
	require.NoError(t, err)

	assert.Contains(t, runner.Calls, "interactive: mkdir -p /Volumes/Windows_HD_")
	assert.Contains(t, runner.Calls,
		"interactive: ntfs-3g /dev/disk3s1 /Volumes/Windows_HD_ -o rw,auto_xattr,defer_permissions")
}

func TestMountCustomDriverAndOptions(t *testing.T) {
	runner := exectest.New()
	m := NewNTFS3G(runner, Options{
		VolumesRoot:  "/mnt",
		Driver:       "/usr/local/bin/ntfs-3g",
		MountOptions: "rw,noatime",
		UseSudo:      false,
	})

	mountPoint, err := m.Mount(context.Background(), volume.Candidate{DeviceID: "disk4s2", Label: "Backup"})
	require.NoError(t, err)

	assert.Equal(t, "/mnt/Backup", mountPoint)
	assert.Contains(t, runner.Calls,
		"interactive: /usr/local/bin/ntfs-3g /dev/disk4s2 /mnt/Backup -o rw,noatime")
}

func TestRevealNeverFails(t *testing.T) {
	runner := exectest.New()
	runner.Errs["open /Volumes/Backup"] = &execx.Error{ExitCode: 1}

	// Reveal has no error return by contract.
	newTestMounter(runner, true).Reveal("/Volumes/Backup")

	assert.Contains(t, runner.Calls, "start: open /Volumes/Backup",
		"the file browser launch is detached, not awaited")
}
