// Package mount attaches NTFS partitions read/write through the
// ntfs-3g FUSE driver.
package mount

import (
	"context"
	"fmt"

	"github.com/kriansa/ntfs-mount/internal/execx"
	"github.com/kriansa/ntfs-mount/internal/log"
	"github.com/kriansa/ntfs-mount/internal/mounttab"
	"github.com/kriansa/ntfs-mount/internal/volume"
)

// DefaultMountOptions enable read/write mode plus the two macOS
// compatibility flags: extended-attribute translation and deferred
// permission enforcement.
const DefaultMountOptions = "rw,auto_xattr,defer_permissions"

// Options configure the NTFS3G mounter.
type Options struct {
	// VolumesRoot is the directory mount points are created under
	VolumesRoot string
	// Driver is the ntfs-3g executable name or path
	Driver string
	// MountOptions is the -o option string passed to the driver
	MountOptions string
	// UseSudo prefixes mkdir and driver invocations with sudo
	UseSudo bool
}

// NTFS3G mounts volumes by shelling out to the ntfs-3g driver.
type NTFS3G struct {
	runner execx.Runner
	opts   Options
}

// NewNTFS3G creates a Mounter backed by the ntfs-3g executable.
func NewNTFS3G(runner execx.Runner, opts Options) *NTFS3G {
	if opts.Driver == "" {
		opts.Driver = "ntfs-3g"
	}
	if opts.MountOptions == "" {
		opts.MountOptions = DefaultMountOptions
	}
	return &NTFS3G{
		runner: runner,
		opts:   opts,
	}
}

// Mount attaches the candidate read/write.
//
// The sequence is ordered deliberately: a pre-existing attachment (macOS
// auto-mounts NTFS read-only) is detached before the mount point is
// created, and the driver runs last. Mounting over an active attachment
// would conflict, so the unmount is not optional.
func (m *NTFS3G) Mount(ctx context.Context, c volume.Candidate) (string, error) {
	mountPoint := volume.MountPoint(m.opts.VolumesRoot, c.Label)

	if err := m.detachExisting(ctx, c); err != nil {
		return "", err
	}

	// Idempotent: mkdir -p succeeds whether or not the directory exists.
	name, args := m.sudoWrap("mkdir", "-p", mountPoint)
	if err := m.runner.RunInteractive(ctx, name, args...); err != nil {
		return "", fmt.Errorf("create mount point %s: %w", mountPoint, err)
	}

	name, args = m.sudoWrap(m.opts.Driver, c.DevicePath(), mountPoint, "-o", m.opts.MountOptions)
	if err := m.runner.RunInteractive(ctx, name, args...); err != nil {
		return "", fmt.Errorf("mount %s at %s: %w", c.DevicePath(), mountPoint, err)
	}

	log.Info("volume mounted", "device", c.DevicePath(), "mountpoint", mountPoint)
	return mountPoint, nil
}

// detachExisting unmounts the device if the system already has it
// attached somewhere.
func (m *NTFS3G) detachExisting(ctx context.Context, c volume.Candidate) error {
	result, err := m.runner.Run(ctx, "mount")
	if err != nil {
		return fmt.Errorf("query mount state: %w", err)
	}

	entry := mounttab.Find(mounttab.Parse(result.Stdout), c.DevicePath())
	if entry == nil {
		return nil
	}

	log.Info("device already mounted, detaching first",
		"device", c.DevicePath(), "mountpoint", entry.MountPoint)

	if _, err := m.runner.Run(ctx, "diskutil", "unmount", c.DevicePath()); err != nil {
		return fmt.Errorf("unmount existing attachment of %s: %w", c.DevicePath(), err)
	}

	return nil
}

// Reveal opens the mounted volume in Finder, fire-and-forget.
func (m *NTFS3G) Reveal(mountPoint string) {
	if err := m.runner.Start("open", mountPoint); err != nil {
		// Suppressed by design: a failed Finder launch never fails the run.
		log.Debug("file browser launch failed", "mountpoint", mountPoint, "error", err)
	}
}

func (m *NTFS3G) sudoWrap(name string, args ...string) (string, []string) {
	if !m.opts.UseSudo {
		return name, args
	}
	return "sudo", append([]string{name}, args...)
}
