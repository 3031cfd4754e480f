package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultVolumesRoot is where mount points are created
	DefaultVolumesRoot = "/Volumes"
	// DefaultDriver is the NTFS driver executable
	DefaultDriver = "ntfs-3g"
	// DefaultMountOptions enable read/write mode plus the macOS
	// compatibility flags
	DefaultMountOptions = "rw,auto_xattr,defer_permissions"
	// DefaultScanner is the default disk scanning backend
	DefaultScanner = "text"
	// DefaultPicker is the default volume selection interface
	DefaultPicker = "menu"
)

// Config holds the tool configuration
type Config struct {
	// VolumesRoot is the directory mount points are created under
	VolumesRoot string `toml:"volumes_root"`
	// Driver is the ntfs-3g executable name or path
	Driver string `toml:"driver"`
	// MountOptions is the -o option string passed to the driver
	MountOptions string `toml:"mount_options"`
	// Scanner is the disk scanning backend: "text" or "plist"
	Scanner string `toml:"scanner"`
	// Picker is the selection interface: "menu" or "tui"
	Picker string `toml:"picker"`
	// UseSudo runs mkdir and the driver through sudo
	UseSudo *bool `toml:"use_sudo"`
	// OpenAfterMount reveals the volume in Finder once mounted
	OpenAfterMount *bool `toml:"open_after_mount"`
}

// DefaultPath returns the default config file location,
// ~/.config/ntfs-mount/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ntfs-mount", "config.toml")
}

// Load loads configuration from a TOML file
// Returns an empty config if the file doesn't exist
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Merge merges CLI flags into the config, with CLI flags taking precedence
// over config file values. Empty CLI values are ignored.
func (c *Config) Merge(volumesRoot, driver, mountOptions, scanner, picker string) {
	if volumesRoot != "" {
		c.VolumesRoot = volumesRoot
	}
	if driver != "" {
		c.Driver = driver
	}
	if mountOptions != "" {
		c.MountOptions = mountOptions
	}
	if scanner != "" {
		c.Scanner = scanner
	}
	if picker != "" {
		c.Picker = picker
	}
}

// ApplyDefaults applies default values for any unset fields
func (c *Config) ApplyDefaults() {
	if c.VolumesRoot == "" {
		c.VolumesRoot = DefaultVolumesRoot
	}
	if c.Driver == "" {
		c.Driver = DefaultDriver
	}
	if c.MountOptions == "" {
		c.MountOptions = DefaultMountOptions
	}
	if c.Scanner == "" {
		c.Scanner = DefaultScanner
	}
	if c.Picker == "" {
		c.Picker = DefaultPicker
	}
	if c.UseSudo == nil {
		c.UseSudo = boolPtr(true)
	}
	if c.OpenAfterMount == nil {
		c.OpenAfterMount = boolPtr(true)
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !filepath.IsAbs(c.VolumesRoot) {
		return fmt.Errorf("volumes_root must be an absolute path, got %q", c.VolumesRoot)
	}

	if c.Scanner != "text" && c.Scanner != "plist" {
		return fmt.Errorf("scanner must be 'text' or 'plist', got %q", c.Scanner)
	}

	if c.Picker != "menu" && c.Picker != "tui" {
		return fmt.Errorf("picker must be 'menu' or 'tui', got %q", c.Picker)
	}

	return nil
}

func boolPtr(v bool) *bool { return &v }
