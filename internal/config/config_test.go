package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
volumes_root = "/mnt/ntfs"
mount_options = "rw,noatime"
scanner = "plist"
use_sudo = false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/mnt/ntfs", cfg.VolumesRoot)
	assert.Equal(t, "rw,noatime", cfg.MountOptions)
	assert.Equal(t, "plist", cfg.Scanner)
	require.NotNil(t, cfg.UseSudo)
	assert.False(t, *cfg.UseSudo)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("volumes_root = [broken"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config file")
}

func TestMergeFlagPrecedence(t *testing.T) {
	cfg := &Config{VolumesRoot: "/from-file", Scanner: "plist"}

	cfg.Merge("/from-flag", "", "", "", "tui")

	assert.Equal(t, "/from-flag", cfg.VolumesRoot, "flags override file values")
	assert.Equal(t, "plist", cfg.Scanner, "empty flags leave file values alone")
	assert.Equal(t, "tui", cfg.Picker)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "/Volumes", cfg.VolumesRoot)
	assert.Equal(t, "ntfs-3g", cfg.Driver)
	assert.Equal(t, "rw,auto_xattr,defer_permissions", cfg.MountOptions)
	assert.Equal(t, "text", cfg.Scanner)
	assert.Equal(t, "menu", cfg.Picker)
	require.NotNil(t, cfg.UseSudo)
	assert.True(t, *cfg.UseSudo)
	require.NotNil(t, cfg.OpenAfterMount)
	assert.True(t, *cfg.OpenAfterMount)
}

func TestApplyDefaultsKeepsExplicitFalse(t *testing.T) {
	off := false
	cfg := &Config{UseSudo: &off}
	cfg.ApplyDefaults()

	assert.False(t, *cfg.UseSudo, "explicit false must not be overwritten by the default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"relative volumes root", func(c *Config) { c.VolumesRoot = "Volumes" }, "absolute path"},
		{"unknown scanner", func(c *Config) { c.Scanner = "yaml" }, "scanner must be"},
		{"unknown picker", func(c *Config) { c.Picker = "gui" }, "picker must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
