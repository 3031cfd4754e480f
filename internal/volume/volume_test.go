package volume

import (
	"regexp"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Backup", "Backup"},
		{"space and punctuation", "Windows HD!", "Windows_HD_"},
		{"allowed punctuation kept", "my-drive_v2.1", "my-drive_v2.1"},
		{"unicode replaced", "Données", "Donn_es"},
		{"slash replaced", "a/b", "a_b"},
		{"empty label", "", "Untitled"},
		{"only punctuation", "!!!", "___"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeLabel(tt.input); got != tt.want {
				t.Errorf("SanitizeLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeLabelIsIdempotent(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

	for _, label := range []string{"Windows HD!", "Données", "a b c", "ok", "", "x!y@z#"} {
		once := SanitizeLabel(label)
		twice := SanitizeLabel(once)
		if once != twice {
			t.Errorf("SanitizeLabel(%q): not idempotent: %q != %q", label, once, twice)
		}
		if !safe.MatchString(once) {
			t.Errorf("SanitizeLabel(%q) = %q contains unsafe characters", label, once)
		}
	}
}

func TestMountPoint(t *testing.T) {
	if got := MountPoint("/Volumes", "Windows HD!"); got != "/Volumes/Windows_HD_" {
		t.Errorf("MountPoint = %q, want /Volumes/Windows_HD_", got)
	}
}

func TestDevicePath(t *testing.T) {
	c := Candidate{DeviceID: "disk3s1", Label: "Windows HD"}
	if got := c.DevicePath(); got != "/dev/disk3s1" {
		t.Errorf("DevicePath = %q, want /dev/disk3s1", got)
	}
}
