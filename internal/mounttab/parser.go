// Package mounttab parses the output of mount(8) to answer whether a
// device is currently attached and where.
package mounttab

import (
	"bufio"
	"strings"
)

// Parse parses mount(8) output and returns all mount entries.
//
// Lines have the form:
//
//	/dev/disk3s1 on /Volumes/Windows HD (ntfs, local, read-only)
//
// Mount points may contain spaces, so the line is split on the first
// " on " and the last " (" rather than on whitespace. Lines that do not
// match this shape (including blank lines) are skipped.
func Parse(output string) []Entry {
	var mounts []Entry

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		device, rest, ok := strings.Cut(line, " on ")
		if !ok || device == "" {
			continue
		}

		open := strings.LastIndex(rest, " (")
		if open < 0 || !strings.HasSuffix(rest, ")") {
			continue
		}

		mountPoint := rest[:open]
		optList := rest[open+2 : len(rest)-1]

		var options []string
		for _, opt := range strings.Split(optList, ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				options = append(options, opt)
			}
		}

		mounts = append(mounts, Entry{
			Device:     device,
			MountPoint: mountPoint,
			Options:    options,
		})
	}

	return mounts
}

// Find returns the entry for the given device, or nil when the device is
// not mounted.
func Find(entries []Entry, device string) *Entry {
	for i := range entries {
		if entries[i].Device == device {
			return &entries[i]
		}
	}
	return nil
}
