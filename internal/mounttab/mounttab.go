package mounttab

// Entry represents one line of mount(8) output
type Entry struct {
	Device     string
	MountPoint string
	Options    []string
}

// HasOption reports whether the mount carries the given option flag.
func (e Entry) HasOption(name string) bool {
	for _, opt := range e.Options {
		if opt == name {
			return true
		}
	}
	return false
}
