// Package exectest provides a scripted execx.Runner for tests.
package exectest

import (
	"context"
	"os/exec"
	"strings"
	"sync"

	"github.com/kriansa/ntfs-mount/internal/execx"
)

// FakeRunner is a Runner that replays canned results and records every
// call in order. The map keys are full command lines, e.g.
// "diskutil list external". Commands without a scripted entry succeed
// with empty output.
type FakeRunner struct {
	mu sync.Mutex

	// Results maps command lines to captured-output results.
	Results map[string]*execx.Result
	// Errs maps command lines to errors returned from Run/RunInteractive.
	Errs map[string]error
	// Missing lists executable names that LookPath reports as absent.
	Missing []string

	// Calls is the transcript of every invocation, each prefixed with
	// the entry point used: "run", "interactive", "start" or "lookpath".
	Calls []string
}

// New creates an empty FakeRunner.
func New() *FakeRunner {
	return &FakeRunner{
		Results: make(map[string]*execx.Result),
		Errs:    make(map[string]error),
	}
}

func (f *FakeRunner) record(kind string, parts ...string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	line := strings.Join(parts, " ")
	f.Calls = append(f.Calls, kind+": "+line)
	return line
}

func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (*execx.Result, error) {
	line := f.record("run", append([]string{name}, args...)...)
	if err, ok := f.Errs[line]; ok {
		res := f.Results[line]
		if res == nil {
			res = &execx.Result{ExitCode: 1}
		}
		return res, err
	}
	if res, ok := f.Results[line]; ok {
		return res, nil
	}
	return &execx.Result{}, nil
}

func (f *FakeRunner) RunInteractive(_ context.Context, name string, args ...string) error {
	line := f.record("interactive", append([]string{name}, args...)...)
	return f.Errs[line]
}

func (f *FakeRunner) Start(name string, args ...string) error {
	line := f.record("start", append([]string{name}, args...)...)
	return f.Errs[line]
}

func (f *FakeRunner) LookPath(name string) (string, error) {
	f.record("lookpath", name)
	for _, m := range f.Missing {
		if m == name {
			return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
		}
	}
	return "/usr/local/bin/" + name, nil
}

// CallIndex returns the transcript position of the first call matching
// the given prefix, or -1 when it never happened.
func (f *FakeRunner) CallIndex(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, call := range f.Calls {
		if strings.HasPrefix(call, prefix) {
			return i
		}
	}
	return -1
}
