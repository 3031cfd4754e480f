package deps

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kriansa/ntfs-mount/internal/execx"
	"github.com/kriansa/ntfs-mount/internal/execx/exectest"
)

func TestEnsureBrewMissingIsFatal(t *testing.T) {
	runner := exectest.New()
	runner.Missing = []string{"brew"}

	var out bytes.Buffer
	err := NewVerifier(runner, strings.NewReader(""), &out).Ensure(context.Background())

	assert.ErrorIs(t, err, ErrBrewMissing)
	for _, call := range runner.Calls {
		assert.NotContains(t, call, "interactive", "no install may be attempted without brew")
	}
}

func TestEnsureEverythingPresent(t *testing.T) {
	runner := exectest.New()

	var out bytes.Buffer
	err := NewVerifier(runner, strings.NewReader(""), &out).Ensure(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{
		"lookpath: brew",
		"run: brew list --cask macfuse",
		"lookpath: ntfs-3g",
	}, runner.Calls, "presence checks only, no installs")
}

func TestEnsureInstallsMacFUSEAndWaitsForApproval(t *testing.T) {
	runner := exectest.New()
	runner.Errs["brew list --cask macfuse"] = &execx.Error{
		Command:  []string{"brew", "list", "--cask", "macfuse"},
		ExitCode: 1,
	}

	var out bytes.Buffer
	// The lone newline is the user's Enter on the approval gate.
	err := NewVerifier(runner, strings.NewReader("\n"), &out).Ensure(context.Background())

	require.NoError(t, err)
	assert.Contains(t, runner.Calls, "interactive: brew install --cask macfuse")
	assert.Contains(t, out.String(), "Privacy & Security",
		"manual approval instructions must be shown")
	assert.Contains(t, out.String(), "Press Enter to continue")
}

func TestEnsureMacFUSEApprovalAborts(t *testing.T) {
	runner := exectest.New()
	runner.Errs["brew list --cask macfuse"] = &execx.Error{ExitCode: 1}

	var out bytes.Buffer
	// Input ends without the user ever pressing Enter.
	err := NewVerifier(runner, strings.NewReader(""), &out).Ensure(context.Background())

	assert.ErrorContains(t, err, "confirm macFUSE post-install step")
}

func TestEnsureInstallsNTFS3GFromTap(t *testing.T) {
	runner := exectest.New()
	runner.Missing = []string{"ntfs-3g"}

	var out bytes.Buffer
	err := NewVerifier(runner, strings.NewReader(""), &out).Ensure(context.Background())

	require.NoError(t, err)
	assert.Contains(t, runner.Calls, "interactive: brew install gromgit/fuse/ntfs-3g-mac",
		"driver must come from the tap, not homebrew-core")
}

func TestEnsureInstallFailurePropagates(t *testing.T) {
	runner := exectest.New()
	runner.Missing = []string{"ntfs-3g"}
	runner.Errs["brew install gromgit/fuse/ntfs-3g-mac"] = &execx.Error{ExitCode: 1}

	var out bytes.Buffer
	err := NewVerifier(runner, strings.NewReader(""), &out).Ensure(context.Background())

	assert.ErrorContains(t, err, "install ntfs-3g")
}
