// Package deps verifies and installs the external toolchain: Homebrew,
// macFUSE and the ntfs-3g driver. All presence checks are side-effect
// free; installs go through Homebrew.
package deps

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kriansa/ntfs-mount/internal/execx"
	"github.com/kriansa/ntfs-mount/internal/log"
	"github.com/kriansa/ntfs-mount/internal/prompt"
)

// ErrBrewMissing is the one unrecoverable dependency failure: without a
// package manager nothing else can be installed.
var ErrBrewMissing = errors.New(
	"Homebrew is not installed; install it from https://brew.sh and run again")

// macFUSEApproval is shown after the macFUSE cask is installed. Loading
// the kernel extension requires a manual approval in System Settings
// that no process can perform on the user's behalf.
const macFUSEApproval = `macFUSE has been installed, but macOS blocks its system extension until
you approve it manually:

  1. Open System Settings > Privacy & Security
  2. Allow the system software from developer "Benjamin Fleischer"
  3. Reboot if macOS asks you to

Complete the approval before continuing.`

// Dependency describes one external tool: how to detect it and how to
// install it when absent.
type Dependency struct {
	// Name is the human-readable dependency name
	Name string
	// Check reports whether the dependency is already present
	Check func(ctx context.Context, runner execx.Runner) bool
	// InstallArgs are the brew arguments used to install the dependency
	InstallArgs []string
	// PostInstall, when set, is a manual step the user must acknowledge
	// after installation before the run may proceed
	PostInstall string
}

// MacFUSE is the userspace filesystem framework, installed as a cask.
// Its kernel extension needs a human-approved security exception.
func MacFUSE() Dependency {
	return Dependency{
		Name: "macFUSE",
		Check: func(ctx context.Context, runner execx.Runner) bool {
			_, err := runner.Run(ctx, "brew", "list", "--cask", "macfuse")
			return err == nil
		},
		InstallArgs: []string{"install", "--cask", "macfuse"},
		PostInstall: macFUSEApproval,
	}
}

// NTFS3G is the read/write NTFS driver. The homebrew-core formula is
// disabled, so it is installed from the gromgit/fuse tap instead.
func NTFS3G() Dependency {
	return Dependency{
		Name: "ntfs-3g",
		Check: func(_ context.Context, runner execx.Runner) bool {
			_, err := runner.LookPath("ntfs-3g")
			return err == nil
		},
		InstallArgs: []string{"install", "gromgit/fuse/ntfs-3g-mac"},
	}
}

// Verifier checks the toolchain once per run and installs what is
// missing, pausing for manual post-install steps.
type Verifier struct {
	runner execx.Runner
	in     io.Reader
	out    io.Writer
}

// NewVerifier creates a Verifier that prompts on out and reads
// acknowledgments from in.
func NewVerifier(runner execx.Runner, in io.Reader, out io.Writer) *Verifier {
	return &Verifier{
		runner: runner,
		in:     in,
		out:    out,
	}
}

// Ensure makes all three dependencies available or returns the first
// failure. Homebrew itself cannot be auto-installed; its absence is
// fatal.
func (v *Verifier) Ensure(ctx context.Context) error {
	if _, err := v.runner.LookPath("brew"); err != nil {
		return ErrBrewMissing
	}
	log.Debug("dependency present", "name", "Homebrew")

	for _, dep := range []Dependency{MacFUSE(), NTFS3G()} {
		if dep.Check(ctx, v.runner) {
			log.Debug("dependency present", "name", dep.Name)
			continue
		}

		fmt.Fprintf(v.out, "%s is not installed, installing via Homebrew...\n", dep.Name)
		if err := v.runner.RunInteractive(ctx, "brew", dep.InstallArgs...); err != nil {
			return fmt.Errorf("install %s: %w", dep.Name, err)
		}
		log.Info("dependency installed", "name", dep.Name)

		if dep.PostInstall != "" {
			if err := prompt.Ack(ctx, v.in, v.out, dep.PostInstall); err != nil {
				return fmt.Errorf("confirm %s post-install step: %w", dep.Name, err)
			}
		}
	}

	return nil
}
