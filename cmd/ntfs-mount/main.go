package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/kriansa/ntfs-mount/internal/app"
	"github.com/kriansa/ntfs-mount/internal/config"
	"github.com/kriansa/ntfs-mount/internal/deps"
	"github.com/kriansa/ntfs-mount/internal/diskutil"
	"github.com/kriansa/ntfs-mount/internal/execx"
	"github.com/kriansa/ntfs-mount/internal/log"
	"github.com/kriansa/ntfs-mount/internal/mount"
	"github.com/kriansa/ntfs-mount/internal/prompt"
	"github.com/kriansa/ntfs-mount/internal/tui"
	"github.com/kriansa/ntfs-mount/internal/version"
)

func main() {
	cmd := &cli.Command{
		Name:  "ntfs-mount",
		Usage: "Mount external NTFS volumes read/write via macFUSE and ntfs-3g",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file path",
				Value:   config.DefaultPath(),
			},
			&cli.StringFlag{
				Name:    "volumes-root",
				Aliases: []string{"r"},
				Usage:   "Base directory for mount points",
			},
			&cli.StringFlag{
				Name:    "device",
				Aliases: []string{"d"},
				Usage:   "Mount this device identifier without prompting (e.g. disk3s1)",
			},
			&cli.StringFlag{
				Name:  "scanner",
				Usage: "Disk scanning backend: text or plist",
			},
			&cli.StringFlag{
				Name:    "picker",
				Aliases: []string{"p"},
				Usage:   "Volume selection interface: menu or tui",
			},
			&cli.StringFlag{
				Name:    "mount-options",
				Aliases: []string{"o"},
				Usage:   "Option string passed to the NTFS driver",
			},
			&cli.BoolFlag{
				Name:  "no-open",
				Usage: "Do not open the mounted volume in Finder",
			},
			&cli.BoolFlag{
				Name:  "no-sudo",
				Usage: "Run mkdir and the driver without sudo",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"V"},
				Usage:   "Print version information",
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		reportFailure(err)
		os.Exit(1)
	}
}

// reportFailure prints the final message for an aborted run. Expected
// negative outcomes keep a plain tone; everything else is an error.
func reportFailure(err error) {
	switch {
	case errors.Is(err, diskutil.ErrNoVolumes):
		fmt.Fprintln(os.Stderr, "No NTFS partitions found on external disks. Connect the drive and run again.")
	case errors.Is(err, tui.ErrCanceled), errors.Is(err, prompt.ErrInputClosed), errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "Aborted.")
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	// Handle version flag
	if cmd.Bool("version") {
		fmt.Println(version.String())
		return nil
	}

	// Setup logging
	log.Setup(cmd.Bool("verbose"))

	// Load config file
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Merge CLI flags (CLI takes precedence)
	cfg.Merge(
		cmd.String("volumes-root"),
		"",
		cmd.String("mount-options"),
		cmd.String("scanner"),
		cmd.String("picker"),
	)

	// Apply defaults
	cfg.ApplyDefaults()

	if cmd.Bool("no-open") {
		off := false
		cfg.OpenAfterMount = &off
	}
	if cmd.Bool("no-sudo") {
		off := false
		cfg.UseSudo = &off
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log.Debug("starting",
		"volumes_root", cfg.VolumesRoot,
		"scanner", cfg.Scanner,
		"picker", cfg.Picker,
		"driver", cfg.Driver,
	)

	// Create components
	runner := execx.NewOSRunner()

	scanner, err := diskutil.NewScanner(cfg.Scanner, runner)
	if err != nil {
		return err
	}

	var picker app.Picker
	switch cfg.Picker {
	case "tui":
		picker = tui.NewPicker()
	default:
		picker = prompt.NewMenu(os.Stdin, os.Stdout)
	}

	mounter := mount.NewNTFS3G(runner, mount.Options{
		VolumesRoot:  cfg.VolumesRoot,
		Driver:       cfg.Driver,
		MountOptions: cfg.MountOptions,
		UseSudo:      *cfg.UseSudo,
	})

	verifier := deps.NewVerifier(runner, os.Stdin, os.Stdout)

	a := app.New(
		verifier,
		scanner,
		picker,
		mounter,
		os.Stdout,
		cmd.String("device"),
		*cfg.OpenAfterMount,
	)

	return a.Run(ctx)
}
