// Package cli wires lazylocker's cobra command tree: a handful of
// non-interactive subcommands for automation, plus the bare root
// command, which launches the interactive editor. Passphrase
// resolution, locker-directory resolution, and output-format
// rendering are shared here so each subcommand stays a thin
// RunE wrapper around pkg/coordinator and pkg/store.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cbwinslow/lazylocker/pkg/config"
	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/locker"
)

var (
	flagPassphrase string
	flagStoreDir   string

	cfg *config.Config
)

// NewRootCmd builds the lazylocker command tree. editorFunc runs the
// interactive TUI when the root command is invoked with no
// subcommand; it is injected rather than imported directly so this
// package does not depend on internal/app.
func NewRootCmd(editorFunc func(dir string) error) *cobra.Command {
	root := &cobra.Command{
		Use:           "lazylocker",
		Short:         "A local, passphrase-protected secrets vault",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadFromDefaultPath()
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := lockerDir()
			if err != nil {
				return err
			}
			return editorFunc(dir)
		},
	}

	root.PersistentFlags().StringVar(&flagPassphrase, "passphrase", "", "vault passphrase (overrides LAZY_LOCKER_PASSPHRASE)")
	root.PersistentFlags().StringVar(&flagStoreDir, "store", "", "locker directory (overrides config.toml and the platform default)")

	root.AddCommand(newInitCmd())
	root.AddCommand(newTokenCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newAgentCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newStopCmd())

	return root
}

// lockerDir resolves the effective locker directory: --store wins,
// then config.toml's locker.dir, then the platform default.
func lockerDir() (string, error) {
	if flagStoreDir != "" {
		return flagStoreDir, nil
	}
	if cfg != nil {
		return cfg.LockerDir()
	}
	return locker.DefaultDir()
}

// resolvePassphrase returns the passphrase from --passphrase, then
// LAZY_LOCKER_PASSPHRASE, then an interactive hidden prompt. Per
// spec.md §4.5 rule 4, the flag wins over the environment variable.
func resolvePassphrase() (string, error) {
	if flagPassphrase != "" {
		return flagPassphrase, nil
	}
	if env := os.Getenv("LAZY_LOCKER_PASSPHRASE"); env != "" {
		return env, nil
	}

	fmt.Fprint(os.Stderr, "Passphrase: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// formatFromFlags maps the --json/--env boolean pair used throughout
// the CLI surface to a core.OutputFormat. --json wins if both are
// set; neither set means FormatHuman.
func formatFromFlags(jsonFlag, envFlag bool) core.OutputFormat {
	switch {
	case jsonFlag:
		return core.FormatJSON
	case envFlag:
		return core.FormatEnv
	default:
		return core.FormatHuman
	}
}
