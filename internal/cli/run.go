package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/coordinator"
	"github.com/cbwinslow/lazylocker/pkg/runner"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "run -- <cmd> [args...]",
		Short:              "Run a command with secrets bound as environment variables",
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == "--" {
				args = args[1:]
			}
			if len(args) == 0 {
				return fmt.Errorf("%w: run requires a command", core.ErrBadArgument)
			}

			dir, err := lockerDir()
			if err != nil {
				return err
			}

			// resolvePassphrase is only invoked by RunWithAgent if no
			// agent answers, so a live session is never re-prompted.
			values, err := coordinator.RunWithAgent(dir, resolvePassphrase)
			if err != nil {
				return err
			}

			exitCode, err := runner.Run(context.Background(), args, values)
			if err != nil {
				return err
			}
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return nil
		},
	}

	return cmd
}
