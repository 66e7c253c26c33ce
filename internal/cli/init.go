package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/crypto"
	"github.com/cbwinslow/lazylocker/pkg/locker"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new locker",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := lockerDir()
			if err != nil {
				return err
			}
			passphrase, err := resolvePassphrase()
			if err != nil {
				return err
			}

			key, err := locker.Init(dir, passphrase, force)
			if err != nil {
				if errors.Is(err, core.ErrLockerExists) {
					return fmt.Errorf("locker already exists at %s (use --force to overwrite)", dir)
				}
				return err
			}
			crypto.Zero(key)

			fmt.Printf("Initialized locker at %s\n", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing locker")
	return cmd
}
