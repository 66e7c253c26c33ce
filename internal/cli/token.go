package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/crypto"
	"github.com/cbwinslow/lazylocker/pkg/locker"
	"github.com/cbwinslow/lazylocker/pkg/store"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage individual secrets",
	}
	cmd.AddCommand(newTokenAddCmd())
	cmd.AddCommand(newTokenGetCmd())
	cmd.AddCommand(newTokenListCmd())
	cmd.AddCommand(newTokenRemoveCmd())
	return cmd
}

// openStore derives the master key for the locker at dir and loads
// its store. The key is returned alongside the store since most
// callers need it again to save.
func openStore(dir string) (*store.SecretsStore, []byte, error) {
	passphrase, err := resolvePassphrase()
	if err != nil {
		return nil, nil, err
	}
	key, err := locker.Open(dir, passphrase)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Load(dir, key)
	if err != nil {
		crypto.Zero(key)
		return nil, nil, err
	}
	return st, key, nil
}

func newTokenAddCmd() *cobra.Command {
	var stdin bool
	var expires int

	cmd := &cobra.Command{
		Use:   "add <NAME> [VALUE]",
		Short: "Add or replace a secret",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			var value string
			switch {
			case stdin:
				data, err := io.ReadAll(bufio.NewReader(os.Stdin))
				if err != nil {
					return fmt.Errorf("reading value from stdin: %w", err)
				}
				value = strings.TrimRight(string(data), "\n")
			case len(args) == 2:
				value = args[1]
			default:
				return fmt.Errorf("%w: provide VALUE or --stdin", core.ErrBadArgument)
			}

			dir, err := lockerDir()
			if err != nil {
				return err
			}
			st, key, err := openStore(dir)
			if err != nil {
				return err
			}
			defer crypto.Zero(key)

			if err := st.Add(name, value, expires, key); err != nil {
				return err
			}

			fmt.Printf("Stored secret %q\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdin, "stdin", false, "read the value from stdin")
	cmd.Flags().IntVar(&expires, "expires", 0, "expire after N days (0 = permanent)")
	return cmd
}

func newTokenGetCmd() *cobra.Command {
	var asJSON, asEnv bool

	cmd := &cobra.Command{
		Use:   "get <NAME>",
		Short: "Print one secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			dir, err := lockerDir()
			if err != nil {
				return err
			}

			st, key, err := openStore(dir)
			if err != nil {
				return err
			}
			defer crypto.Zero(key)

			secret, ok := st.Get(name)
			if !ok {
				return fmt.Errorf("%w: %s", core.ErrNotFound, name)
			}
			if secret.IsExpired(time.Now()) {
				return fmt.Errorf("%w: %s", core.ErrExpired, name)
			}

			value, err := st.DecryptOne(name, key)
			if err != nil {
				return err
			}

			return renderOne(name, value, formatFromFlags(asJSON, asEnv))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as a JSON object")
	cmd.Flags().BoolVar(&asEnv, "env", false, "print as NAME=value")
	return cmd
}

func newTokenListCmd() *cobra.Command {
	var asJSON, asEnv bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List secret names",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := lockerDir()
			if err != nil {
				return err
			}
			st, key, err := openStore(dir)
			if err != nil {
				return err
			}
			defer crypto.Zero(key)

			now := time.Now()
			secrets := st.List()

			if asEnv {
				values, err := st.DecryptAll(key)
				if err != nil {
					return err
				}
				return renderNamedValues(values, core.FormatEnv)
			}

			if asJSON {
				out := make(map[string]any, len(secrets))
				for _, s := range secrets {
					out[s.Name] = map[string]any{"expired": s.IsExpired(now)}
				}
				return renderJSON(out)
			}

			for _, s := range secrets {
				marker := ""
				if s.IsExpired(now) {
					marker = " (expired)"
				}
				fmt.Printf("%s%s\n", s.Name, marker)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as a JSON object mapping each name to its expired flag")
	cmd.Flags().BoolVar(&asEnv, "env", false, "print names and decrypted values as NAME=value")
	return cmd
}

func newTokenRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <NAME>",
		Short: "Delete a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			dir, err := lockerDir()
			if err != nil {
				return err
			}
			st, key, err := openStore(dir)
			if err != nil {
				return err
			}
			defer crypto.Zero(key)

			if err := st.Remove(name, key); err != nil {
				return err
			}
			fmt.Printf("Removed secret %q\n", name)
			return nil
		},
	}
}
