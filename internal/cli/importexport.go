package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/crypto"
	"github.com/cbwinslow/lazylocker/pkg/envfile"
	"github.com/cbwinslow/lazylocker/pkg/jsonfile"
	"github.com/cbwinslow/lazylocker/pkg/ui/highlight"
)

func newImportCmd() *cobra.Command {
	var stdin bool
	var format string
	var expires int
	var preview bool

	cmd := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Bulk-add secrets from a .env or JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader
			switch {
			case stdin:
				r = bufio.NewReader(os.Stdin)
			case len(args) == 1:
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("import: open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			default:
				return fmt.Errorf("%w: provide FILE or --stdin", core.ErrBadArgument)
			}

			raw, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("import: read input: %w", err)
			}

			var entries []envfile.Entry
			switch format {
			case "", "env":
				entries, err = envfile.Parse(bytes.NewReader(raw))
			case "json":
				entries, err = jsonfile.Parse(bytes.NewReader(raw))
			default:
				return fmt.Errorf("%w: unknown --format %q (want env or json)", core.ErrBadArgument, format)
			}
			if err != nil {
				return err
			}

			if preview {
				if err := printImportPreview(raw, format); err != nil {
					return err
				}
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

			for _, e := range entries {
				if err := st.Add(e.Name, e.Value, expires, key); err != nil {
					return fmt.Errorf("import: add %q: %w", e.Name, err)
				}
			}

			fmt.Printf("Imported %d secret(s)\n", len(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdin, "stdin", false, "read the file from stdin")
	cmd.Flags().StringVar(&format, "format", "env", "input format: env or json")
	cmd.Flags().IntVar(&expires, "expires", 0, "expire imported secrets after N days (0 = permanent)")
	cmd.Flags().BoolVar(&preview, "preview", false, "print a syntax-highlighted preview before importing")
	return cmd
}

// printImportPreview renders the raw import source with chroma-backed
// syntax highlighting so a reviewer can sanity-check it before it is
// committed to the store, matching the format the caller selected.
func printImportPreview(raw []byte, format string) error {
	h := highlight.NewHighlighter()

	var highlighted string
	var err error
	switch format {
	case "json":
		highlighted, err = h.HighlightJSON(string(raw))
	default:
		highlighted, err = h.HighlightEnv(string(raw))
	}
	if err != nil {
		return fmt.Errorf("import: preview: %w", err)
	}

	fmt.Println("--- preview ---")
	fmt.Println(highlighted)
	fmt.Println("--- end preview ---")
	return nil
}

func newExportCmd() *cobra.Command {
	var asJSON, asEnv bool
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print all non-expired secrets",
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
			values := make(map[string]string)
			for _, secret := range st.List() {
				if secret.IsExpired(now) {
					continue
				}
				value, err := st.DecryptOne(secret.Name, key)
				if err != nil {
					return err
				}
				values[secret.Name] = value
			}

			outputFormat := formatFromFlags(asJSON, asEnv)
			if format == "shell" {
				outputFormat = core.FormatShell
			}
			return renderNamedValues(values, outputFormat)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as a JSON object")
	cmd.Flags().BoolVar(&asEnv, "env", false, "print as NAME=value lines")
	cmd.Flags().StringVar(&format, "format", "", "set to shell to print export NAME='value' lines")
	return cmd
}
