// Package main is the entry point for lazylocker, a local,
// passphrase-protected secrets vault with an interactive editor, a
// scriptable CLI, and a background agent for short-lived sessions.
package main

import (
	"fmt"
	"os"

	"github.com/cbwinslow/lazylocker/internal/app"
	"github.com/cbwinslow/lazylocker/internal/cli"
)

func main() {
	root := cli.NewRootCmd(app.Run)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
