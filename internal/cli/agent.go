package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cbwinslow/lazylocker/pkg/agent"
	"github.com/cbwinslow/lazylocker/pkg/core"
	"github.com/cbwinslow/lazylocker/pkg/logging"
)

// newAgentCmd wires the internal `agent --key HEX --store PATH`
// subcommand that agent.StartDaemon re-execs into. It is not meant
// to be invoked directly by a human; the editor and CLI spawn it as
// a detached child.
func newAgentCmd() *cobra.Command {
	var keyHex, storeDir string

	cmd := &cobra.Command{
		Use:    "agent",
		Short:  "Run the background agent loop (internal)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyHex == "" || storeDir == "" {
				return fmt.Errorf("%w: --key and --store are required", core.ErrBadArgument)
			}
			key, err := hex.DecodeString(keyHex)
			if err != nil {
				return fmt.Errorf("agent: decode --key: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logging.New().WithField("component", "agent")
			socketPath := agent.SocketPath(storeDir)
			ttl := agent.DefaultTTL
			if cfg != nil {
				ttl = cfg.AgentTTL(agent.DefaultTTL)
			}
			return agent.Serve(ctx, key, storeDir, socketPath, ttl, log)
		},
	}

	cmd.Flags().StringVar(&keyHex, "key", "", "hex-encoded master key")
	cmd.Flags().StringVar(&storeDir, "store", "", "locker directory")
	return cmd
}
