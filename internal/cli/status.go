package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cbwinslow/lazylocker/pkg/agent"
	"github.com/cbwinslow/lazylocker/pkg/ui/highlight"
	"github.com/cbwinslow/lazylocker/pkg/ui/progress"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the background agent is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := lockerDir()
			if err != nil {
				return err
			}

			eh := highlight.NewErrorHighlighter()

			client := agent.NewClient(dir)
			ping, err := client.Ping()
			if err != nil {
				fmt.Println(eh.Highlight("Agent: not running"))
				return nil
			}

			total := agent.DefaultTTL
			if cfg != nil {
				total = cfg.AgentTTL(agent.DefaultTTL)
			}
			remaining := time.Duration(ping.TTLRemainingSecs * float64(time.Second)).Round(time.Second)
			bar := progress.NewTTLBarRemaining(total, remaining)
			fmt.Println(eh.Highlight("Agent: running"))
			fmt.Println(bar.View())
			return nil
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Terminate the running agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := lockerDir()
			if err != nil {
				return err
			}

			eh := highlight.NewErrorHighlighter()

			client := agent.NewClient(dir)
			if err := client.Shutdown(); err != nil {
				fmt.Println(eh.Highlight("Agent: not running"))
				return nil
			}

			agent.WaitForSocketGone(dir, 5*time.Second)
			fmt.Println(eh.Highlight("Agent stopped"))
			return nil
		},
	}
}
