package cmd

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopfetch/shopfetch/color"
	"github.com/shopfetch/shopfetch/icon"
	"github.com/shopfetch/shopfetch/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().Duration("delay", 2*time.Second, "How long to wait before replying")
}

var pingCmd = &cobra.Command{
	Use:   "ping [message]",
	Short: "Reply after a delay, as a liveness check",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reply := "pong"
		if len(args) == 1 {
			reply = args[0]
		}

		delay := lo.Must(cmd.Flags().GetDuration("delay"))
		if delay < 0 {
			return fmt.Errorf("negative delay %s", delay)
		}

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-timer.C:
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), reply)
		return nil
	},
}
