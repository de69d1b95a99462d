package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Ask the daemon to shut down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := dialDaemon()
			if err != nil {
				return err
			}
			defer client.Close()

			reply, err := client.Stop()
			if err != nil {
				return fmt.Errorf("sending stop request: %w", err)
			}
			if !reply.Stopping {
				return fmt.Errorf("daemon declined the stop request")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "stop requested")
			return nil
		},
	}
}

func newTestNotifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a probe notification through the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := dialDaemon()
			if err != nil {
				return err
			}
			defer client.Close()

			reply, err := client.TestNotification()
			if err != nil {
				return fmt.Errorf("sending test notification: %w", err)
			}
			if !reply.Sent {
				return fmt.Errorf("notification failed: %s", reply.Error)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "notification sent")
			return nil
		},
	}
}
