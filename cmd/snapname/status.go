package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"snapname/internal/ipc"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon state and rename counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := dialDaemon()
			if err != nil {
				return err
			}
			defer client.Close()

			status, err := client.Status()
			if err != nil {
				return fmt.Errorf("querying daemon status: %w", err)
			}

			renderStatus(cmd, status)
			return nil
		},
	}
}

func renderStatus(cmd *cobra.Command, status ipc.StatusReply) {
	writer := table.NewWriter()
	writer.SetOutputMirror(cmd.OutOrStdout())
	if isatty.IsTerminal(os.Stdout.Fd()) {
		writer.SetStyle(table.StyleRounded)
	} else {
		writer.SetStyle(table.StyleDefault)
	}

	running := "no"
	if status.Running {
		running = "yes"
	}

	writer.AppendRows([]table.Row{
		{"Running", running},
		{"PID", status.PID},
		{"Started", status.StartedAt.Local().Format(time.RFC1123)},
		{"Uptime", time.Since(status.StartedAt).Round(time.Second)},
		{"Watch directory", status.WatchDir},
		{"Watcher backend", status.WatcherBackend},
		{"Model", status.Model},
		{"Workers", status.Workers},
	})
	writer.AppendSeparator()
	writer.AppendRows([]table.Row{
		{"Events seen", status.Counters.EventsSeen},
		{"Screenshots matched", status.Counters.EventsMatched},
		{"Renamed", status.Counters.Renamed},
		{"Failed", status.Counters.Failed},
	})
	writer.Render()
}
