package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"snapname/internal/config"
	"snapname/internal/ipc"
)

var (
	flagConfig string
	flagSocket string
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "snapname",
		Short:         "Control the screenshot-renaming daemon",
		Long:          "snapname inspects and controls snapnamed, the daemon that names new screenshots with a local vision model.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the configuration file")
	cmd.PersistentFlags().StringVar(&flagSocket, "socket", "", "daemon control socket (defaults to the one under log_dir)")

	cmd.AddCommand(
		newStatusCommand(),
		newStopCommand(),
		newTestNotifyCommand(),
		newConfigCommand(),
	)
	return cmd
}

func resolveSocketPath() (string, error) {
	if flagSocket != "" {
		return config.ExpandPath(flagSocket)
	}
	cfg, _, _, err := config.Load(flagConfig)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.Paths.LogDir, ipc.SocketFileName), nil
}

func dialDaemon() (*ipc.Client, error) {
	socketPath, err := resolveSocketPath()
	if err != nil {
		return nil, err
	}
	client, err := ipc.Dial(socketPath)
	if err != nil {
		return nil, fmt.Errorf("daemon not reachable (is snapnamed running?): %w", err)
	}
	return client, nil
}
