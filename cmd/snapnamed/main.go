// Command snapnamed is the screenshot-renaming daemon. It watches one
// directory, names new screenshots with a local vision model, and renames
// them in place. Control it with the snapname CLI over the Unix socket.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"snapname/internal/config"
	"snapname/internal/daemon"
	"snapname/internal/ipc"
	"snapname/internal/logging"
	"snapname/internal/matcher"
	"snapname/internal/notify"
	"snapname/internal/pipeline"
	"snapname/internal/preflight"
	"snapname/internal/services/ollama"
	"snapname/internal/stability"
	"snapname/internal/watch"
	"snapname/internal/workers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snapnamed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	cfg, resolvedPath, found, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logFile, err := logging.OpenLogFile(filepath.Join(cfg.Paths.LogDir, "snapnamed.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: io.MultiWriter(os.Stdout, logFile),
	})
	if err != nil {
		return err
	}

	if found {
		logger.Info("configuration loaded", logging.String("path", resolvedPath))
	} else {
		logger.Info("no configuration file found, using defaults", logging.String("path", resolvedPath))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := ollama.NewClient(ollama.Config{
		BaseURL:        cfg.Ollama.BaseURL,
		Model:          cfg.Ollama.Model,
		TimeoutSeconds: cfg.Ollama.TimeoutSeconds,
	})

	results, err := preflight.Run(ctx, cfg, client)
	if err != nil {
		return fmt.Errorf("running preflight checks: %w", err)
	}
	for _, result := range results {
		if result.Passed {
			logger.Info("preflight check passed",
				logging.String("check", result.Name), logging.String("detail", result.Detail))
			continue
		}
		logger.Error("preflight check failed",
			logging.String("check", result.Name), logging.String("detail", result.Detail))
	}
	if !preflight.AllPassed(results) {
		return errors.New("preflight checks failed, see log for details")
	}

	m, err := matcher.New(cfg.Match.Prefix, cfg.Match.Extension)
	if err != nil {
		return fmt.Errorf("building filename matcher: %w", err)
	}

	watcher, err := watch.New(cfg.Watcher.Backend, cfg.Paths.WatchDir, watch.WithInterval(cfg.WatchPollInterval()))
	if err != nil {
		return fmt.Errorf("building %s watcher: %w", cfg.Watcher.Backend, err)
	}

	waiter := stability.NewWaiter(cfg.StabilityInitialDelay(), cfg.StabilityPollInterval(), cfg.StabilityTimeout())
	notifier := notify.NewService(cfg)
	processor := pipeline.NewProcessor(waiter, client, notifier, cfg.Ollama.Prompt, logger)
	pool := workers.NewPool(cfg.Workers.Count, cfg.Workers.QueueSize)

	d := daemon.New(cfg, watcher, pool, processor, m, notifier, logger)
	if err := d.Start(ctx); err != nil {
		return err
	}

	server, err := ipc.NewServer(filepath.Join(cfg.Paths.LogDir, ipc.SocketFileName), d, logger)
	if err != nil {
		d.Stop()
		return err
	}
	go func() {
		if err := server.Serve(); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Error("control socket failed", logging.Error(err))
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("signal received, shutting down")
	case <-d.StopRequested():
		logger.Info("stop requested over control socket")
	}

	server.Close()
	d.Stop()
	return nil
}
