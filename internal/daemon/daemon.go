package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"snapname/internal/config"
	"snapname/internal/ipc"
	"snapname/internal/logging"
	"snapname/internal/matcher"
	"snapname/internal/notify"
	"snapname/internal/pipeline"
	"snapname/internal/watch"
	"snapname/internal/workers"
)

// LockFileName is the single-instance lock, kept in the log directory.
const LockFileName = "snapname.lock"

// counters tracks pipeline activity in memory. Nothing here is persisted.
type counters struct {
	eventsSeen    atomic.Uint64
	eventsMatched atomic.Uint64
	renamed       atomic.Uint64
	failed        atomic.Uint64
}

func (c *counters) snapshot() ipc.Counters {
	return ipc.Counters{
		EventsSeen:    c.eventsSeen.Load(),
		EventsMatched: c.eventsMatched.Load(),
		Renamed:       c.renamed.Load(),
		Failed:        c.failed.Load(),
	}
}

// Daemon owns the watch-to-rename loop for one directory.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	matcher   *matcher.Matcher
	processor *pipeline.Processor
	notifier  notify.Service
	watcher   watch.Watcher
	pool      *workers.Pool

	lock     *flock.Flock
	lockPath string

	running   atomic.Bool
	startedAt time.Time
	counters  counters

	stopRequested chan struct{}
	stopOnce      sync.Once
}

// New assembles a daemon from its already-constructed parts.
func New(cfg *config.Config, watcher watch.Watcher, pool *workers.Pool, processor *pipeline.Processor, m *matcher.Matcher, notifier notify.Service, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, LockFileName)
	return &Daemon{
		cfg:           cfg,
		logger:        logging.NewComponentLogger(logger, "daemon"),
		matcher:       m,
		processor:     processor,
		notifier:      notifier,
		watcher:       watcher,
		pool:          pool,
		lock:          flock.New(lockPath),
		lockPath:      lockPath,
		stopRequested: make(chan struct{}),
	}
}

// Start acquires the instance lock, launches the workers and the watcher,
// and begins dispatching events. It returns once everything is running.
func (d *Daemon) Start(ctx context.Context) error {
	locked, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring instance lock %s: %w", d.lockPath, err)
	}
	if !locked {
		return fmt.Errorf("another instance is already running (lock %s held)", d.lockPath)
	}

	d.pool.Start(ctx)

	if err := d.watcher.Start(ctx); err != nil {
		d.pool.Shutdown()
		d.lock.Unlock()
		return fmt.Errorf("starting watcher on %s: %w", d.cfg.Paths.WatchDir, err)
	}

	d.startedAt = time.Now()
	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String("watch_dir", d.cfg.Paths.WatchDir),
		logging.String("watcher", d.cfg.Watcher.Backend),
		logging.Int("workers", d.pool.Size()))

	go d.dispatch(ctx)
	return nil
}

// Stop shuts down abruptly: the watcher closes, the pool stops picking up
// work, and anything queued or in flight is abandoned. Untouched files are
// simply rediscovered on the next start.
func (d *Daemon) Stop() {
	if !d.running.CompareAndSwap(true, false) {
		return
	}
	d.watcher.Close()
	d.pool.Shutdown()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("releasing instance lock failed", logging.Error(err))
	}
	d.logger.Info("daemon stopped", logging.Any("counters", d.counters.snapshot()))
}

// RequestStop signals shutdown without blocking. The owning process watches
// StopRequested and performs the actual Stop.
func (d *Daemon) RequestStop() {
	d.stopOnce.Do(func() {
		close(d.stopRequested)
	})
}

// StopRequested is closed when a stop has been asked for over IPC.
func (d *Daemon) StopRequested() <-chan struct{} {
	return d.stopRequested
}

// Status snapshots the daemon state for the control socket.
func (d *Daemon) Status() ipc.StatusReply {
	return ipc.StatusReply{
		Running:        d.running.Load(),
		PID:            os.Getpid(),
		StartedAt:      d.startedAt,
		WatchDir:       d.cfg.Paths.WatchDir,
		WatcherBackend: d.cfg.Watcher.Backend,
		Model:          d.cfg.Ollama.Model,
		Workers:        d.pool.Size(),
		LockPath:       d.lockPath,
		Counters:       d.counters.snapshot(),
	}
}

// TestNotification sends a probe through the configured backend.
func (d *Daemon) TestNotification(ctx context.Context) error {
	if d.notifier == nil {
		return nil
	}
	return d.notifier.Test(ctx)
}
