package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPollInterval is the default directory snapshot cadence.
const DefaultPollInterval = time.Second

// PollWatcher detects new files by diffing directory snapshots on a fixed
// interval. It needs no OS notification support, which also makes it the
// safe default for network and FUSE filesystems.
type PollWatcher struct {
	dir      string
	interval time.Duration
	events   chan Event

	cancel    context.CancelFunc
	closeOnce sync.Once
	done      chan struct{}
}

// PollOption configures a PollWatcher.
type PollOption func(*PollWatcher)

// WithInterval overrides the snapshot interval.
func WithInterval(d time.Duration) PollOption {
	return func(w *PollWatcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// NewPollWatcher creates a polling watcher for dir.
func NewPollWatcher(dir string, opts ...PollOption) *PollWatcher {
	w := &PollWatcher{
		dir:      dir,
		interval: DefaultPollInterval,
		events:   make(chan Event),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start takes an initial snapshot and begins polling. Files already present
// at start are treated as seen, not reported.
func (w *PollWatcher) Start(ctx context.Context) error {
	seen, err := w.snapshot()
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	go w.run(runCtx, seen)
	return nil
}

// Events returns the event stream.
func (w *PollWatcher) Events() <-chan Event {
	return w.events
}

// Close stops polling and closes the event channel.
func (w *PollWatcher) Close() error {
	w.closeOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.done
			return
		}
		close(w.events)
	})
	return nil
}

func (w *PollWatcher) run(ctx context.Context, seen map[string]struct{}) {
	defer close(w.events)
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		current, err := w.snapshot()
		if err != nil {
			// Directory briefly unreadable; try again next tick.
			continue
		}

		for name := range current {
			if _, ok := seen[name]; ok {
				continue
			}
			event := Event{Kind: Created, Path: filepath.Join(w.dir, name)}
			select {
			case <-ctx.Done():
				return
			case w.events <- event:
			}
		}
		seen = current
	}
}

// snapshot lists regular-file basenames in the watched directory.
// Subdirectories and their contents are excluded: watching is non-recursive.
func (w *PollWatcher) snapshot() (map[string]struct{}, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, err
	}
	names := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names[entry.Name()] = struct{}{}
	}
	return names, nil
}
