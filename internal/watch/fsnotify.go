package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FSNotifyWatcher emits events from native OS change notifications. Create
// ops cover both fresh writes and moves into the directory (inotify reports
// IN_MOVED_TO as Create); Rename ops on a still-existing path are treated as
// moves in.
type FSNotifyWatcher struct {
	dir    string
	inner  *fsnotify.Watcher
	events chan Event

	cancel    context.CancelFunc
	closeOnce sync.Once
	done      chan struct{}
}

// NewFSNotifyWatcher creates a native watcher for dir.
func NewFSNotifyWatcher(dir string) (*FSNotifyWatcher, error) {
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FSNotifyWatcher{
		dir:    dir,
		inner:  inner,
		events: make(chan Event),
		done:   make(chan struct{}),
	}, nil
}

// Start registers the directory and begins translating events.
func (w *FSNotifyWatcher) Start(ctx context.Context) error {
	if err := w.inner.Add(w.dir); err != nil {
		w.inner.Close()
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	go w.run(runCtx)
	return nil
}

// Events returns the event stream.
func (w *FSNotifyWatcher) Events() <-chan Event {
	return w.events
}

// Close stops the native watcher and closes the event channel.
func (w *FSNotifyWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.inner.Close()
		if w.cancel != nil {
			w.cancel()
			<-w.done
			return
		}
		close(w.events)
	})
	return err
}

func (w *FSNotifyWatcher) run(ctx context.Context) {
	defer close(w.events)
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return

		case raw, ok := <-w.inner.Events:
			if !ok {
				return
			}
			event, keep := w.translate(raw)
			if !keep {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case w.events <- event:
			}

		case _, ok := <-w.inner.Errors:
			if !ok {
				return
			}
			// Errors are transient from the dispatcher's point of view;
			// the stream keeps going.
		}
	}
}

func (w *FSNotifyWatcher) translate(raw fsnotify.Event) (Event, bool) {
	// Only direct children of the watched directory count; fsnotify on a
	// single Add is already non-recursive, this guards symlinked oddities.
	if filepath.Dir(raw.Name) != w.dir {
		return Event{}, false
	}

	switch {
	case raw.Op.Has(fsnotify.Create):
		return Event{Kind: Created, Path: raw.Name}, true
	case raw.Op.Has(fsnotify.Rename):
		// Rename usually announces the old name vanishing. When the path
		// still exists it was renamed into place.
		if _, err := os.Lstat(raw.Name); err == nil {
			return Event{Kind: Moved, Path: raw.Name}, true
		}
	}
	return Event{}, false
}
