package watch

import "context"

// Kind classifies how a path appeared in the watched directory.
type Kind int

const (
	// Created means the file was newly written in place.
	Created Kind = iota
	// Moved means the file was renamed or moved into the directory.
	Moved
)

// String returns the lowercase event kind name.
func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Moved:
		return "moved"
	default:
		return "unknown"
	}
}

// Event is a single observation of a new file. Path is absolute. Events are
// ephemeral: consumed once by the dispatcher, never persisted.
type Event struct {
	Kind Kind
	Path string
}

// Watcher is a lazy, effectively-infinite source of Events for one
// directory. Implementations deliver events with best-effort latency and no
// ordering guarantee beyond "eventually observed after the OS-level change".
type Watcher interface {
	// Start begins observation. It returns once the event source is
	// established; events flow on Events until ctx is canceled or Close is
	// called, after which the channel is closed.
	Start(ctx context.Context) error
	// Events returns the event stream. The channel is closed on shutdown.
	Events() <-chan Event
	// Close releases the event source. Safe to call more than once.
	Close() error
}

// New builds the watcher selected by backend ("poll" or "fsnotify").
func New(backend, dir string, opts ...PollOption) (Watcher, error) {
	if backend == "fsnotify" {
		return NewFSNotifyWatcher(dir)
	}
	return NewPollWatcher(dir, opts...), nil
}
