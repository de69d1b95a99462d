package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"snapname/internal/watch"
)

func collectOne(t *testing.T, events <-chan watch.Event) watch.Event {
	t.Helper()
	select {
	case event, ok := <-events:
		if !ok {
			t.Fatal("event channel closed early")
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return watch.Event{}
}

func TestPollWatcherReportsNewFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "already-there.png")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing seed file: %v", err)
	}

	w := watch.NewPollWatcher(dir, watch.WithInterval(5*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer w.Close()

	created := filepath.Join(dir, "Screenshot 2024-01-15.png")
	if err := os.WriteFile(created, []byte("y"), 0o644); err != nil {
		t.Fatalf("writing new file: %v", err)
	}

	event := collectOne(t, w.Events())
	if event.Path != created {
		t.Fatalf("event path = %q, want %q", event.Path, created)
	}
	if event.Kind != watch.Created {
		t.Fatalf("event kind = %v, want Created", event.Kind)
	}
}

func TestPollWatcherIgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()

	w := watch.NewPollWatcher(dir, watch.WithInterval(5*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer w.Close()

	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	nested := filepath.Join(dir, "nested", "Screenshot 2024-01-15.png")
	if err := os.WriteFile(nested, []byte("z"), 0o644); err != nil {
		t.Fatalf("writing nested file: %v", err)
	}
	direct := filepath.Join(dir, "Screenshot 2024-01-16.png")
	if err := os.WriteFile(direct, []byte("z"), 0o644); err != nil {
		t.Fatalf("writing direct file: %v", err)
	}

	event := collectOne(t, w.Events())
	if event.Path != direct {
		t.Fatalf("event path = %q, want only the direct child %q", event.Path, direct)
	}
}

func TestPollWatcherReportsMovedInFiles(t *testing.T) {
	outside := t.TempDir()
	dir := t.TempDir()

	staged := filepath.Join(outside, "staged.png")
	if err := os.WriteFile(staged, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing staged file: %v", err)
	}

	w := watch.NewPollWatcher(dir, watch.WithInterval(5*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer w.Close()

	moved := filepath.Join(dir, "Screenshot 2024-01-17.png")
	if err := os.Rename(staged, moved); err != nil {
		t.Fatalf("moving file in: %v", err)
	}

	event := collectOne(t, w.Events())
	if event.Path != moved {
		t.Fatalf("event path = %q, want %q", event.Path, moved)
	}
}

func TestPollWatcherStartFailsOnMissingDirectory(t *testing.T) {
	w := watch.NewPollWatcher(filepath.Join(t.TempDir(), "missing"))
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestCloseClosesEventChannel(t *testing.T) {
	w := watch.NewPollWatcher(t.TempDir(), watch.WithInterval(5*time.Millisecond))
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatal("expected closed channel, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("event channel not closed after Close")
	}
}

func TestNewSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	poll, err := watch.New("poll", dir)
	if err != nil {
		t.Fatalf("New(poll) returned error: %v", err)
	}
	if _, ok := poll.(*watch.PollWatcher); !ok {
		t.Fatalf("New(poll) returned %T", poll)
	}

	native, err := watch.New("fsnotify", dir)
	if err != nil {
		t.Fatalf("New(fsnotify) returned error: %v", err)
	}
	if _, ok := native.(*watch.FSNotifyWatcher); !ok {
		t.Fatalf("New(fsnotify) returned %T", native)
	}
	native.Close()
}
