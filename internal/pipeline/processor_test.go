package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"snapname/internal/pipeline"
	"snapname/internal/services/ollama"
	"snapname/internal/stability"
)

type fakeWaiter struct {
	err error
}

func (f fakeWaiter) Wait(context.Context, string) error { return f.err }

type fakeDescriber struct {
	description string
	err         error
	calls       atomic.Int32
}

func (f *fakeDescriber) Describe(context.Context, string, []byte) (string, error) {
	f.calls.Add(1)
	return f.description, f.err
}

type recordingNotifier struct {
	oldName string
	newName string
	err     error
	calls   int
}

func (r *recordingNotifier) NotifyRenamed(_ context.Context, oldName, newName string) error {
	r.calls++
	r.oldName = oldName
	r.newName = newName
	return r.err
}

func (r *recordingNotifier) Test(context.Context) error { return nil }

func writeScreenshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Screenshot 2024-01-15 at 10.30.00.png")
	if err := os.WriteFile(path, []byte("png bytes"), 0o644); err != nil {
		t.Fatalf("writing screenshot: %v", err)
	}
	return path
}

func TestProcessRenamesAndNotifies(t *testing.T) {
	source := writeScreenshot(t)
	describer := &fakeDescriber{description: "A red apple on a table"}
	notifier := &recordingNotifier{}

	p := pipeline.NewProcessor(fakeWaiter{}, describer, notifier, "prompt", nil)
	result, err := p.Process(context.Background(), source)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	want := filepath.Join(filepath.Dir(source), "red_apple_table.png")
	if result.FinalPath != want {
		t.Fatalf("final path = %q, want %q", result.FinalPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if notifier.calls != 1 {
		t.Fatalf("notifier called %d times, want 1", notifier.calls)
	}
	if notifier.oldName != filepath.Base(source) || notifier.newName != "red_apple_table.png" {
		t.Fatalf("notified %q -> %q", notifier.oldName, notifier.newName)
	}
}

func TestProcessSkipsUnstableFile(t *testing.T) {
	source := writeScreenshot(t)
	describer := &fakeDescriber{description: "anything"}

	p := pipeline.NewProcessor(fakeWaiter{err: stability.ErrNotStable}, describer, &recordingNotifier{}, "prompt", nil)
	_, err := p.Process(context.Background(), source)
	if !errors.Is(err, pipeline.ErrFileNotStable) {
		t.Fatalf("expected ErrFileNotStable, got %v", err)
	}
	if describer.calls.Load() != 0 {
		t.Fatal("describer called for unstable file")
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("source should be untouched: %v", err)
	}
}

func TestProcessUsesFallbackWhenReadFails(t *testing.T) {
	source := writeScreenshot(t)
	describer := &fakeDescriber{description: "ignored"}

	p := pipeline.NewProcessor(fakeWaiter{}, describer, &recordingNotifier{}, "prompt", nil,
		pipeline.WithReadFile(func(string) ([]byte, error) {
			return nil, errors.New("permission denied")
		}))

	result, err := p.Process(context.Background(), source)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if got := filepath.Base(result.FinalPath); got != "unknown_screenshot.png" {
		t.Fatalf("final basename = %q, want unknown_screenshot.png", got)
	}
	if describer.calls.Load() != 0 {
		t.Fatal("describer called despite read failure")
	}
}

func TestProcessAbortsOnInferenceFailure(t *testing.T) {
	source := writeScreenshot(t)
	describer := &fakeDescriber{err: ollama.ErrUnavailable}
	notifier := &recordingNotifier{}

	p := pipeline.NewProcessor(fakeWaiter{}, describer, notifier, "prompt", nil)
	_, err := p.Process(context.Background(), source)
	if !errors.Is(err, pipeline.ErrInferenceUnavailable) {
		t.Fatalf("expected ErrInferenceUnavailable, got %v", err)
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("source should be untouched: %v", err)
	}
	if notifier.calls != 0 {
		t.Fatal("notifier called for failed candidate")
	}
}

func TestProcessIgnoresNotificationFailure(t *testing.T) {
	source := writeScreenshot(t)
	describer := &fakeDescriber{description: "blue terminal window"}
	notifier := &recordingNotifier{err: errors.New("ntfy down")}

	p := pipeline.NewProcessor(fakeWaiter{}, describer, notifier, "prompt", nil)
	result, err := p.Process(context.Background(), source)
	if err != nil {
		t.Fatalf("notification failure must not fail processing: %v", err)
	}
	if got := filepath.Base(result.FinalPath); got != "blue_terminal_window.png" {
		t.Fatalf("final basename = %q", got)
	}
}
