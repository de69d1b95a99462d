package stability_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"testing"
	"time"

	"snapname/internal/stability"
)

type fakeInfo struct {
	size int64
}

func (f fakeInfo) Name() string       { return "Screenshot 2024-01-15.png" }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() any           { return nil }

// instantSleeper advances nothing; the waiter's deadline is real time, so
// tests use generous timeouts and bounded stat sequences.
func instantSleeper(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func statSequence(sizes []int64) func(string) (os.FileInfo, error) {
	i := 0
	return func(string) (os.FileInfo, error) {
		size := sizes[len(sizes)-1]
		if i < len(sizes) {
			size = sizes[i]
			i++
		}
		if size < 0 {
			return nil, fs.ErrNotExist
		}
		return fakeInfo{size: size}, nil
	}
}

func TestWaitSucceedsWhenSizeRepeats(t *testing.T) {
	w := stability.NewWaiter(0, time.Millisecond, time.Second,
		stability.WithSleeper(instantSleeper),
		stability.WithStat(statSequence([]int64{100, 250, 250})))

	if err := w.Wait(context.Background(), "any.png"); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
}

func TestWaitIgnoresZeroSize(t *testing.T) {
	// Two consecutive zero observations must not count as stable.
	w := stability.NewWaiter(0, time.Millisecond, 300*time.Millisecond,
		stability.WithSleeper(instantSleeper),
		stability.WithStat(statSequence([]int64{0, 0, 0})))

	err := w.Wait(context.Background(), "any.png")
	if !errors.Is(err, stability.ErrNotStable) {
		t.Fatalf("expected ErrNotStable, got %v", err)
	}
}

func TestWaitTimesOutWhileGrowing(t *testing.T) {
	size := int64(0)
	grow := func(string) (os.FileInfo, error) {
		size += 100
		return fakeInfo{size: size}, nil
	}

	w := stability.NewWaiter(0, time.Millisecond, 200*time.Millisecond,
		stability.WithSleeper(instantSleeper),
		stability.WithStat(grow))

	err := w.Wait(context.Background(), "any.png")
	if !errors.Is(err, stability.ErrNotStable) {
		t.Fatalf("expected ErrNotStable, got %v", err)
	}
}

func TestWaitRecoversFromStatErrors(t *testing.T) {
	w := stability.NewWaiter(0, time.Millisecond, time.Second,
		stability.WithSleeper(instantSleeper),
		stability.WithStat(statSequence([]int64{-1, -1, 512, 512})))

	if err := w.Wait(context.Background(), "any.png"); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := stability.NewWaiter(time.Second, time.Second, 10*time.Second)
	err := w.Wait(ctx, "any.png")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
