package stability

import (
	"context"
	"errors"
	"os"
	"time"
)

// ErrNotStable indicates the file never reached a stable non-zero size
// within the configured timeout.
var ErrNotStable = errors.New("file size did not stabilize")

// Waiter polls a file's size until two consecutive observations agree.
type Waiter struct {
	initialDelay time.Duration
	pollInterval time.Duration
	timeout      time.Duration

	sleeper func(context.Context, time.Duration) error
	statFn  func(string) (os.FileInfo, error)
}

// Option customizes the waiter.
type Option func(*Waiter)

// WithSleeper overrides how waits are performed (useful for tests).
func WithSleeper(sleeper func(context.Context, time.Duration) error) Option {
	return func(w *Waiter) {
		if sleeper != nil {
			w.sleeper = sleeper
		}
	}
}

// WithStat overrides the stat call (useful for tests).
func WithStat(statFn func(string) (os.FileInfo, error)) Option {
	return func(w *Waiter) {
		if statFn != nil {
			w.statFn = statFn
		}
	}
}

// NewWaiter constructs a waiter. initialDelay is slept once before polling
// begins; pollInterval separates size observations; timeout bounds the whole
// polling phase.
func NewWaiter(initialDelay, pollInterval, timeout time.Duration, opts ...Option) *Waiter {
	w := &Waiter{
		initialDelay: initialDelay,
		pollInterval: pollInterval,
		timeout:      timeout,
		sleeper:      sleepContext,
		statFn:       os.Stat,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wait blocks until path has been observed at the same non-zero size on two
// consecutive polls, the timeout elapses (ErrNotStable), or ctx is canceled.
// Stat failures are treated as transient and retried within the loop: a file
// that is briefly locked or not yet visible keeps polling until the deadline.
func (w *Waiter) Wait(ctx context.Context, path string) error {
	if w.initialDelay > 0 {
		if err := w.sleeper(ctx, w.initialDelay); err != nil {
			return err
		}
	}

	deadline := time.Now().Add(w.timeout)
	lastSize := int64(-1)

	for time.Now().Before(deadline) {
		info, err := w.statFn(path)
		if err == nil {
			size := info.Size()
			if size == lastSize && size > 0 {
				return nil
			}
			lastSize = size
		} else {
			lastSize = -1
		}

		if err := w.sleeper(ctx, w.pollInterval); err != nil {
			return err
		}
	}

	return ErrNotStable
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
