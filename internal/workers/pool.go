package workers

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Submit after Shutdown.
var ErrPoolClosed = errors.New("worker pool closed")

// Task is a unit of work executed by one pool worker.
type Task func(ctx context.Context)

// Pool runs tasks on a fixed number of goroutines fed by a bounded queue.
// Shutdown is abrupt: queued and in-flight tasks are abandoned rather than
// drained, matching a daemon that treats every task as re-discoverable.
type Pool struct {
	tasks chan Task
	stop  chan struct{}
	count int

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPool sizes a pool with count workers and a queue of queueSize slots.
// Non-positive values fall back to a single worker and an unbuffered queue.
func NewPool(count, queueSize int) *Pool {
	if count < 1 {
		count = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Pool{
		tasks: make(chan Task, queueSize),
		stop:  make(chan struct{}),
		count: count,
	}
}

// Start launches the workers. Subsequent calls are no-ops.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		for i := 0; i < p.count; i++ {
			go p.work(ctx)
		}
	})
}

// Submit enqueues a task, blocking while the queue is full. It fails only
// when the pool is shut down or ctx is canceled.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	if task == nil {
		return nil
	}
	select {
	case <-p.stop:
		return ErrPoolClosed
	default:
	}
	select {
	case <-p.stop:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	case p.tasks <- task:
		return nil
	}
}

// Shutdown signals the workers to stop and returns immediately. It does not
// wait for in-flight tasks.
func (p *Pool) Shutdown() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}

// Size reports the configured worker count.
func (p *Pool) Size() int {
	return p.count
}

func (p *Pool) work(ctx context.Context) {
	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case task := <-p.tasks:
			task(ctx)
		}
	}
}
