// Package workers provides a fixed-size worker pool with a bounded queue.
// Submission blocks when the queue is full so the dispatcher naturally
// applies backpressure instead of dropping work.
package workers
