// Package daemon ties the watcher, matcher, worker pool, and pipeline into
// one long-running process. It holds the single-instance lock and serves as
// the control surface behind the IPC socket.
package daemon
