// Package preflight verifies external prerequisites before the daemon
// starts: the Ollama endpoint must answer and the watch directory must be
// readable. Failures are reported, not retried.
package preflight
