// Package notify delivers best-effort user notifications after successful
// renames, via the desktop notification mechanism or an ntfy topic.
// Delivery failures are returned so callers can log and discard them;
// notification is never pipeline-fatal.
package notify
