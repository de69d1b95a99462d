// Package watch observes a single directory (non-recursively) and emits an
// event stream for files created in or moved into it. Two backends exist:
// a polling snapshot differ and an fsnotify-based native watcher. Both hide
// behind the Watcher interface so the dispatcher never cares which is active.
package watch
