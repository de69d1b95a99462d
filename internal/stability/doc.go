// Package stability waits for a file's size to stop changing before the
// pipeline reads it, debouncing OS write-completion races.
package stability
