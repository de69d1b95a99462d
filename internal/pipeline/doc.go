// Package pipeline runs the per-file rename sequence: wait for the file to
// settle, describe it with the vision model, derive a filesystem-safe name,
// rename, and notify. Each stage failure maps to a sentinel in errors.go.
package pipeline
