// Package matcher decides whether a file basename looks like an
// OS-generated screenshot awaiting a descriptive name.
package matcher
