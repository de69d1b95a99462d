// Package logging builds slog loggers for the daemon and CLI, with a
// console handler for interactive use and a JSON handler for log files.
package logging
