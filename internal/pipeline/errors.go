package pipeline

import (
	"snapname/internal/notify"
	"snapname/internal/rename"
	"snapname/internal/services/ollama"
	"snapname/internal/stability"
)

// Stage sentinels, aliased from the packages that produce them so callers
// can errors.Is against one taxonomy without importing every stage.
var (
	// ErrFileNotStable means the file never stopped changing within the
	// stability window. The candidate is dropped, never renamed.
	ErrFileNotStable = stability.ErrNotStable

	// ErrInferenceUnavailable means the model endpoint could not be reached
	// or refused the request.
	ErrInferenceUnavailable = ollama.ErrUnavailable

	// ErrInferenceMalformed means the endpoint answered with a body the
	// client could not use.
	ErrInferenceMalformed = ollama.ErrMalformedResponse

	// ErrRenameFailed means the filesystem rename itself failed.
	ErrRenameFailed = rename.ErrRenameFailed

	// ErrNotificationFailed is logged but never fails a candidate; the
	// rename has already happened by the time notification runs.
	ErrNotificationFailed = notify.ErrNotificationFailed
)
