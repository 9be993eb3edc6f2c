package transcribe

import "errors"

// Errors
var (
	// ErrInsufficientData means the buffer is shorter than one analysis
	// frame. The caller must re-acquire a longer recording; the pipeline
	// never retries.
	ErrInsufficientData = errors.New("buffer shorter than one analysis frame")

	// ErrEngineUnavailable means the spectral analysis could not be set up
	// (invalid frame, hop, or band parameters). Fatal for the call.
	ErrEngineUnavailable = errors.New("spectral analysis engine unavailable")
)
