package source

import "errors"

// Capture error taxonomy. Callers classify failures with errors.Is; lower
// layers wrap these with context via fmt.Errorf("...: %w", ...).
var (
	// ErrPermissionDenied means the OS did not grant capture access.
	// Surfaced to the caller; retrying without user action will not help.
	ErrPermissionDenied = errors.New("capture permission denied")

	// ErrSourceNotFound means the source id no longer resolves to a live
	// display or window.
	ErrSourceNotFound = errors.New("source not found")

	// ErrCaptureFailed is a transient capture failure (unmapped window with
	// no backing buffer, timed-out round-trip). Re-enumerating and retrying
	// may succeed.
	ErrCaptureFailed = errors.New("capture failed")

	// ErrUnsupportedPlatform means the capture subsystem is unavailable on
	// the current session.
	ErrUnsupportedPlatform = errors.New("platform not supported")
)
