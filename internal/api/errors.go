package api

import "errors"

// Error kinds for remote call failures. Callers classify with errors.Is;
// wrapping preserves the kind through call layers.
var (
	// ErrTimeout indicates the request exceeded its bounded timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrUnavailable indicates a network or connection-level failure, or an
	// unexpected non-2xx response.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrValidation indicates bad input shape, caught locally before any
	// network round-trip or reported by the backend as 400.
	ErrValidation = errors.New("invalid data")

	// ErrConflict indicates a duplicate registration (HTTP 409).
	ErrConflict = errors.New("user already exists")

	// ErrPayloadTooLarge indicates the backend rejected a message as too
	// large (HTTP 413).
	ErrPayloadTooLarge = errors.New("message too large")
)
