package translate

import "errors"

// Error taxonomy for remote call failures. Callers classify with
// errors.Is; the concrete SDK errors stay wrapped underneath.
var (
	// ErrAuthentication means the API key was rejected. Fatal for the
	// whole run: no further call can succeed.
	ErrAuthentication = errors.New("authentication failed")

	// ErrRateLimited means the service asked the caller to slow down.
	// The only retryable condition.
	ErrRateLimited = errors.New("rate limited")

	// ErrService covers transport failures, 5xx responses and other
	// remote errors. Fails the current word, never the run.
	ErrService = errors.New("service error")

	// ErrInvalidInput means the request itself was rejected, e.g. an
	// empty word or a malformed language name passed through to the API.
	ErrInvalidInput = errors.New("invalid input")
)
