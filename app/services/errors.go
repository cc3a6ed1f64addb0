package services

import "errors"

var (
	// ErrUnauthenticated is returned when an operation that needs a
	// viewer identity is invoked without one.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidCredentials is returned when a login attempt fails.
	// Wrong username and wrong password are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError wraps a field validation failure together with the
// submitted input so callers can re-prompt without losing the payload.
type ValidationError struct {
	Input interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }
