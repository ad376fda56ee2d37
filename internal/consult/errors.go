package consult

import "errors"

var (
	// ErrValidation marks requests rejected before any side effect.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when no consultation has the requested id.
	ErrNotFound = errors.New("consultation not found")

	// ErrPDFUnavailable is returned when PDF export is disabled in this deployment.
	ErrPDFUnavailable = errors.New("PDF unavailable")
)

// ValidationError carries the client-facing reason a request was rejected.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }
