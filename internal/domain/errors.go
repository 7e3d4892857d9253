package domain

import "errors"

var (
	// ErrInvalidRange indicates an activity query whose end precedes its start.
	ErrInvalidRange = errors.New("invalid date range: end is before start")

	// ErrAlreadyFinalized indicates a second attempt to close a session record.
	ErrAlreadyFinalized = errors.New("session record already finalized")

	// ErrNotFinalized indicates a session record handed to persistence before
	// it was closed.
	ErrNotFinalized = errors.New("session record not finalized")
)

// RetryableError marks a failure the caller may retry unchanged, such as a
// storage fault while persisting a session record.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}
