package service

import "errors"

var (
	// ErrRetryExhausted indicates every persist attempt failed.
	ErrRetryExhausted = errors.New("persist retry attempts exhausted")

	// ErrInvalidBlock indicates a stopwatch block without positive duration.
	ErrInvalidBlock = errors.New("stopwatch block must last at least one second")
)
