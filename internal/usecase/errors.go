package usecase

import "errors"

// Sentinels returned by the services. Callers match them with errors.Is;
// the HTTP layer maps them to status codes.
var (
	// ErrInvalidInput covers rejected requests, including every lineup
	// builder rule violation.
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrPersistence reports a failing repository or storage backend.
	ErrPersistence = errors.New("persistence failure")
)
