package services

import "errors"

// Error taxonomy shared by the HTTP controllers and the realtime hub.
// Validation and not-found failures are recovered locally and surfaced
// to the caller only; persistence failures are surfaced without retry.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")
)
