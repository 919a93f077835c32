package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoStreamSelected indicates a sync was requested without any stream to read.
	ErrNoStreamSelected = errors.New("no stream selected")

	// Authentication Errors.

	// ErrAuthRequired indicates no usable credentials exist and none could be obtained.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the credentials or client secrets are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
