package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrAccountNotFound is returned when no account matches an email or ID.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEmailExists is returned when registering an email already in use.
	ErrEmailExists = errors.New("email already registered")

	// ErrDonorNotFound is returned when a donor directory entry is missing.
	ErrDonorNotFound = errors.New("donor not found")

	// ErrRequestNotFound is returned when a blood request is missing.
	ErrRequestNotFound = errors.New("blood request not found")
)
