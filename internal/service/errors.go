package service

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistence wraps any durable read/write failure. The store stays
	// usable afterwards; callers decide whether to retry.
	ErrPersistence = errors.New("persistence failure")

	// ErrProfileNotFound is a first-class outcome, not a failure: it signals
	// that first-run onboarding is required for the user.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrDuplicateEntry rejects an add that would implicitly overwrite an
	// existing entry id within the same user's set.
	ErrDuplicateEntry = errors.New("entry id already exists")

	ErrInvalidEntry       = errors.New("invalid entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrPersistence, err)
}
