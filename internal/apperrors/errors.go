package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the service and auth layers.
var (
	// ErrNoSuchUser is reported by the store when a lookup misses a row.
	ErrNoSuchUser = errors.New("user not found")

	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so responses never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken covers bad signature, malformed structure and expiry.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// UserNotFoundError is raised when an operation targets an id that does not exist.
type UserNotFoundError struct {
	ID int64
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("User not found with id: %d", e.ID)
}

// FieldExistsError is raised when a uniqueness check fails on create,
// or when the database reports a unique constraint violation.
type FieldExistsError struct {
	Field   string
	Message string
}

func (e *FieldExistsError) Error() string {
	return e.Message
}

// InvalidArgumentError is raised when a caller supplies malformed input.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}
