package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConcurrency indicates that a write lost a race with a concurrent caller,
// e.g. a duplicate entry number from simultaneous creation. Safe to retry.
var ErrConcurrency = errors.New("concurrent modification conflict")

// ErrReferentialIntegrity indicates that a delete was blocked by dependents.
var ErrReferentialIntegrity = errors.New("operation blocked by dependent records")

// ErrInternal indicates an unexpected failure that the caller cannot act on.
var ErrInternal = errors.New("internal error")

// AppError wraps a persistence or infrastructure failure, preserving the
// underlying cause for logging while carrying a stable message upward.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
