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

// ErrTransport indicates a failure while communicating with the external
// messaging gateway. Kept distinct from ErrNotFound so callers can tell
// "doesn't exist" apart from "couldn't check".
var ErrTransport = errors.New("transport error")

// ErrPersistence indicates that the underlying data store failed. It must
// never be coerced into ErrNotFound; a storage outage is not an absence.
var ErrPersistence = errors.New("persistence error")

// AppError carries an HTTP-ish status code alongside the wrapped cause so
// handlers can map failures without string matching.
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

// NewAppError creates an AppError wrapping an underlying persistence or
// infrastructure failure.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: fmt.Errorf("%w: %w", ErrPersistence, err)}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that satisfies errors.Is(err, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewTransportError creates an AppError that satisfies errors.Is(err, ErrTransport).
func NewTransportError(message string, err error) *AppError {
	if err == nil {
		return &AppError{Code: 502, Message: message, Err: ErrTransport}
	}
	return &AppError{Code: 502, Message: message, Err: fmt.Errorf("%w: %w", ErrTransport, err)}
}
