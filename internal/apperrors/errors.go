package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates that the resource exists but is owned by a
// different user than the caller.
var ErrUnauthorized = errors.New("user not authorized")

// ErrForbidden indicates that the caller is authenticated but not allowed
// to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrEncryptionConfig indicates that field encryption is misconfigured
// (bad key, undecryptable ciphertext). Surfaced distinctly so the HTTP
// layer can render a dedicated message instead of a generic failure.
var ErrEncryptionConfig = errors.New("encryption configuration error")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish code and a message.
// Repositories use it to annotate storage failures without losing the cause.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
