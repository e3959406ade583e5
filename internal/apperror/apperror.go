// Package apperror defines the application's error kinds and how each one
// surfaces at the HTTP boundary.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is the category of an application error
type ErrorType int

const (
	// InternalError is any unexpected failure, including storage errors
	InternalError ErrorType = iota
	// ValidationError is an empty or malformed required field
	ValidationError
	// AuthError is bad credentials or a missing session
	AuthError
	// NotFoundError is an absent resource, or one the principal does not own
	NotFoundError
	// ConflictError is a write that would break a uniqueness rule
	ConflictError
)

// AppError carries a user-facing message and the underlying cause
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError:
		return http.StatusBadRequest
	case AuthError:
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(message string) *AppError {
	return &AppError{Type: ValidationError, Message: message}
}

// NewAuthError creates a new AuthError
func NewAuthError(message string) *AppError {
	return &AppError{Type: AuthError, Message: message}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: NotFoundError, Message: message}
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, err error) *AppError {
	return &AppError{Type: ConflictError, Message: message, Err: err}
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: InternalError, Message: message, Err: err}
}

// From finds an AppError in err's chain, or wraps err as an InternalError
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("Internal server error", err)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsAuth checks if an error is an AuthError
func IsAuth(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
