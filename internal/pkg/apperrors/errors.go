package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Authentication errors
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// User errors. Not-found variants wrap ErrResourceNotFound so the HTTP
// layer maps them in one place.
var (
	ErrUserNotFound           = fmt.Errorf("%w: user", ErrResourceNotFound)
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrUsernameAlreadyExists  = errors.New("username already exists")
	ErrStudentIDAlreadyExists = errors.New("student ID already exists")
)

// Program / subject / schedule errors
var (
	ErrProgramNotFound   = fmt.Errorf("%w: program", ErrResourceNotFound)
	ErrProgramCodeExists = errors.New("program code must be unique")
	ErrSubjectNotFound   = fmt.Errorf("%w: subject", ErrResourceNotFound)
	ErrCourseCodeExists  = errors.New("subject course code must be unique")
	ErrScheduleNotFound  = fmt.Errorf("%w: schedule", ErrResourceNotFound)
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Fields  map[string][]string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError creates a 400-class error carrying a field -> messages map
func NewValidationError(fields map[string][]string) *CustomError {
	return &CustomError{
		Err:    ErrValidationFailed,
		Fields: fields,
	}
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewMissingCredentialsError creates a missing-credentials error with a message
func NewMissingCredentialsError(message string) error {
	return &CustomError{
		Err:     ErrMissingCredentials,
		Message: message,
	}
}

// FieldsOf extracts the field-error map from err when it carries one.
func FieldsOf(err error) map[string][]string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Fields
	}
	return nil
}

// MessageOf returns the user-facing message attached to err, or "".
func MessageOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return ""
}
