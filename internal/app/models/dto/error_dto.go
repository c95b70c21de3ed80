package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeMissingCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_002"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_003"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_004"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_005"
	ErrorCodeForbidden          ErrorCode = "AUTH_006"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"AUTH_002"`
	Message string      `json:"message" example:"Invalid credentials"`
	Fields  interface{} `json:"fields,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithFields attaches a field -> messages map to the error detail
func (e *ErrorDetail) WithFields(fields map[string][]string) *ErrorDetail {
	e.Fields = fields
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}

// FieldErrors accumulates per-field validation messages.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// HasErrors reports whether any field collected a message.
func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}

// HandleValidationError converts a binding error into a structured error
// detail. validator.ValidationErrors becomes a field -> messages map;
// anything else is reported as a malformed request body.
func HandleValidationError(err error) *ErrorDetail {
	detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")

	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); ok {
		fields := FieldErrors{}
		for _, fe := range verrs {
			fields.Add(fe.Field(), validationMessage(fe))
		}
		return detail.WithFields(fields)
	}

	detail.Message = "Invalid request format"
	return detail
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// validationMessage creates a human-readable message for one field error
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return "Must be at least " + e.Param() + "."
	case "max":
		return "Must be at most " + e.Param() + "."
	case "email":
		return "Must be a valid email address."
	case "oneof":
		return "Must be one of: " + e.Param() + "."
	case "gt":
		return "Must be greater than " + e.Param() + "."
	default:
		return "Failed validation: " + e.Tag() + "."
	}
}
