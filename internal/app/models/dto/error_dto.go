package dto

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_002"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_003"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_004"

	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeDuplicateEmail   ErrorCode = "RES_002"

	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool         `json:"success"`
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

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
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

// HandleValidationError converts a binding/validation error into an
// ErrorDetail with field-level messages.
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, formatFieldError(fe))
		}
		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")
		if len(verrs) > 0 {
			detail = detail.WithField(verrs[0].Field())
		}
		return detail.WithDetails(messages)
	}

	return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email address"
	case "min":
		return e.Field() + " must contain at least " + e.Param() + " element(s)"
	case "max":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
