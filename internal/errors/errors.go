package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation            ErrorType = "validation"
	ErrorTypeUnsupportedInput      ErrorType = "unsupported_input"
	ErrorTypeSurface               ErrorType = "surface"
	ErrorTypeCapabilityTimeout     ErrorType = "capability_timeout"
	ErrorTypeCapabilityUnavailable ErrorType = "capability_unavailable"
	ErrorTypePageAnalysis          ErrorType = "page_analysis"
	ErrorTypeDecode                ErrorType = "decode"
	ErrorTypeNetwork               ErrorType = "network"
	ErrorTypeTimeout               ErrorType = "timeout"
	ErrorTypeInternal              ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewUnsupportedInputError signals that an input handle kind cannot be
// normalized into a pixel buffer
func NewUnsupportedInputError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedInput,
		Message:    message,
		StatusCode: http.StatusUnsupportedMediaType,
		Cause:      cause,
	}
}

// NewSurfaceError signals that a drawing surface could not be acquired
func NewSurfaceError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeSurface,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewCapabilityTimeoutError signals that waiting for a capability load exceeded its deadline
func NewCapabilityTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeCapabilityTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewCapabilityUnavailableError signals that a capability load failed permanently
func NewCapabilityUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeCapabilityUnavailable,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// NewPageAnalysisError wraps a recoverable per-page failure; callers log and
// continue with the remaining pages
func NewPageAnalysisError(pageIndex int, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypePageAnalysis,
		Message:    fmt.Sprintf("analysis of page %d failed", pageIndex),
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewDecodeError signals a fatal document decode failure
func NewDecodeError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDecode,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
