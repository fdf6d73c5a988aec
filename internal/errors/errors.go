package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeDecode means image bytes could not be interpreted as pixel data.
	ErrorTypeDecode ErrorType = "decode"
	// ErrorTypeDetection means the face detector itself failed (distinct
	// from "no face found", which is a normal result).
	ErrorTypeDetection ErrorType = "detection"
	// ErrorTypeInvalidInput means degenerate image dimensions or an
	// unsupported channel layout.
	ErrorTypeInvalidInput ErrorType = "invalid_input"

	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
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

// NewDecodeError creates an error for undecodable image bytes
func NewDecodeError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDecode,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewDetectionError creates an error for a face-detector runtime failure
func NewDetectionError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDetection,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewInvalidInputError creates an error for degenerate image input
func NewInvalidInputError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidInput,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
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

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
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
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
