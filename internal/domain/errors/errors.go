package errors

import (
	"net/http"

	"cafefinder/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches on the business error code so that copies made by WithDetails
// still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

var (
	// ErrLocationUnavailable is returned when the device position could not be
	// acquired. The user is prompted to pick a point on the map instead.
	ErrLocationUnavailable = NewBaseError(
		http.StatusUnprocessableEntity,
		"LOCATION_UNAVAILABLE",
		"Could not get your location. Click on the map to choose a point.",
		"",
	)

	// ErrPrimarySourceUnavailable covers transport errors, bad statuses and
	// empty results from the live geodata query. It only ever triggers the
	// fallback and is logged, never shown as an error.
	ErrPrimarySourceUnavailable = NewBaseError(
		http.StatusBadGateway,
		"PRIMARY_SOURCE_UNAVAILABLE",
		"Live cafe data is unavailable",
		"",
	)

	// ErrFallbackUnavailable is the only terminal search failure.
	ErrFallbackUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"FALLBACK_UNAVAILABLE",
		"Could not load cafes.",
		"",
	)

	ErrPreferenceCorrupt = NewBaseError(
		http.StatusInternalServerError,
		"PREFERENCE_CORRUPT",
		"Stored preferences are unreadable",
		"",
	)

	ErrInvalidSearch = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SEARCH",
		"Invalid search parameters",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// StorageError represents a failed read or write against a preference backend
type StorageError struct {
	err     error
	details string
}

// NewStorageError creates a storage-related error
func NewStorageError(err error, details string) AppError {
	return &StorageError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return errors.Wrap(e.err, "storage operation failed").Error()
}

// Unwrap exposes the driver error
func (e *StorageError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StorageError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *StorageError) ErrorCode() string {
	return "STORAGE_FAILED"
}

// Message returns the user-facing message
func (e *StorageError) Message() string {
	return "Could not save preferences"
}

// Details returns detailed error information
func (e *StorageError) Details() string {
	return e.details
}
