package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSourceUnavailable ErrorType = "SOURCE_UNAVAILABLE"
	ErrTypeMalformedSource   ErrorType = "MALFORMED_SOURCE"
	ErrTypeEmptyDataset      ErrorType = "EMPTY_DATASET"
	ErrTypeParsing           ErrorType = "PARSING"
	ErrTypeStorage           ErrorType = "STORAGE"
	ErrTypeValidation        ErrorType = "VALIDATION"
	ErrTypeNotFound          ErrorType = "NOT_FOUND"
	ErrTypeConfig            ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type. A target with an
// empty message matches any error of that type, so the sentinels below can be
// used with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Sentinels for errors.Is checks against a whole error type.
var (
	ErrSourceUnavailable = &AppError{Type: ErrTypeSourceUnavailable}
	ErrMalformedSource   = &AppError{Type: ErrTypeMalformedSource}
	ErrEmptyDataset      = &AppError{Type: ErrTypeEmptyDataset}
	ErrNotFound          = &AppError{Type: ErrTypeNotFound}
	ErrValidation        = &AppError{Type: ErrTypeValidation}
)

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the ErrorType of the first AppError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return "", false
}

// NewSourceUnavailableError creates an error for a dataset that could not be fetched
func NewSourceUnavailableError(location string, cause error) *AppError {
	return NewAppError(ErrTypeSourceUnavailable, fmt.Sprintf("source %s unavailable", location), cause).
		WithContext("location", location)
}

// NewMalformedSourceError creates an error describing a row whose width differs from the header
func NewMalformedSourceError(line, headerWidth, rowWidth int) *AppError {
	return NewAppError(ErrTypeMalformedSource,
		fmt.Sprintf("line %d has %d fields, header has %d", line, rowWidth, headerWidth), nil).
		WithContext("line", line).
		WithContext("header_width", headerWidth).
		WithContext("row_width", rowWidth)
}

// NewEmptyDatasetError creates an error for callers that required a non-empty result
func NewEmptyDatasetError(what string) *AppError {
	return NewAppError(ErrTypeEmptyDataset, fmt.Sprintf("%s is empty", what), nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
