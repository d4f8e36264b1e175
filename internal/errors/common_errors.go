package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeData       ErrorType = "DATA"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// Sentinels for the data-quality conditions of the feature engine. None of
// them is fatal for a batch: callers drop the offending row or day.
var (
	// ErrUnparseableTimestamp marks a source row whose date/time matched no
	// accepted layout.
	ErrUnparseableTimestamp = stderrors.New("unparseable timestamp")

	// ErrIncompleteOpeningRange marks a day missing one of its opening-minute bars.
	ErrIncompleteOpeningRange = stderrors.New("incomplete opening range")

	// ErrMissingNumericField marks a numeric field that could not be coerced.
	ErrMissingNumericField = stderrors.New("missing numeric field")
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

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
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

// NewUnparseableTimestampError reports a date/time pair that no layout accepted.
func NewUnparseableTimestampError(date, clock string) *AppError {
	value := strings.TrimSpace(date + " " + clock)
	return NewAppError(ErrTypeParsing, fmt.Sprintf("cannot resolve timestamp %q", value), ErrUnparseableTimestamp).
		WithContext("date", date).
		WithContext("time", clock)
}

// NewIncompleteOpeningRangeError reports the opening buckets absent for a day.
func NewIncompleteOpeningRangeError(day string, missing []string) *AppError {
	msg := fmt.Sprintf("day %s is missing opening bars %s", day, strings.Join(missing, ","))
	return NewAppError(ErrTypeData, msg, ErrIncompleteOpeningRange).
		WithContext("date", day).
		WithContext("missing", missing)
}

// NewMissingNumericFieldError reports a numeric field that did not parse.
func NewMissingNumericFieldError(field, raw string) *AppError {
	return NewAppError(ErrTypeData, fmt.Sprintf("field %s has no numeric value", field), ErrMissingNumericField).
		WithContext("field", field).
		WithContext("raw", raw)
}

// IsDataQuality reports whether err is one of the non-fatal data-quality
// conditions that drop a row or day instead of failing a batch.
func IsDataQuality(err error) bool {
	return stderrors.Is(err, ErrUnparseableTimestamp) ||
		stderrors.Is(err, ErrIncompleteOpeningRange) ||
		stderrors.Is(err, ErrMissingNumericField)
}
