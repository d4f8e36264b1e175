package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{"parsing error type", ErrTypeParsing, "PARSING"},
		{"data error type", ErrTypeData, "DATA"},
		{"storage error type", ErrTypeStorage, "STORAGE"},
		{"validation error type", ErrTypeValidation, "VALIDATION"},
		{"not found error type", ErrTypeNotFound, "NOT_FOUND"},
		{"config error type", ErrTypeConfig, "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeConfig,
				Message: "session timezone is empty",
			},
			wantMessage: "[CONFIG] session timezone is empty",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "failed to create daily CSV",
				Cause:   fmt.Errorf("permission denied"),
			},
			wantMessage: "[STORAGE] failed to create daily CSV: permission denied",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type: ErrTypeValidation,
			},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	withCause := NewStorageError("write failed", cause)
	assert.Same(t, cause, errors.Unwrap(withCause))

	withoutCause := NewAppValidationError("bad input")
	assert.Nil(t, withoutCause.Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	t.Run("returns same instance", func(t *testing.T) {
		appError := NewParsingError("bad row", nil)
		result := appError.WithContext("row", 12)

		assert.Same(t, appError, result)
		require.Contains(t, result.Context, "row")
		assert.Equal(t, 12, result.Context["row"])
	})

	t.Run("initializes nil context", func(t *testing.T) {
		appError := &AppError{Type: ErrTypeData, Message: "test"}
		result := appError.WithContext("key", "value")

		assert.NotNil(t, result.Context)
		assert.Equal(t, "value", result.Context["key"])
	})
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{"parsing", NewParsingError("x", cause), ErrTypeParsing},
		{"storage", NewStorageError("x", cause), ErrTypeStorage},
		{"validation", NewAppValidationError("x"), ErrTypeValidation},
		{"not found", NewNotFoundError("input file"), ErrTypeNotFound},
		{"config", NewConfigError("x", cause), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.NotNil(t, tt.err.Context)
		})
	}

	assert.Equal(t, "input file not found", NewNotFoundError("input file").Message)
}

func TestDataQualityErrors(t *testing.T) {
	t.Run("unparseable timestamp", func(t *testing.T) {
		err := NewUnparseableTimestampError("2024-13-45", "09:30")

		assert.True(t, errors.Is(err, ErrUnparseableTimestamp))
		assert.False(t, errors.Is(err, ErrIncompleteOpeningRange))
		assert.Equal(t, ErrTypeParsing, err.Type)
		assert.Contains(t, err.Error(), `"2024-13-45 09:30"`)
		assert.True(t, IsDataQuality(err))
	})

	t.Run("incomplete opening range", func(t *testing.T) {
		err := NewIncompleteOpeningRangeError("2024-01-02", []string{"09:32:00"})

		assert.True(t, errors.Is(err, ErrIncompleteOpeningRange))
		assert.Equal(t, ErrTypeData, err.Type)
		assert.Equal(t, []string{"09:32:00"}, err.Context["missing"])
		assert.Contains(t, err.Error(), "2024-01-02")
		assert.True(t, IsDataQuality(fmt.Errorf("wrapped: %w", err)))
	})

	t.Run("missing numeric field", func(t *testing.T) {
		err := NewMissingNumericFieldError("volume", "n/a")

		assert.True(t, errors.Is(err, ErrMissingNumericField))
		assert.Equal(t, "n/a", err.Context["raw"])
	})

	t.Run("other errors are fatal", func(t *testing.T) {
		assert.False(t, IsDataQuality(NewStorageError("disk full", nil)))
		assert.False(t, IsDataQuality(nil))
	})
}
