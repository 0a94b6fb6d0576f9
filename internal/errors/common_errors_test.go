package errors

import (
	"errors"
	"fmt"
	"os"
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
		{name: "source not found", errType: ErrTypeSourceNotFound, expected: "SOURCE_NOT_FOUND"},
		{name: "data format", errType: ErrTypeDataFormat, expected: "DATA_FORMAT"},
		{name: "invalid argument", errType: ErrTypeInvalidArgument, expected: "INVALID_ARGUMENT"},
		{name: "storage", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "config", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewInvalidArgumentError("beat must be a string"),
			expected: "[INVALID_ARGUMENT] beat must be a string",
		},
		{
			name:     "with cause",
			err:      NewDataFormatError("bad date on row 3", fmt.Errorf("not enough parts")),
			expected: "[DATA_FORMAT] bad date on row 3: not enough parts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewSourceNotFoundError("missing.csv", os.ErrNotExist)

	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, "missing.csv", err.Context["path"])
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeDataFormat, Message: "bad row"}
	err.WithContext("row", 4).WithContext("column", "COMPLAINT_DATE")

	require.NotNil(t, err.Context)
	assert.Equal(t, 4, err.Context["row"])
	assert.Equal(t, "COMPLAINT_DATE", err.Context["column"])
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", NewDataFormatError("missing columns", nil))

	assert.True(t, IsDataFormat(wrapped))
	assert.False(t, IsSourceNotFound(wrapped))
	assert.True(t, IsSourceNotFound(NewSourceNotFoundError("x.csv", nil)))
	assert.True(t, IsInvalidArgument(NewInvalidArgumentError("k must be >= 0")))
	assert.Equal(t, ErrTypeStorage, TypeOf(NewStorageError("write", nil)))
	assert.Equal(t, ErrTypeConfig, TypeOf(NewConfigError("bad", nil)))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}
