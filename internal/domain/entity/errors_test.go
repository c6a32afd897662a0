package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "required field",
			field:    "title",
			message:  "title is required",
			expected: "validation error on field 'title': title is required",
		},
		{
			name:     "empty message",
			field:    "status",
			message:  "",
			expected: "validation error on field 'status': ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Field: tt.field, Message: tt.message}
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create: %w", &ValidationError{Field: "title", Message: "required"})

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrNotFound))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
}

func TestSentinelErrors_Distinct(t *testing.T) {
	all := []error{ErrNotFound, ErrInvalidInput, ErrValidationFailed, ErrInvalidSource}
	for i := range all {
		for j := range all {
			if i != j {
				assert.False(t, errors.Is(all[i], all[j]), "%v should not match %v", all[i], all[j])
			}
		}
	}
	assert.Equal(t, "invalid news source", ErrInvalidSource.Error())
}
