package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/localvault/internal/errors"
)

func TestEntryKey(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		shouldErr bool
	}{
		{
			name: "valid namespaced key",
			key:  "vault/auth/credentials",
		},
		{
			name: "valid key with dots and dashes",
			key:  "vault/config/api.endpoint-v2",
		},
		{
			name:      "blank key",
			key:       "   ",
			shouldErr: true,
		},
		{
			name:      "key with spaces",
			key:       "vault/auth/my key",
			shouldErr: true,
		},
		{
			name:      "key with control characters",
			key:       "vault/auth/\x00",
			shouldErr: true,
		},
		{
			name:      "key too long",
			key:       "vault/" + strings.Repeat("a", 600),
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EntryKey.Validate(tt.key)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("non-string value", func(t *testing.T) {
		assert.Error(t, EntryKey.Validate(42))
	})
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, NoWhitespace.Validate("clean"))
	assert.Error(t, NoWhitespace.Validate(" padded "))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	assert.Error(t, NotBlank.Validate("  "))
}

func TestWrapValidationError(t *testing.T) {
	t.Run("nil error passes through", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("error becomes ErrInvalidInput", func(t *testing.T) {
		err := WrapValidationError(EntryKey.Validate("  "))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
