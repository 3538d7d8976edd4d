// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/localvault/internal/errors"
)

// maxEntryKeyLength bounds stored keys; longer keys usually indicate data
// accidentally passed as a key.
const maxEntryKeyLength = 512

var (
	// entryKeyRegex matches the characters allowed in a storage key:
	// letters, digits, and the separators used by namespaced keys.
	entryKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9/._\-]+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// EntryKey validates a storage key: non-blank, within length bounds, and
// restricted to the namespaced-key character set.
var EntryKey = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_entry_key_type", "key must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_entry_key_blank", "key must not be blank")
	}
	if len(s) > maxEntryKeyLength {
		return validation.NewError("validation_entry_key_length", "key is too long")
	}
	if !entryKeyRegex.MatchString(s) {
		return validation.NewError("validation_entry_key_charset", "key contains invalid characters")
	}
	return nil
})

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
