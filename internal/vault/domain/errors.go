package domain

import "github.com/allisson/localvault/internal/errors"

var (
	// ErrTierUnavailable indicates a storage tier could not serve the
	// request. Callers fall back to the next tier instead of surfacing it.
	ErrTierUnavailable = errors.Wrap(errors.ErrUnavailable, "storage tier unavailable")

	// ErrEntryNotFound indicates no entry exists under the requested key.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "entry not found")

	// ErrMalformedEntry indicates a stored payload could not be decoded by
	// any known scheme.
	ErrMalformedEntry = errors.Wrap(errors.ErrInvalidInput, "malformed entry payload")
)
