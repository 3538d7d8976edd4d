package domain

import (
	"github.com/allisson/localvault/internal/errors"
)

// Key management error definitions.
var (
	// ErrKeyNotFound indicates no encryption key has been persisted yet.
	// The key manager reacts by generating a fresh key, so this never
	// reaches callers of the storage subsystem.
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "encryption key not found")

	// ErrKeyPersistence indicates the generated key could not be written to
	// the local database (quota, permissions). Non-fatal: the in-memory key
	// stays usable for the remainder of the process, but values encrypted
	// with it will not be recoverable after a restart.
	ErrKeyPersistence = errors.Wrap(errors.ErrUnavailable, "encryption key persistence failed")
)
