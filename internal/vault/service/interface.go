// Package service implements the vault's two mid-layer services: the
// envelope codec, which turns values into their stored encoded form and
// back, and the tier selector, which routes operations to a storage tier
// with memory as the fallback of last resort.
package service

import (
	"context"

	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
)

// EntryStore is the uniform interface over the three storage tiers.
type EntryStore interface {
	// Tier identifies which tier this store implements.
	Tier() vaultDomain.Tier

	// Get retrieves the encoded payload stored under key.
	// Returns ErrEntryNotFound when the key is absent and
	// ErrTierUnavailable when the tier cannot serve the request.
	Get(ctx context.Context, key string) (string, error)

	// Set stores the encoded payload under key, replacing any previous value.
	Set(ctx context.Context, key, encoded string) error

	// Remove deletes the entry under key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error

	// Keys returns all stored keys carrying the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Codec encodes values into their stored string form and decodes them back.
type Codec interface {
	// Encode produces the stored form of plaintext. With encrypted set it
	// returns a tagged AEAD envelope, falling back to legacy obfuscation
	// when no secure primitive is available; otherwise it returns the
	// plaintext unchanged.
	Encode(ctx context.Context, plaintext []byte, encrypted bool) (string, error)

	// Decode reverses Encode, dispatching on the scheme recovered from the
	// encoded form.
	Decode(ctx context.Context, encoded string, encrypted bool) ([]byte, error)
}

// TierSelector routes reads and writes to a preferred tier with automatic
// fallback to memory.
type TierSelector interface {
	// Get reads key from the preferred tier, falling back to memory when
	// the preferred tier is unavailable or misses.
	Get(ctx context.Context, key string, persistent bool) (string, error)

	// Set writes key to the preferred tier, diverting to memory on failure.
	// It reports the tier that accepted the write and never fails.
	Set(ctx context.Context, key, encoded string, persistent bool) vaultDomain.Tier

	// Remove deletes key from the preferred tier and from memory.
	Remove(ctx context.Context, key string, persistent bool)
}

// KeyProvider hands out the device encryption key.
type KeyProvider interface {
	GetOrCreate(ctx context.Context) ([]byte, error)
}
