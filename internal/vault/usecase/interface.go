// Package usecase implements the vault's caller-facing operations. Use cases
// orchestrate the envelope codec and tier selector, enforce the degradation
// policy (storage and crypto failures become fallbacks or absent results,
// never caller-visible errors) and run the legacy migration pass.
package usecase

import (
	"context"
)

// Options control where and how a value is stored.
type Options struct {
	// Encrypted selects authenticated encryption for the stored value.
	Encrypted bool

	// Persistent selects the persistent tier over the session tier.
	Persistent bool
}

// StoreUseCase is the generic operation set over JSON-encoded values.
//
// Errors are returned only for caller mistakes (invalid key, unmarshalable
// value). Storage and cryptographic failures never surface: writes degrade
// to a weaker tier or encoding, reads report the value as absent.
type StoreUseCase interface {
	// Set stores value under key according to opts.
	Set(ctx context.Context, key string, value any, opts Options) error

	// Get loads the value under key into out. It reports false when the key
	// is absent or the stored payload cannot be decoded.
	Get(ctx context.Context, key string, out any, opts Options) (bool, error)

	// Has reports whether an entry exists under key.
	Has(ctx context.Context, key string, opts Options) (bool, error)

	// Remove deletes the entry under key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string, opts Options) error
}

// MigrationReport summarizes one migration pass.
type MigrationReport struct {
	// Scanned counts every entry examined.
	Scanned int

	// Migrated counts entries re-encoded from the legacy form.
	Migrated int

	// Skipped counts entries already in the current encrypted form.
	Skipped int

	// Failed counts entries that could not be decoded. They are left in
	// place untouched.
	Failed int
}

// MigrationUseCase upgrades legacy-obfuscated entries to authenticated
// encryption in place.
type MigrationUseCase interface {
	// Run performs one idempotent migration pass over all tiers.
	Run(ctx context.Context) (MigrationReport, error)
}
