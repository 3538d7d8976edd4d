// Package domain defines the encryption-key entity managed by the key manager.
package domain

import (
	"time"
)

// DeviceKeyID is the fixed identifier the device's symmetric key is stored
// under in the local database. There is exactly one such key per device.
const DeviceKeyID = "localvault-device-key"

// EncryptionKey is the opaque symmetric key handle used for both encryption
// and decryption of stored values.
//
// Lifecycle: generated at most once per device, lazily on first need;
// persisted in the local database; destroyed only when the database is
// cleared by the platform or user. The material is never written to the
// value-storage tiers, never logged, and never exposed to callers of the
// facade channels.
type EncryptionKey struct {
	ID string
	// Material is the raw 256-bit key, or its keeper-wrapped form when
	// Wrapped is true.
	Material []byte
	// Wrapped reports whether Material was wrapped by a secrets keeper
	// before persistence.
	Wrapped   bool
	CreatedAt time.Time
}
