// Package domain defines the vault's core types: storage tiers, stored
// entries and the credentials payload carried by the auth channel.
package domain

import "strings"

// Tier identifies one of the storage backends an entry can live in.
type Tier string

const (
	// TierSession stores entries in a session-scoped file that does not
	// survive a reboot.
	TierSession Tier = "session"

	// TierPersistent stores entries in the local database.
	TierPersistent Tier = "persistent"

	// TierMemory stores entries in process memory. It is the fallback of
	// last resort and never fails.
	TierMemory Tier = "memory"
)

// Namespace prefixes partition the key space by channel.
const (
	// NamespaceAuth prefixes keys written by the auth channel.
	NamespaceAuth = "vault/auth/"

	// NamespaceConfig prefixes keys written by the config channel.
	NamespaceConfig = "vault/config/"
)

// Entry is a stored key with its encoded payload. Encoded carries the full
// envelope text (tagged ciphertext, legacy obfuscated text or raw JSON)
// exactly as produced by the envelope codec.
type Entry struct {
	Key     string
	Encoded string
}

// InNamespace reports whether the entry's key carries the given namespace
// prefix.
func (e Entry) InNamespace(namespace string) bool {
	return strings.HasPrefix(e.Key, namespace)
}
