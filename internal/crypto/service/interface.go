// Package service provides the cryptographic services of the storage
// subsystem: AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305), the capability
// probe, and the legacy obfuscation codec kept for backward read-compatibility.
package service

import (
	cryptoDomain "github.com/allisson/localvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Probe reports whether the platform can perform secure random generation and
// authenticated encryption. It is re-evaluated on every call: capability is
// never assumed stable across calls, so implementations must not cache.
type Probe interface {
	Available() bool
}

// Obfuscator is the legacy reversible transform. It is NOT encryption and
// exists only for backward read-compatibility and as a last-resort fallback
// when Probe reports no secure primitive.
type Obfuscator interface {
	// Obfuscate encodes raw bytes into the legacy untagged base64 form.
	Obfuscate(plaintext []byte) string

	// Deobfuscate reverses Obfuscate. Input that is not valid base64 but is
	// valid raw JSON is accepted as-is for compatibility with the oldest
	// entries, which were stored unencoded.
	Deobfuscate(encoded string) ([]byte, error)
}
