package domain

import (
	"github.com/allisson/localvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors to
// provide context for cryptographic failures. None of them escape the storage
// subsystem: use cases convert them into fallback actions or absent results.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	//
	// Keys must be exactly 32 bytes (256 bits) for both AES-256-GCM and
	// ChaCha20-Poly1305.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext has been tampered with (authentication failure)
	//   - Invalid nonce provided
	//   - Corrupted encrypted data
	//
	// For security reasons, the specific cause is not disclosed to prevent
	// information leakage. Callers observe it as an absent value plus a
	// logged warning.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrMalformedEnvelope indicates a stored value's encoded form could not
	// be parsed (truncated payload, invalid base64 after a scheme tag).
	ErrMalformedEnvelope = errors.Wrap(errors.ErrInvalidInput, "malformed envelope")

	// ErrCapabilityUnavailable indicates the platform lacks a secure random
	// generator or an authenticated-encryption primitive. Non-fatal: writes
	// fall back to the legacy obfuscation codec.
	ErrCapabilityUnavailable = errors.Wrap(errors.ErrUnavailable, "crypto capability unavailable")
)
