package domain

import (
	"encoding/base64"
	"strings"
)

// Scheme identifies the encoding a stored value was written under.
//
// Every encrypted value carries a fixed 4-character tag in front of its
// base64 payload, so a reader can always pick the right decoder from the
// encoded form alone, with no out-of-band metadata. Values without a
// recognized tag predate tagging and are treated as legacy obfuscation.
// Plaintext is never tagged; it is selected by channel policy, not by
// inspection.
type Scheme string

const (
	// SchemeAESGCMV1 is the primary encrypted scheme: AES-256-GCM with a
	// fresh 96-bit nonce per write.
	SchemeAESGCMV1 Scheme = "aes-gcm-v1"

	// SchemeChaCha20V1 is the alternate encrypted scheme using
	// ChaCha20-Poly1305, selectable via configuration.
	SchemeChaCha20V1 Scheme = "chacha20-v1"

	// SchemeLegacyXOR is the pre-encryption obfuscation format: untagged
	// base64 of a cyclic XOR transform. Read-compatible only; new writes use
	// it solely when no secure primitive is available.
	SchemeLegacyXOR Scheme = "legacy-xor"

	// SchemePlaintext is raw JSON text, used only by the unencrypted
	// configuration channel.
	SchemePlaintext Scheme = "plaintext"
)

// Scheme tags prepended to encrypted payloads.
const (
	TagAESGCMV1   = "agv1"
	TagChaCha20V1 = "ccv1"

	tagSize = 4
)

// Envelope is the parsed form of a stored value: the scheme recovered from
// the encoded prefix plus the payload for that scheme's decoder.
//
// For encrypted schemes Payload holds the decoded nonce||ciphertext bytes.
// For SchemeLegacyXOR it holds the original encoded string unchanged, since
// the legacy codec consumes the base64 form directly.
type Envelope struct {
	Scheme  Scheme
	Payload []byte
}

// ParseEnvelope classifies an encoded value once at the boundary.
//
// A recognized 4-character tag selects the matching encrypted scheme and
// base64-decodes the remainder; a tagged value that fails base64 decoding is
// malformed, never passed to the legacy codec. Anything untagged is legacy.
func ParseEnvelope(encoded string) (Envelope, error) {
	switch {
	case strings.HasPrefix(encoded, TagAESGCMV1):
		return parseTagged(SchemeAESGCMV1, encoded)
	case strings.HasPrefix(encoded, TagChaCha20V1):
		return parseTagged(SchemeChaCha20V1, encoded)
	default:
		return Envelope{Scheme: SchemeLegacyXOR, Payload: []byte(encoded)}, nil
	}
}

// parseTagged decodes the base64 payload following a scheme tag and checks
// it is long enough to hold a nonce plus a non-empty ciphertext.
func parseTagged(scheme Scheme, encoded string) (Envelope, error) {
	payload, err := base64.StdEncoding.DecodeString(encoded[tagSize:])
	if err != nil {
		return Envelope{}, ErrMalformedEnvelope
	}
	if len(payload) <= NonceSize {
		return Envelope{}, ErrMalformedEnvelope
	}
	return Envelope{Scheme: scheme, Payload: payload}, nil
}

// Algorithm returns the AEAD algorithm for an encrypted scheme.
// The second return value is false for non-encrypted schemes.
func (e Envelope) Algorithm() (Algorithm, bool) {
	switch e.Scheme {
	case SchemeAESGCMV1:
		return AESGCM, true
	case SchemeChaCha20V1:
		return ChaCha20, true
	default:
		return "", false
	}
}

// SplitNonce splits an encrypted envelope payload into its nonce and
// ciphertext parts.
func (e Envelope) SplitNonce() (nonce, ciphertext []byte) {
	return e.Payload[:NonceSize], e.Payload[NonceSize:]
}

// EncodeEnvelope produces the stored string form of an encrypted value:
// the scheme tag followed by base64(nonce || ciphertext).
func EncodeEnvelope(alg Algorithm, nonce, ciphertext []byte) string {
	var tag string
	switch alg {
	case ChaCha20:
		tag = TagChaCha20V1
	default:
		tag = TagAESGCMV1
	}

	payload := make([]byte, 0, len(nonce)+len(ciphertext))
	payload = append(payload, nonce...)
	payload = append(payload, ciphertext...)
	return tag + base64.StdEncoding.EncodeToString(payload)
}
