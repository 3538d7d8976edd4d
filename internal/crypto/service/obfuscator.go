package service

import (
	"encoding/base64"
	"encoding/json"

	cryptoDomain "github.com/allisson/localvault/internal/crypto/domain"
)

// legacyObfuscationKey is the fixed key older releases XORed stored values
// against. It must never change: changing it would orphan every legacy entry
// still waiting for migration.
const legacyObfuscationKey = "lv-legacy-obfuscation-key"

// XORObfuscator implements the Obfuscator interface with a cyclic XOR
// transform over a fixed key string, base64-encoded.
//
// This is obfuscation, not encryption: it resists casual inspection only and
// provides no confidentiality or integrity guarantees. It is retained for
// reading entries written before authenticated encryption existed, and as the
// write fallback when the capability probe reports no secure primitive.
type XORObfuscator struct {
	key []byte
}

// NewXORObfuscator creates an obfuscator with the built-in legacy key.
// A non-empty override replaces the key; this exists for deployments that
// shipped with a custom key and is otherwise left empty.
func NewXORObfuscator(keyOverride string) *XORObfuscator {
	key := legacyObfuscationKey
	if keyOverride != "" {
		key = keyOverride
	}
	return &XORObfuscator{key: []byte(key)}
}

// Obfuscate encodes raw bytes into the legacy untagged base64 form.
func (o *XORObfuscator) Obfuscate(plaintext []byte) string {
	return base64.StdEncoding.EncodeToString(o.xor(plaintext))
}

// Deobfuscate reverses Obfuscate.
//
// Two fallbacks preserve compatibility with the oldest entries:
//   - input that is not valid base64 but is valid raw JSON is returned as-is
//     (pre-obfuscation entries were stored unencoded)
//   - decoded output that is not valid JSON is also retried as raw JSON input
//
// Anything else fails with ErrMalformedEnvelope.
func (o *XORObfuscator) Deobfuscate(encoded string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return o.rawFallback(encoded)
	}

	plaintext := o.xor(decoded)
	if !json.Valid(plaintext) {
		return o.rawFallback(encoded)
	}
	return plaintext, nil
}

// rawFallback accepts the input unchanged when it already parses as JSON.
func (o *XORObfuscator) rawFallback(encoded string) ([]byte, error) {
	if json.Valid([]byte(encoded)) {
		return []byte(encoded), nil
	}
	return nil, cryptoDomain.ErrMalformedEnvelope
}

// xor applies the cyclic XOR transform; it is its own inverse.
func (o *XORObfuscator) xor(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ o.key[i%len(o.key)]
	}
	return out
}
