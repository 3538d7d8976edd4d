package service

import (
	"context"
	"log/slog"

	cryptoDomain "github.com/allisson/localvault/internal/crypto/domain"
	cryptoService "github.com/allisson/localvault/internal/crypto/service"
)

// EnvelopeCodecService implements Codec.
//
// Encrypted writes use the configured AEAD algorithm with a fresh nonce per
// write and encode as a 4-character scheme tag followed by
// base64(nonce || ciphertext). When the capability probe reports no secure
// primitive, writes degrade to the legacy obfuscation form. Reads dispatch
// on the recovered scheme, so every historical format stays readable
// regardless of what new writes produce.
type EnvelopeCodecService struct {
	probe       cryptoService.Probe
	obfuscator  cryptoService.Obfuscator
	aeadManager cryptoService.AEADManager
	keys        KeyProvider
	algorithm   cryptoDomain.Algorithm
	logger      *slog.Logger
}

// NewEnvelopeCodec creates a new EnvelopeCodecService.
func NewEnvelopeCodec(
	probe cryptoService.Probe,
	obfuscator cryptoService.Obfuscator,
	aeadManager cryptoService.AEADManager,
	keys KeyProvider,
	algorithm cryptoDomain.Algorithm,
	logger *slog.Logger,
) *EnvelopeCodecService {
	return &EnvelopeCodecService{
		probe:       probe,
		obfuscator:  obfuscator,
		aeadManager: aeadManager,
		keys:        keys,
		algorithm:   algorithm,
		logger:      logger,
	}
}

// Encode produces the stored form of plaintext.
//
// The capability probe is consulted on every encrypted write; a write never
// fails for cryptographic reasons, it degrades to obfuscation instead.
func (s *EnvelopeCodecService) Encode(ctx context.Context, plaintext []byte, encrypted bool) (string, error) {
	if !encrypted {
		return string(plaintext), nil
	}

	if !s.probe.Available() {
		s.logger.Warn("secure primitives unavailable, writing obfuscated value",
			slog.Any("error", cryptoDomain.ErrCapabilityUnavailable),
		)
		return s.obfuscator.Obfuscate(plaintext), nil
	}

	key, err := s.keys.GetOrCreate(ctx)
	if err != nil {
		s.logger.Warn("encryption key unavailable, writing obfuscated value",
			slog.Any("error", err),
		)
		return s.obfuscator.Obfuscate(plaintext), nil
	}

	cipher, err := s.aeadManager.CreateCipher(key, s.algorithm)
	if err != nil {
		s.logger.Warn("cipher construction failed, writing obfuscated value",
			slog.Any("error", err),
		)
		return s.obfuscator.Obfuscate(plaintext), nil
	}

	ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
	if err != nil {
		s.logger.Warn("encryption failed, writing obfuscated value",
			slog.Any("error", err),
		)
		return s.obfuscator.Obfuscate(plaintext), nil
	}

	return cryptoDomain.EncodeEnvelope(s.algorithm, nonce, ciphertext), nil
}

// Decode reverses Encode.
//
// A tagged value is decrypted with the algorithm its tag names, never handed
// to the legacy codec; an untagged value goes through legacy deobfuscation
// with its raw-JSON fallback. Unencrypted values pass through unchanged.
func (s *EnvelopeCodecService) Decode(ctx context.Context, encoded string, encrypted bool) ([]byte, error) {
	if !encrypted {
		return []byte(encoded), nil
	}

	envelope, err := cryptoDomain.ParseEnvelope(encoded)
	if err != nil {
		return nil, err
	}

	alg, ok := envelope.Algorithm()
	if !ok {
		return s.obfuscator.Deobfuscate(string(envelope.Payload))
	}

	key, err := s.keys.GetOrCreate(ctx)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	cipher, err := s.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	nonce, ciphertext := envelope.SplitNonce()
	plaintext, err := cipher.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
