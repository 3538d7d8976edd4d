// Package service implements the key manager: lazy, once-per-device
// generation of the symmetric encryption key and its retrieval from the
// local database.
package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/allisson/localvault/internal/crypto/domain"
	apperrors "github.com/allisson/localvault/internal/errors"
	keysDomain "github.com/allisson/localvault/internal/keys/domain"
)

// KeyRepository defines the persistence interface the key manager needs.
type KeyRepository interface {
	// Get retrieves a persisted key by identifier, or ErrKeyNotFound.
	Get(ctx context.Context, id string) (*keysDomain.EncryptionKey, error)

	// Save persists a key, overwriting any existing row (last-writer-wins).
	Save(ctx context.Context, key *keysDomain.EncryptionKey) error
}

// KeyWrapper optionally protects key material at rest.
type KeyWrapper interface {
	// Wrap encrypts raw key material for persistence.
	Wrap(ctx context.Context, plaintext []byte) ([]byte, error)

	// Unwrap reverses Wrap.
	Unwrap(ctx context.Context, wrapped []byte) ([]byte, error)
}

// KeyManagerService hands out the device's 256-bit encryption key.
//
// The first call loads a previously persisted key or generates a new one and
// persists it; later calls return the cached key without touching the
// database. Key retrieval is the subsystem's only potentially-slow step, so
// it is the only one that takes a meaningful context.
//
// Concurrent first-time calls are serialized with singleflight, so a single
// process generates at most one key. Across processes the database row is
// last-writer-wins; a process holding an earlier, overwritten key keeps
// functioning for its own lifetime. This is accepted behavior, not a bug.
type KeyManagerService struct {
	repo    KeyRepository
	wrapper KeyWrapper // nil when key wrapping is disabled
	logger  *slog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	cached []byte
}

// NewKeyManager creates a new KeyManagerService. The wrapper may be nil.
func NewKeyManager(repo KeyRepository, wrapper KeyWrapper, logger *slog.Logger) *KeyManagerService {
	return &KeyManagerService{
		repo:    repo,
		wrapper: wrapper,
		logger:  logger,
	}
}

// GetOrCreate returns the device encryption key, generating and persisting
// it on first use.
//
// Failure handling follows the subsystem's degradation policy:
//   - persistence failure logs a warning and returns the ephemeral in-memory
//     key (usable now, unrecoverable after restart)
//   - a corrupted or unwrappable stored key is treated as absent and a fresh
//     key is generated; previously encrypted values then surface as
//     decryption failures, not crashes
//
// The returned slice is shared; callers must not modify it.
func (s *KeyManagerService) GetOrCreate(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do(keysDomain.DeviceKeyID, func() (any, error) {
		return s.loadOrGenerate(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// loadOrGenerate performs the single-flight load-or-create sequence.
func (s *KeyManagerService) loadOrGenerate(ctx context.Context) ([]byte, error) {
	// A racing caller may have populated the cache while we waited
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	material, ok := s.loadPersisted(ctx)
	if !ok {
		generated, err := s.generate()
		if err != nil {
			return nil, err
		}
		material = generated
		s.persist(ctx, material)
	}

	s.mu.Lock()
	s.cached = material
	s.mu.Unlock()

	return material, nil
}

// Close scrubs the cached key material. The manager must not be used after.
func (s *KeyManagerService) Close() {
	s.mu.Lock()
	cryptoDomain.Zero(s.cached)
	s.cached = nil
	s.mu.Unlock()
}

// loadPersisted tries to load and (if needed) unwrap the stored key.
// Any failure other than a missing row is logged and treated as absent.
func (s *KeyManagerService) loadPersisted(ctx context.Context) ([]byte, bool) {
	key, err := s.repo.Get(ctx, keysDomain.DeviceKeyID)
	if err != nil {
		if !apperrors.Is(err, keysDomain.ErrKeyNotFound) {
			s.logger.Warn("stored encryption key unreadable, generating fresh key",
				slog.Any("error", err),
			)
		}
		return nil, false
	}

	material := key.Material
	if key.Wrapped {
		if s.wrapper == nil {
			s.logger.Warn("stored encryption key is wrapped but no keeper is configured, generating fresh key")
			return nil, false
		}
		material, err = s.wrapper.Unwrap(ctx, key.Material)
		if err != nil {
			s.logger.Warn("failed to unwrap stored encryption key, generating fresh key",
				slog.Any("error", err),
			)
			return nil, false
		}
	}

	if len(material) != cryptoDomain.KeySize {
		s.logger.Warn("stored encryption key has invalid size, generating fresh key",
			slog.Int("size", len(material)),
		)
		cryptoDomain.Zero(material)
		return nil, false
	}

	return material, true
}

// generate draws a fresh 256-bit key from the platform's secure generator.
func (s *KeyManagerService) generate() ([]byte, error) {
	material := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(material); err != nil {
		return nil, fmt.Errorf("failed to generate encryption key: %w", err)
	}
	return material, nil
}

// persist writes the key to the local database, wrapping it first when a
// keeper is configured. Persistence failure is an accepted degradation; the
// key stays usable in memory for this process.
func (s *KeyManagerService) persist(ctx context.Context, material []byte) {
	toStore := material
	wrapped := false

	if s.wrapper != nil {
		w, err := s.wrapper.Wrap(ctx, material)
		if err != nil {
			s.logger.Warn("failed to wrap encryption key, persisting unwrapped",
				slog.Any("error", err),
			)
		} else {
			toStore = w
			wrapped = true
		}
	}

	key := &keysDomain.EncryptionKey{
		ID:        keysDomain.DeviceKeyID,
		Material:  toStore,
		Wrapped:   wrapped,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, key); err != nil {
		s.logger.Warn("failed to persist encryption key, continuing with in-memory key",
			slog.Any("error", keysDomain.ErrKeyPersistence),
			slog.Any("cause", err),
		)
	}
}
