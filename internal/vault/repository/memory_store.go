// Package repository implements the three storage tiers behind the vault:
// an in-memory map, a session-scoped JSON file and the local SQLite
// database. All three satisfy the same store interface so the tier selector
// can treat them uniformly.
package repository

import (
	"context"
	"strings"
	"sync"

	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
)

// MemoryStore keeps entries in process memory behind a mutex. It is the
// fallback of last resort: every operation succeeds, and its contents vanish
// when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Tier returns TierMemory.
func (s *MemoryStore) Tier() vaultDomain.Tier {
	return vaultDomain.TierMemory
}

// Get retrieves the encoded payload stored under key.
// Returns ErrEntryNotFound when the key is absent.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	encoded, ok := s.entries[key]
	if !ok {
		return "", vaultDomain.ErrEntryNotFound
	}
	return encoded, nil
}

// Set stores the encoded payload under key, replacing any previous value.
func (s *MemoryStore) Set(_ context.Context, key, encoded string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = encoded
	return nil
}

// Remove deletes the entry under key. Removing an absent key is a no-op.
func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Keys returns all stored keys carrying the given prefix.
func (s *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
