package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	apperrors "github.com/allisson/localvault/internal/errors"
	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
)

// sessionFileName is the file holding all session-tier entries.
const sessionFileName = "session.json"

// SessionStore keeps entries in a JSON file under a session-scoped
// directory (the OS temp dir by default), so they outlive the process but
// not the machine session.
//
// The whole file is rewritten on every mutation via a temp file and rename,
// so a crash mid-write never leaves a truncated file behind. Any filesystem
// failure surfaces as ErrTierUnavailable and the selector falls back to the
// memory tier.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStore creates a SessionStore rooted at dir.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{path: filepath.Join(dir, sessionFileName)}
}

// Tier returns TierSession.
func (s *SessionStore) Tier() vaultDomain.Tier {
	return vaultDomain.TierSession
}

// Get retrieves the encoded payload stored under key.
func (s *SessionStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", err
	}
	encoded, ok := entries[key]
	if !ok {
		return "", vaultDomain.ErrEntryNotFound
	}
	return encoded, nil
}

// Set stores the encoded payload under key, replacing any previous value.
func (s *SessionStore) Set(_ context.Context, key, encoded string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[key] = encoded
	return s.save(entries)
}

// Remove deletes the entry under key. Removing an absent key is a no-op.
func (s *SessionStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.save(entries)
}

// Keys returns all stored keys carrying the given prefix.
func (s *SessionStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	var keys []string
	for key := range entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// load reads the session file. A missing file is an empty store; any other
// failure (permissions, corrupt JSON) makes the tier unavailable.
func (s *SessionStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperrors.Wrap(vaultDomain.ErrTierUnavailable, "corrupt session file")
	}
	return entries, nil
}

// save atomically replaces the session file with the given entries.
func (s *SessionStore) save(entries map[string]string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), sessionFileName+".*")
	if err != nil {
		return apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}
	return nil
}
