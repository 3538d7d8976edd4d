package service

import (
	"context"
	"log/slog"

	apperrors "github.com/allisson/localvault/internal/errors"
	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
)

// TierSelectorService implements TierSelector over the three stores.
//
// The preferred tier is session or persistent depending on the caller's
// persistence choice; memory is always the fallback. Because the memory
// store cannot fail, a write always lands somewhere and callers never see a
// storage error, only reduced durability.
type TierSelectorService struct {
	session    EntryStore
	persistent EntryStore
	memory     EntryStore
	logger     *slog.Logger
}

// NewTierSelector creates a new TierSelectorService.
func NewTierSelector(session, persistent, memory EntryStore, logger *slog.Logger) *TierSelectorService {
	return &TierSelectorService{
		session:    session,
		persistent: persistent,
		memory:     memory,
		logger:     logger,
	}
}

// preferred returns the tier a caller's persistence choice maps to.
func (s *TierSelectorService) preferred(persistent bool) EntryStore {
	if persistent {
		return s.persistent
	}
	return s.session
}

// Get reads key from the preferred tier, then from memory.
//
// Memory is consulted both when the preferred tier is unavailable and when
// it simply misses, because an earlier write may have been diverted there.
func (s *TierSelectorService) Get(ctx context.Context, key string, persistent bool) (string, error) {
	preferred := s.preferred(persistent)

	encoded, err := preferred.Get(ctx, key)
	if err == nil {
		return encoded, nil
	}
	if apperrors.Is(err, vaultDomain.ErrTierUnavailable) {
		s.logger.Warn("storage tier unavailable on read, trying memory",
			slog.String("tier", string(preferred.Tier())),
			slog.String("key", key),
		)
	} else if !apperrors.Is(err, vaultDomain.ErrEntryNotFound) {
		return "", err
	}

	return s.memory.Get(ctx, key)
}

// Set writes key to the preferred tier, diverting to memory on failure.
func (s *TierSelectorService) Set(ctx context.Context, key, encoded string, persistent bool) vaultDomain.Tier {
	preferred := s.preferred(persistent)

	if err := preferred.Set(ctx, key, encoded); err != nil {
		s.logger.Warn("storage tier unavailable on write, falling back to memory",
			slog.String("tier", string(preferred.Tier())),
			slog.String("key", key),
			slog.Any("error", err),
		)
		// The memory store cannot fail
		_ = s.memory.Set(ctx, key, encoded)
		return s.memory.Tier()
	}
	return preferred.Tier()
}

// Remove deletes key from the preferred tier and from memory, so a value
// that was fallback-written earlier does not resurface.
func (s *TierSelectorService) Remove(ctx context.Context, key string, persistent bool) {
	preferred := s.preferred(persistent)

	if err := preferred.Remove(ctx, key); err != nil {
		s.logger.Warn("storage tier unavailable on remove",
			slog.String("tier", string(preferred.Tier())),
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
	_ = s.memory.Remove(ctx, key)
}
