package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	apperrors "github.com/allisson/localvault/internal/errors"
	"github.com/allisson/localvault/internal/validation"
	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
	vaultService "github.com/allisson/localvault/internal/vault/service"
)

// storeUseCase implements StoreUseCase over the codec and tier selector.
type storeUseCase struct {
	codec    vaultService.Codec
	selector vaultService.TierSelector
	logger   *slog.Logger
}

// NewStoreUseCase creates a new StoreUseCase.
func NewStoreUseCase(
	codec vaultService.Codec,
	selector vaultService.TierSelector,
	logger *slog.Logger,
) StoreUseCase {
	return &storeUseCase{
		codec:    codec,
		selector: selector,
		logger:   logger,
	}
}

// Set stores value under key according to opts.
//
// The only failure modes are caller mistakes: an invalid key or a value that
// cannot be marshaled to JSON. Once the value is encoded, the write cannot
// fail; the selector diverts it to memory if the preferred tier is down and
// the codec degrades to obfuscation if encryption is impossible.
func (s *storeUseCase) Set(ctx context.Context, key string, value any, opts Options) error {
	if err := validation.WrapValidationError(validation.EntryKey.Validate(key)); err != nil {
		return err
	}

	plaintext, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	encoded, err := s.codec.Encode(ctx, plaintext, opts.Encrypted)
	if err != nil {
		// The codec only fails on programming errors; treat it as one
		return err
	}

	if tier := s.selector.Set(ctx, key, encoded, opts.Persistent); tier == vaultDomain.TierMemory {
		s.logger.Warn("entry stored with reduced durability",
			slog.String("key", key),
			slog.String("tier", string(tier)),
		)
	}
	return nil
}

// Get loads the value under key into out.
//
// Every failure past key validation is converted into an absent result: a
// missing entry, an unavailable tier with no memory copy, an undecodable or
// tampered payload. The cause is logged, never returned.
func (s *storeUseCase) Get(ctx context.Context, key string, out any, opts Options) (bool, error) {
	if err := validation.WrapValidationError(validation.EntryKey.Validate(key)); err != nil {
		return false, err
	}

	encoded, err := s.selector.Get(ctx, key, opts.Persistent)
	if err != nil {
		if !apperrors.Is(err, vaultDomain.ErrEntryNotFound) {
			s.logger.Warn("entry unreadable, reporting absent",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return false, nil
	}

	plaintext, err := s.codec.Decode(ctx, encoded, opts.Encrypted)
	if err != nil {
		s.logger.Warn("entry undecodable, reporting absent",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false, nil
	}

	if err := json.Unmarshal(plaintext, out); err != nil {
		s.logger.Warn("entry payload is not the expected shape, reporting absent",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false, nil
	}
	return true, nil
}

// Has reports whether an entry exists under key.
func (s *storeUseCase) Has(ctx context.Context, key string, opts Options) (bool, error) {
	if err := validation.WrapValidationError(validation.EntryKey.Validate(key)); err != nil {
		return false, err
	}

	_, err := s.selector.Get(ctx, key, opts.Persistent)
	if err != nil {
		if !apperrors.Is(err, vaultDomain.ErrEntryNotFound) {
			s.logger.Warn("entry unreadable, reporting absent",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return false, nil
	}
	return true, nil
}

// Remove deletes the entry under key from its preferred tier and from the
// memory fallback.
func (s *storeUseCase) Remove(ctx context.Context, key string, opts Options) error {
	if err := validation.WrapValidationError(validation.EntryKey.Validate(key)); err != nil {
		return err
	}

	s.selector.Remove(ctx, key, opts.Persistent)
	return nil
}
