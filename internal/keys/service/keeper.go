package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	// Keeper drivers registered by URL scheme.
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeeperWrapper wraps key material with a gocloud.dev secrets keeper, so the
// device key can be protected by an external KMS (hashivault://) or a local
// secret (base64key://) instead of sitting unencrypted in the database.
type KeeperWrapper struct {
	keeper *secrets.Keeper
}

// NewKeeperWrapper opens the keeper identified by keyURI.
func NewKeeperWrapper(ctx context.Context, keyURI string) (*KeeperWrapper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open secrets keeper: %w", err)
	}
	return &KeeperWrapper{keeper: keeper}, nil
}

// Wrap encrypts plaintext key material with the keeper.
func (k *KeeperWrapper) Wrap(ctx context.Context, plaintext []byte) ([]byte, error) {
	return k.keeper.Encrypt(ctx, plaintext)
}

// Unwrap decrypts keeper-wrapped key material.
func (k *KeeperWrapper) Unwrap(ctx context.Context, wrapped []byte) ([]byte, error) {
	return k.keeper.Decrypt(ctx, wrapped)
}

// Close releases the keeper's resources.
func (k *KeeperWrapper) Close() error {
	return k.keeper.Close()
}
