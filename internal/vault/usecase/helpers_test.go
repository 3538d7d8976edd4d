package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"go.uber.org/goleak"

	cryptoDomain "github.com/allisson/localvault/internal/crypto/domain"
	cryptoService "github.com/allisson/localvault/internal/crypto/service"
	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
	vaultService "github.com/allisson/localvault/internal/vault/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeStore is an in-memory EntryStore whose failures can be toggled.
type fakeStore struct {
	mu      sync.Mutex
	tier    vaultDomain.Tier
	entries map[string]string
	failing bool
}

func newFakeStore(tier vaultDomain.Tier) *fakeStore {
	return &fakeStore{tier: tier, entries: make(map[string]string)}
}

func (f *fakeStore) Tier() vaultDomain.Tier { return f.tier }

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return "", vaultDomain.ErrTierUnavailable
	}
	encoded, ok := f.entries[key]
	if !ok {
		return "", vaultDomain.ErrEntryNotFound
	}
	return encoded, nil
}

func (f *fakeStore) Set(_ context.Context, key, encoded string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return vaultDomain.ErrTierUnavailable
	}
	f.entries[key] = encoded
	return nil
}

func (f *fakeStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return vaultDomain.ErrTierUnavailable
	}
	delete(f.entries, key)
	return nil
}

func (f *fakeStore) Keys(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, vaultDomain.ErrTierUnavailable
	}
	var keys []string
	for key := range f.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// fixedKeyProvider returns a static key.
type fixedKeyProvider struct {
	key []byte
}

func (f *fixedKeyProvider) GetOrCreate(context.Context) ([]byte, error) {
	return f.key, nil
}

// noTxManager runs the function without a transaction; the fake stores have
// nothing to roll back.
type noTxManager struct{}

func (noTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// vaultFixture wires real codec and selector services over fake stores.
type vaultFixture struct {
	session    *fakeStore
	persistent *fakeStore
	memory     *fakeStore
	codec      *vaultService.EnvelopeCodecService
	selector   *vaultService.TierSelectorService
	store      StoreUseCase
	probeState *bool
	obfuscator cryptoService.Obfuscator
}

func newVaultFixture() *vaultFixture {
	logger := slog.New(slog.DiscardHandler)

	available := true
	probe := cryptoService.ProbeFunc(func() bool { return available })
	obfuscator := cryptoService.NewXORObfuscator("")

	key := make([]byte, cryptoDomain.KeySize)
	for i := range key {
		key[i] = byte(i)
	}

	codec := vaultService.NewEnvelopeCodec(
		probe,
		obfuscator,
		cryptoService.NewAEADManager(),
		&fixedKeyProvider{key: key},
		cryptoDomain.AESGCM,
		logger,
	)

	session := newFakeStore(vaultDomain.TierSession)
	persistent := newFakeStore(vaultDomain.TierPersistent)
	memory := newFakeStore(vaultDomain.TierMemory)
	selector := vaultService.NewTierSelector(session, persistent, memory, logger)

	return &vaultFixture{
		session:    session,
		persistent: persistent,
		memory:     memory,
		codec:      codec,
		selector:   selector,
		store:      NewStoreUseCase(codec, selector, logger),
		probeState: &available,
		obfuscator: obfuscator,
	}
}

func (f *vaultFixture) newMigration() MigrationUseCase {
	stores := []vaultService.EntryStore{f.session, f.persistent, f.memory}
	return NewMigrationUseCase(stores, f.codec, noTxManager{}, slog.New(slog.DiscardHandler))
}
