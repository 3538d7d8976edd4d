package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/localvault/internal/crypto/domain"
	cryptoService "github.com/allisson/localvault/internal/crypto/service"
	vaultRepository "github.com/allisson/localvault/internal/vault/repository"
	vaultService "github.com/allisson/localvault/internal/vault/service"
	vaultUsecase "github.com/allisson/localvault/internal/vault/usecase"
)

// vaultComponents groups the vault-area components.
type vaultComponents struct {
	session    vaultService.EntryStore
	persistent vaultService.EntryStore
	memory     vaultService.EntryStore
	codec      vaultService.Codec
	store      vaultUsecase.StoreUseCase
	migration  vaultUsecase.MigrationUseCase
	auth       *vaultUsecase.AuthChannel
	config     *vaultUsecase.ConfigChannel
}

// initVault assembles the vault area once: stores, codec, selector, use
// cases and the two channels.
func (c *Container) initVault() error {
	c.vaultInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["vault"] = fmt.Errorf("failed to get database for vault: %w", err)
			return
		}

		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["vault"] = err
			return
		}

		keyManager, err := c.KeyManager()
		if err != nil {
			c.initErrors["vault"] = err
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["vault"] = err
			return
		}

		algorithm, err := cryptoDomain.ParseAlgorithm(c.config.Algorithm)
		if err != nil {
			c.initErrors["vault"] = fmt.Errorf("invalid algorithm %q: %w", c.config.Algorithm, err)
			return
		}

		logger := c.Logger()

		codec := vaultService.NewEnvelopeCodec(
			cryptoService.NewPlatformProbe(),
			cryptoService.NewXORObfuscator(c.config.LegacyObfuscationKey),
			cryptoService.NewAEADManager(),
			keyManager,
			algorithm,
			logger,
		)

		session := vaultRepository.NewSessionStore(c.config.SessionDir)
		persistent := vaultRepository.NewSQLiteEntryStore(db)
		memory := vaultRepository.NewMemoryStore()
		selector := vaultService.NewTierSelector(session, persistent, memory, logger)

		store := vaultUsecase.NewStoreUseCase(codec, selector, logger)
		store = vaultUsecase.NewStoreUseCaseWithMetrics(store, businessMetrics)

		stores := []vaultService.EntryStore{session, persistent, memory}
		migration := vaultUsecase.NewMigrationUseCase(stores, codec, txManager, logger)
		migration = vaultUsecase.NewMigrationUseCaseWithMetrics(migration, businessMetrics)

		c.vault = vaultComponents{
			session:    session,
			persistent: persistent,
			memory:     memory,
			codec:      codec,
			store:      store,
			migration:  migration,
			auth:       vaultUsecase.NewAuthChannel(store),
			config:     vaultUsecase.NewConfigChannel(store),
		}
	})
	if storedErr, exists := c.initErrors["vault"]; exists {
		return storedErr
	}
	return nil
}

// StoreUseCase returns the generic store use case instance.
func (c *Container) StoreUseCase() (vaultUsecase.StoreUseCase, error) {
	if err := c.initVault(); err != nil {
		return nil, err
	}
	return c.vault.store, nil
}

// MigrationUseCase returns the legacy migration use case instance.
func (c *Container) MigrationUseCase() (vaultUsecase.MigrationUseCase, error) {
	if err := c.initVault(); err != nil {
		return nil, err
	}
	return c.vault.migration, nil
}

// AuthChannel returns the encrypted session-scoped credentials channel.
func (c *Container) AuthChannel() (*vaultUsecase.AuthChannel, error) {
	if err := c.initVault(); err != nil {
		return nil, err
	}
	return c.vault.auth, nil
}

// ConfigChannel returns the plaintext persistent configuration channel.
func (c *Container) ConfigChannel() (*vaultUsecase.ConfigChannel, error) {
	if err := c.initVault(); err != nil {
		return nil, err
	}
	return c.vault.config, nil
}

// EntryStores returns the three storage tiers. The status command uses them
// to report per-tier entry counts.
func (c *Container) EntryStores() ([]vaultService.EntryStore, error) {
	if err := c.initVault(); err != nil {
		return nil, err
	}
	return []vaultService.EntryStore{c.vault.session, c.vault.persistent, c.vault.memory}, nil
}
