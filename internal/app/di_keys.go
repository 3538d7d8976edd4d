package app

import (
	"context"
	"fmt"

	keysRepository "github.com/allisson/localvault/internal/keys/repository"
	keysService "github.com/allisson/localvault/internal/keys/service"
)

// keysComponents groups the key-management components.
type keysComponents struct {
	manager       *keysService.KeyManagerService
	repository    *keysRepository.SQLiteKeyRepository
	wrapperCloser func() error
}

// KeyManager returns the key manager instance. When KMS_KEY_URI is set, the
// persisted key is wrapped with the configured gocloud.dev secrets keeper.
func (c *Container) KeyManager() (*keysService.KeyManagerService, error) {
	c.keysInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["keyManager"] = fmt.Errorf("failed to get database for key manager: %w", err)
			return
		}

		var wrapper keysService.KeyWrapper
		if c.config.KMSKeyURI != "" {
			keeper, err := keysService.NewKeeperWrapper(context.Background(), c.config.KMSKeyURI)
			if err != nil {
				c.initErrors["keyManager"] = fmt.Errorf("failed to open key wrapper: %w", err)
				return
			}
			wrapper = keeper
			c.keys.wrapperCloser = keeper.Close
		}

		repo := keysRepository.NewSQLiteKeyRepository(db)
		c.keys.repository = repo
		c.keys.manager = keysService.NewKeyManager(repo, wrapper, c.Logger())
	})
	if storedErr, exists := c.initErrors["keyManager"]; exists {
		return nil, storedErr
	}
	return c.keys.manager, nil
}

// KeyRepository returns the key repository. The status command uses it to
// report device key presence without forcing key generation.
func (c *Container) KeyRepository() (*keysRepository.SQLiteKeyRepository, error) {
	if _, err := c.KeyManager(); err != nil {
		return nil, err
	}
	return c.keys.repository, nil
}
