package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/localvault/internal/validation"
	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
)

// credentialsKey is the single entry the auth channel manages.
const credentialsKey = vaultDomain.NamespaceAuth + "credentials"

// AuthChannel stores bearer credentials encrypted in the session tier: they
// must not survive a reboot and must never touch disk in readable form.
type AuthChannel struct {
	store StoreUseCase
}

// NewAuthChannel creates a new AuthChannel.
func NewAuthChannel(store StoreUseCase) *AuthChannel {
	return &AuthChannel{store: store}
}

// authOptions is the fixed policy of the auth channel.
func authOptions() Options {
	return Options{Encrypted: true, Persistent: false}
}

// SetCredentials stores the credentials, replacing any previous value.
func (c *AuthChannel) SetCredentials(ctx context.Context, credentials *vaultDomain.Credentials) error {
	if credentials == nil {
		return appValidation.WrapValidationError(validation.NewError("validation_credentials_nil", "credentials are required"))
	}

	err := validation.ValidateStruct(credentials,
		validation.Field(&credentials.Token,
			validation.Required.Error("token is required"),
			appValidation.NotBlank,
		),
		validation.Field(&credentials.Scheme,
			appValidation.NoWhitespace,
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	return c.store.Set(ctx, credentialsKey, credentials, authOptions())
}

// GetCredentials retrieves the stored credentials. It returns nil when no
// credentials exist or the stored value cannot be decoded.
func (c *AuthChannel) GetCredentials(ctx context.Context) (*vaultDomain.Credentials, error) {
	var credentials vaultDomain.Credentials
	found, err := c.store.Get(ctx, credentialsKey, &credentials, authOptions())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &credentials, nil
}

// HasCredentials reports whether credentials are stored.
func (c *AuthChannel) HasCredentials(ctx context.Context) (bool, error) {
	return c.store.Has(ctx, credentialsKey, authOptions())
}

// RemoveCredentials deletes the stored credentials.
func (c *AuthChannel) RemoveCredentials(ctx context.Context) error {
	return c.store.Remove(ctx, credentialsKey, authOptions())
}

// ConfigChannel stores operator-visible configuration values as plaintext
// JSON in the persistent tier, so they survive reboots and stay readable and
// editable with ordinary tools.
type ConfigChannel struct {
	store StoreUseCase
}

// NewConfigChannel creates a new ConfigChannel.
func NewConfigChannel(store StoreUseCase) *ConfigChannel {
	return &ConfigChannel{store: store}
}

// configOptions is the fixed policy of the config channel.
func configOptions() Options {
	return Options{Encrypted: false, Persistent: true}
}

// configKey namespaces a config entry name.
func configKey(name string) string {
	return vaultDomain.NamespaceConfig + name
}

// Set stores a configuration value under name.
func (c *ConfigChannel) Set(ctx context.Context, name string, value any) error {
	return c.store.Set(ctx, configKey(name), value, configOptions())
}

// Get loads the configuration value under name into out. It reports false
// when the value is absent or not the expected shape.
func (c *ConfigChannel) Get(ctx context.Context, name string, out any) (bool, error) {
	return c.store.Get(ctx, configKey(name), out, configOptions())
}

// Remove deletes the configuration value under name.
func (c *ConfigChannel) Remove(ctx context.Context, name string) error {
	return c.store.Remove(ctx, configKey(name), configOptions())
}
