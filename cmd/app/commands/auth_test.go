package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
)

// fakeAuthChannel is an in-memory AuthChannel.
type fakeAuthChannel struct {
	credentials *vaultDomain.Credentials
}

func (f *fakeAuthChannel) SetCredentials(_ context.Context, credentials *vaultDomain.Credentials) error {
	f.credentials = credentials
	return nil
}

func (f *fakeAuthChannel) GetCredentials(context.Context) (*vaultDomain.Credentials, error) {
	return f.credentials, nil
}

func (f *fakeAuthChannel) HasCredentials(context.Context) (bool, error) {
	return f.credentials != nil, nil
}

func (f *fakeAuthChannel) RemoveCredentials(context.Context) error {
	f.credentials = nil
	return nil
}

func TestRunSetAuth(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("stores-credentials", func(t *testing.T) {
		channel := &fakeAuthChannel{}

		var out bytes.Buffer
		err := RunSetAuth(ctx, channel, logger, &out, "secret-token", "Bearer")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Credentials stored")
		require.NotNil(t, channel.credentials)
		require.Equal(t, "secret-token", channel.credentials.Token)
	})

	t.Run("default-scheme", func(t *testing.T) {
		channel := &fakeAuthChannel{}

		err := RunSetAuth(ctx, channel, logger, &bytes.Buffer{}, "secret-token", "")

		require.NoError(t, err)
		require.Equal(t, "Bearer", channel.credentials.Scheme)
	})

	t.Run("empty-token", func(t *testing.T) {
		err := RunSetAuth(ctx, &fakeAuthChannel{}, logger, &bytes.Buffer{}, "", "Bearer")

		require.Error(t, err)
		require.Contains(t, err.Error(), "token must not be empty")
	})
}

func TestRunGetAuth(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("text-output", func(t *testing.T) {
		channel := &fakeAuthChannel{
			credentials: &vaultDomain.Credentials{Token: "secret-token", Scheme: "Bearer"},
		}

		var out bytes.Buffer
		err := RunGetAuth(ctx, channel, logger, &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Scheme: Bearer")
		require.Contains(t, out.String(), "Token: secret-token")
	})

	t.Run("json-output", func(t *testing.T) {
		channel := &fakeAuthChannel{
			credentials: &vaultDomain.Credentials{Token: "secret-token", Scheme: "Bearer"},
		}

		var out bytes.Buffer
		err := RunGetAuth(ctx, channel, logger, &out, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"found": true`)
		require.Contains(t, out.String(), `"token": "secret-token"`)
	})

	t.Run("no-credentials", func(t *testing.T) {
		var out bytes.Buffer
		err := RunGetAuth(ctx, &fakeAuthChannel{}, logger, &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "No credentials stored")
	})
}

func TestRunHasAuth(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("present", func(t *testing.T) {
		channel := &fakeAuthChannel{credentials: &vaultDomain.Credentials{Token: "x"}}

		var out bytes.Buffer
		err := RunHasAuth(ctx, channel, logger, &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Credentials present")
	})

	t.Run("absent-json", func(t *testing.T) {
		var out bytes.Buffer
		err := RunHasAuth(ctx, &fakeAuthChannel{}, logger, &out, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"found": false`)
	})
}

func TestRunRemoveAuth(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	channel := &fakeAuthChannel{credentials: &vaultDomain.Credentials{Token: "x"}}

	var out bytes.Buffer
	err := RunRemoveAuth(ctx, channel, logger, &out)

	require.NoError(t, err)
	require.Contains(t, out.String(), "Credentials removed")
	require.Nil(t, channel.credentials)
}
