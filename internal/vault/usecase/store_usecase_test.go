package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/localvault/internal/crypto/domain"
	apperrors "github.com/allisson/localvault/internal/errors"
)

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStoreUseCase_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_EncryptedSessionWrite", func(t *testing.T) {
		f := newVaultFixture()

		err := f.store.Set(ctx, "vault/auth/credentials", testPayload{Name: "token", Count: 1}, Options{Encrypted: true})
		require.NoError(t, err)

		// The stored form carries the scheme tag and hides the plaintext
		encoded := f.session.entries["vault/auth/credentials"]
		assert.True(t, strings.HasPrefix(encoded, cryptoDomain.TagAESGCMV1))
		assert.NotContains(t, encoded, "token")
	})

	t.Run("Success_PlaintextPersistentWrite", func(t *testing.T) {
		f := newVaultFixture()

		err := f.store.Set(ctx, "vault/config/endpoint", testPayload{Name: "prod", Count: 2}, Options{Persistent: true})
		require.NoError(t, err)

		encoded := f.persistent.entries["vault/config/endpoint"]
		assert.JSONEq(t, `{"name":"prod","count":2}`, encoded)
	})

	t.Run("Success_TierFailureNeverSurfaces", func(t *testing.T) {
		f := newVaultFixture()
		f.session.failing = true

		err := f.store.Set(ctx, "vault/auth/credentials", testPayload{Name: "x"}, Options{Encrypted: true})
		require.NoError(t, err)
		assert.Contains(t, f.memory.entries, "vault/auth/credentials")
	})

	t.Run("Success_ProbeUnavailableDegradesToObfuscation", func(t *testing.T) {
		f := newVaultFixture()
		*f.probeState = false

		err := f.store.Set(ctx, "vault/auth/credentials", testPayload{Name: "x"}, Options{Encrypted: true})
		require.NoError(t, err)

		encoded := f.session.entries["vault/auth/credentials"]
		assert.False(t, strings.HasPrefix(encoded, cryptoDomain.TagAESGCMV1))
	})

	t.Run("Error_InvalidKey", func(t *testing.T) {
		f := newVaultFixture()

		err := f.store.Set(ctx, "bad key with spaces", testPayload{}, Options{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_UnmarshalableValue", func(t *testing.T) {
		f := newVaultFixture()

		err := f.store.Set(ctx, "vault/config/bad", func() {}, Options{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestStoreUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_EncryptedRoundTrip", func(t *testing.T) {
		f := newVaultFixture()
		opts := Options{Encrypted: true}
		require.NoError(t, f.store.Set(ctx, "vault/auth/credentials", testPayload{Name: "token", Count: 7}, opts))

		var out testPayload
		found, err := f.store.Get(ctx, "vault/auth/credentials", &out, opts)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, testPayload{Name: "token", Count: 7}, out)
	})

	t.Run("Success_AbsentKeyReportsFalse", func(t *testing.T) {
		f := newVaultFixture()

		var out testPayload
		found, err := f.store.Get(ctx, "vault/auth/missing", &out, Options{Encrypted: true})
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success_TamperedEntryReportsAbsent", func(t *testing.T) {
		f := newVaultFixture()
		opts := Options{Encrypted: true}
		require.NoError(t, f.store.Set(ctx, "vault/auth/credentials", testPayload{Name: "x"}, opts))

		f.session.entries["vault/auth/credentials"] = cryptoDomain.TagAESGCMV1 + "%%%garbage%%%"

		var out testPayload
		found, err := f.store.Get(ctx, "vault/auth/credentials", &out, opts)
		require.NoError(t, err, "undecodable entries must not surface errors")
		assert.False(t, found)
	})

	t.Run("Success_FallbackWriteServedFromMemory", func(t *testing.T) {
		f := newVaultFixture()
		opts := Options{Encrypted: true}

		f.session.failing = true
		require.NoError(t, f.store.Set(ctx, "vault/auth/credentials", testPayload{Name: "diverted"}, opts))

		var out testPayload
		found, err := f.store.Get(ctx, "vault/auth/credentials", &out, opts)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "diverted", out.Name)
	})

	t.Run("Success_ObfuscatedFallbackRoundTrip", func(t *testing.T) {
		f := newVaultFixture()
		opts := Options{Encrypted: true}

		*f.probeState = false
		require.NoError(t, f.store.Set(ctx, "vault/auth/credentials", testPayload{Name: "degraded"}, opts))

		// Secure primitives come back; the obfuscated value stays readable
		*f.probeState = true
		var out testPayload
		found, err := f.store.Get(ctx, "vault/auth/credentials", &out, opts)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "degraded", out.Name)
	})

	t.Run("Error_InvalidKey", func(t *testing.T) {
		f := newVaultFixture()

		var out testPayload
		_, err := f.store.Get(ctx, "  ", &out, Options{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestStoreUseCase_Has(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ExistingKey", func(t *testing.T) {
		f := newVaultFixture()
		opts := Options{Encrypted: true}
		require.NoError(t, f.store.Set(ctx, "vault/auth/credentials", testPayload{}, opts))

		found, err := f.store.Has(ctx, "vault/auth/credentials", opts)
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("Success_AbsentKey", func(t *testing.T) {
		f := newVaultFixture()

		found, err := f.store.Has(ctx, "vault/auth/missing", Options{Encrypted: true})
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success_UnavailableTierReportsAbsent", func(t *testing.T) {
		f := newVaultFixture()
		f.session.failing = true

		found, err := f.store.Has(ctx, "vault/auth/credentials", Options{Encrypted: true})
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestStoreUseCase_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RemovesFromPreferredAndMemory", func(t *testing.T) {
		f := newVaultFixture()
		opts := Options{Encrypted: true}

		// First write diverted to memory, second lands in session
		f.session.failing = true
		require.NoError(t, f.store.Set(ctx, "vault/auth/credentials", testPayload{}, opts))
		f.session.failing = false
		require.NoError(t, f.store.Set(ctx, "vault/auth/credentials", testPayload{}, opts))

		require.NoError(t, f.store.Remove(ctx, "vault/auth/credentials", opts))

		found, err := f.store.Has(ctx, "vault/auth/credentials", opts)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success_RemovingAbsentKeyIsNoOp", func(t *testing.T) {
		f := newVaultFixture()

		assert.NoError(t, f.store.Remove(ctx, "vault/auth/missing", Options{Encrypted: true}))
	})
}
