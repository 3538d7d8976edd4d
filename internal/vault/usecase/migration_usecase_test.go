package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/localvault/internal/crypto/domain"
	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
)

func TestMigrationUseCase_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_LegacyEntriesUpgraded", func(t *testing.T) {
		f := newVaultFixture()
		legacy := f.obfuscator.Obfuscate([]byte(`{"token":"old-token"}`))
		require.NoError(t, f.session.Set(ctx, "vault/auth/credentials", legacy))

		report, err := f.newMigration().Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Scanned)
		assert.Equal(t, 1, report.Migrated)
		assert.Equal(t, 0, report.Failed)

		// The entry now carries the encrypted scheme tag and still decodes
		// to the original value
		encoded := f.session.entries["vault/auth/credentials"]
		assert.True(t, strings.HasPrefix(encoded, cryptoDomain.TagAESGCMV1))

		plaintext, err := f.codec.Decode(ctx, encoded, true)
		require.NoError(t, err)
		assert.JSONEq(t, `{"token":"old-token"}`, string(plaintext))
	})

	t.Run("Success_RawJSONEntriesUpgraded", func(t *testing.T) {
		f := newVaultFixture()
		require.NoError(t, f.persistent.Set(ctx, "vault/auth/oldest", `{"token":"ancient"}`))

		report, err := f.newMigration().Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Migrated)

		encoded := f.persistent.entries["vault/auth/oldest"]
		assert.True(t, strings.HasPrefix(encoded, cryptoDomain.TagAESGCMV1))
	})

	t.Run("Success_SecondRunIsNoOp", func(t *testing.T) {
		f := newVaultFixture()
		legacy := f.obfuscator.Obfuscate([]byte(`{"token":"old"}`))
		require.NoError(t, f.session.Set(ctx, "vault/auth/credentials", legacy))

		migration := f.newMigration()

		first, err := migration.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, first.Migrated)

		afterFirst := f.session.entries["vault/auth/credentials"]

		second, err := migration.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, second.Migrated)
		assert.Equal(t, 1, second.Skipped)
		assert.Equal(t, afterFirst, f.session.entries["vault/auth/credentials"], "a skipped entry must not be rewritten")
	})

	t.Run("Success_ConfigNamespaceExcluded", func(t *testing.T) {
		f := newVaultFixture()
		require.NoError(t, f.persistent.Set(ctx, vaultDomain.NamespaceConfig+"endpoint", `{"url":"https://example.com"}`))

		report, err := f.newMigration().Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Scanned)
		assert.Equal(t, `{"url":"https://example.com"}`, f.persistent.entries[vaultDomain.NamespaceConfig+"endpoint"])
	})

	t.Run("Success_UndecodableEntryLeftInPlace", func(t *testing.T) {
		f := newVaultFixture()
		require.NoError(t, f.session.Set(ctx, "vault/auth/broken", "!!!neither-base64-nor-json!!!"))

		report, err := f.newMigration().Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, 0, report.Migrated)
		assert.Equal(t, "!!!neither-base64-nor-json!!!", f.session.entries["vault/auth/broken"], "data is never deleted by migration")
	})

	t.Run("Success_UnavailableTierSkipped", func(t *testing.T) {
		f := newVaultFixture()
		legacy := f.obfuscator.Obfuscate([]byte(`{"token":"old"}`))
		require.NoError(t, f.memory.Set(ctx, "vault/auth/credentials", legacy))
		f.session.failing = true

		report, err := f.newMigration().Run(ctx)
		require.NoError(t, err, "a down tier skips, it does not abort the pass")
		assert.Equal(t, 1, report.Migrated)
	})

	t.Run("Error_CancelledContextAborts", func(t *testing.T) {
		f := newVaultFixture()
		legacy := f.obfuscator.Obfuscate([]byte(`{"token":"old"}`))
		require.NoError(t, f.session.Set(ctx, "vault/auth/credentials", legacy))

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := f.newMigration().Run(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
