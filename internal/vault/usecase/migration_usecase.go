package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/localvault/internal/crypto/domain"
	"github.com/allisson/localvault/internal/database"
	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
	vaultService "github.com/allisson/localvault/internal/vault/service"
)

// migrationUseCase implements MigrationUseCase.
//
// The pass walks every tier, finds entries still in the legacy obfuscated
// form and rewrites them under authenticated encryption. Entries already
// tagged are skipped, so running the pass twice is a no-op. Entries that
// cannot be decoded are logged and left exactly as they were; deleting data
// is never the migration's call to make.
//
// The config namespace is excluded: its entries are plaintext by policy, not
// leftovers from the pre-encryption era.
type migrationUseCase struct {
	stores    []vaultService.EntryStore
	codec     vaultService.Codec
	txManager database.TxManager
	logger    *slog.Logger
}

// NewMigrationUseCase creates a new MigrationUseCase over the given stores.
func NewMigrationUseCase(
	stores []vaultService.EntryStore,
	codec vaultService.Codec,
	txManager database.TxManager,
	logger *slog.Logger,
) MigrationUseCase {
	return &migrationUseCase{
		stores:    stores,
		codec:     codec,
		txManager: txManager,
		logger:    logger,
	}
}

// Run performs one idempotent migration pass over all tiers. Each pass gets
// a run id so its log lines can be correlated.
func (m *migrationUseCase) Run(ctx context.Context) (MigrationReport, error) {
	var report MigrationReport

	logger := m.logger.With(slog.String("migration_run_id", uuid.NewString()))
	logger.Info("legacy migration pass started")

	for _, store := range m.stores {
		if err := m.migrateStore(ctx, logger, store, &report); err != nil {
			return report, err
		}
	}

	logger.Info("legacy migration pass finished",
		slog.Int("scanned", report.Scanned),
		slog.Int("migrated", report.Migrated),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

// migrateStore migrates every eligible entry of one tier.
//
// A tier that cannot list its keys is skipped for this pass; the next run
// picks its entries up. Only a cancelled context aborts the pass.
func (m *migrationUseCase) migrateStore(ctx context.Context, logger *slog.Logger, store vaultService.EntryStore, report *MigrationReport) error {
	keys, err := store.Keys(ctx, "")
	if err != nil {
		logger.Warn("storage tier unavailable, skipping for this pass",
			slog.String("tier", string(store.Tier())),
			slog.Any("error", err),
		)
		return nil
	}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.HasPrefix(key, vaultDomain.NamespaceConfig) {
			continue
		}

		report.Scanned++
		m.migrateEntry(ctx, logger, store, key, report)
	}
	return nil
}

// migrateEntry upgrades a single entry in place. On the persistent tier the
// read-reencode-overwrite runs inside a transaction, so a crash mid-write
// leaves the legacy entry intact instead of half-migrated.
func (m *migrationUseCase) migrateEntry(ctx context.Context, logger *slog.Logger, store vaultService.EntryStore, key string, report *MigrationReport) {
	run := func(ctx context.Context) error {
		encoded, err := store.Get(ctx, key)
		if err != nil {
			return err
		}

		envelope, err := cryptoDomain.ParseEnvelope(encoded)
		if err != nil {
			return err
		}
		if _, encrypted := envelope.Algorithm(); encrypted {
			report.Skipped++
			return nil
		}

		plaintext, err := m.codec.Decode(ctx, encoded, true)
		if err != nil {
			return err
		}

		reencoded, err := m.codec.Encode(ctx, plaintext, true)
		if err != nil {
			return err
		}
		if err := store.Set(ctx, key, reencoded); err != nil {
			return err
		}

		report.Migrated++
		return nil
	}

	var err error
	if store.Tier() == vaultDomain.TierPersistent {
		err = m.txManager.WithTx(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		report.Failed++
		logger.Warn("entry could not be migrated, leaving it in place",
			slog.String("tier", string(store.Tier())),
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
