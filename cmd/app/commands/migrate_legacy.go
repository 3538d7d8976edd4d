package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	vaultUsecase "github.com/allisson/localvault/internal/vault/usecase"
)

// RunMigrateLegacy performs one migration pass upgrading legacy-obfuscated
// entries to authenticated encryption. The pass is idempotent; running it
// again finds nothing left to migrate.
//
// Requirements: Database must be migrated.
func RunMigrateLegacy(
	ctx context.Context,
	migration vaultUsecase.MigrationUseCase,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	logger.Info("starting legacy migration pass")

	report, err := migration.Run(ctx)
	if err != nil {
		return fmt.Errorf("migration pass failed: %w", err)
	}

	if format == "json" {
		return writeJSON(w, map[string]any{
			"scanned":  report.Scanned,
			"migrated": report.Migrated,
			"skipped":  report.Skipped,
			"failed":   report.Failed,
		})
	}

	fmt.Fprintf(w, "Scanned %d entr%s: %d migrated, %d already current, %d failed\n",
		report.Scanned, plural(report.Scanned), report.Migrated, report.Skipped, report.Failed)
	return nil
}

// plural returns the noun suffix for entry counts.
func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
