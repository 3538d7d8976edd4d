package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending database migrations to the local SQLite
// database. Returns nil if no migrations to apply. Logs migration progress
// and success.
func RunMigrations(logger *slog.Logger, dbPath string) error {
	logger.Info("running database migrations",
		slog.String("db_path", dbPath),
	)

	m, err := migrate.New("file://migrations/sqlite", "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
