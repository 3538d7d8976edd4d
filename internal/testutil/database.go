// Package testutil provides testing utilities for database-backed tests.
//
// Database Setup:
//
//	db := testutil.SetupSQLiteDB(t)
//
// Each test gets a private database file under t.TempDir() with all
// migrations applied; cleanup is automatic.
//
// Migration Path:
//
// Migrations are discovered by walking up from the current working directory
// until a "migrations/sqlite" directory is found.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// SetupSQLiteDB creates a temporary SQLite database and runs all migrations.
func SetupSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "localvault-test.db")
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path))
	require.NoError(t, err, "failed to open sqlite database")

	err = db.Ping()
	require.NoError(t, err, "failed to ping sqlite database")

	runMigrations(t, db)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// runMigrations applies all pending migrations to the test database.
func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	require.NoError(t, err, "failed to create sqlite migrate driver")

	migrationsPath, err := getMigrationsPath()
	require.NoError(t, err, "failed to find sqlite migrations path")

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	require.NoError(t, err, "failed to create migrate instance")

	// Note: the migrate instance is intentionally not closed because it was
	// created with WithInstance() over a connection the caller owns; closing
	// it would close that connection.

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, fmt.Sprintf("failed to run migrations from %s", migrationsPath))
	}
}

// getMigrationsPath resolves the absolute path to the migration files.
// Walks up the directory tree from the current working directory.
func getMigrationsPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		migrationsPath := filepath.Join(dir, "migrations", "sqlite")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the root directory
			return "", fmt.Errorf("migrations directory not found (started from %s)", dir)
		}
		dir = parent
	}
}
