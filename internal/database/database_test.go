package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	cfg := Config{
		Path:               filepath.Join(t.TempDir(), "nested", "vault.db"),
		MaxOpenConnections: 1,
		MaxIdleConnections: 1,
		ConnMaxLifetime:    time.Hour,
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// Parent directory is created on demand
	assert.FileExists(t, cfg.Path)

	var fk int
	err = db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}

func TestConnect_Error(t *testing.T) {
	// A directory path is not a valid database file
	cfg := Config{
		Path:               t.TempDir(),
		MaxOpenConnections: 1,
		MaxIdleConnections: 1,
		ConnMaxLifetime:    time.Hour,
	}

	db, err := Connect(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestDSN(t *testing.T) {
	dsn := DSN("/tmp/vault.db")
	assert.Contains(t, dsn, "file:")
	assert.Contains(t, dsn, "busy_timeout(5000)")
	assert.Contains(t, dsn, "foreign_keys(1)")
}
