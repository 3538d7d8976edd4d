// Package repository implements encryption-key persistence for the local
// SQLite database.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/localvault/internal/database"
	apperrors "github.com/allisson/localvault/internal/errors"
	keysDomain "github.com/allisson/localvault/internal/keys/domain"
)

// SQLiteKeyRepository persists encryption keys in the encryption_keys table.
// Uses database.GetTx so operations participate in an ambient transaction
// when one is present.
type SQLiteKeyRepository struct {
	db *sql.DB
}

// NewSQLiteKeyRepository creates a new SQLiteKeyRepository.
func NewSQLiteKeyRepository(db *sql.DB) *SQLiteKeyRepository {
	return &SQLiteKeyRepository{db: db}
}

// Get retrieves the encryption key with the given identifier.
// Returns ErrKeyNotFound when no key has been persisted yet.
func (r *SQLiteKeyRepository) Get(ctx context.Context, id string) (*keysDomain.EncryptionKey, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, material, wrapped, created_at
			  FROM encryption_keys
			  WHERE id = ?`

	var key keysDomain.EncryptionKey
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&key.ID,
		&key.Material,
		&key.Wrapped,
		&key.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, keysDomain.ErrKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get encryption key")
	}

	return &key, nil
}

// Save inserts the encryption key, or overwrites an existing row with the
// same identifier. Concurrent first-time generation races resolve to
// last-writer-wins, which is the accepted behavior.
func (r *SQLiteKeyRepository) Save(ctx context.Context, key *keysDomain.EncryptionKey) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO encryption_keys (id, material, wrapped, created_at)
			  VALUES (?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET
			  	material = excluded.material,
				wrapped = excluded.wrapped,
				created_at = excluded.created_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		key.ID,
		key.Material,
		key.Wrapped,
		key.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to save encryption key")
	}
	return nil
}
