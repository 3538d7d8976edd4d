package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/localvault/internal/database"
	apperrors "github.com/allisson/localvault/internal/errors"
	vaultDomain "github.com/allisson/localvault/internal/vault/domain"
)

// SQLiteEntryStore persists entries in the entries table of the local
// database. It is the persistent tier: entries survive reboots. Uses
// database.GetTx so operations participate in an ambient transaction when
// one is present, which the legacy migration pass relies on.
type SQLiteEntryStore struct {
	db *sql.DB
}

// NewSQLiteEntryStore creates a new SQLiteEntryStore.
func NewSQLiteEntryStore(db *sql.DB) *SQLiteEntryStore {
	return &SQLiteEntryStore{db: db}
}

// Tier returns TierPersistent.
func (s *SQLiteEntryStore) Tier() vaultDomain.Tier {
	return vaultDomain.TierPersistent
}

// Get retrieves the encoded payload stored under key.
func (s *SQLiteEntryStore) Get(ctx context.Context, key string) (string, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT encoded FROM entries WHERE key = ?`

	var encoded string
	err := querier.QueryRowContext(ctx, query, key).Scan(&encoded)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", vaultDomain.ErrEntryNotFound
		}
		return "", apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}
	return encoded, nil
}

// Set stores the encoded payload under key, replacing any previous value.
func (s *SQLiteEntryStore) Set(ctx context.Context, key, encoded string) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO entries (key, encoded, updated_at)
			  VALUES (?, ?, ?)
			  ON CONFLICT(key) DO UPDATE SET
			  	encoded = excluded.encoded,
				updated_at = excluded.updated_at`

	_, err := querier.ExecContext(ctx, query, key, encoded, time.Now().UTC())
	if err != nil {
		return apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}
	return nil
}

// Remove deletes the entry under key. Removing an absent key is a no-op.
func (s *SQLiteEntryStore) Remove(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, s.db)

	query := `DELETE FROM entries WHERE key = ?`

	_, err := querier.ExecContext(ctx, query, key)
	if err != nil {
		return apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}
	return nil
}

// Keys returns all stored keys carrying the given prefix.
func (s *SQLiteEntryStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT key FROM entries WHERE key LIKE ? ORDER BY key`

	rows, err := querier.QueryContext(ctx, query, prefix+"%")
	if err != nil {
		return nil, apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(vaultDomain.ErrTierUnavailable, err.Error())
	}
	return keys, nil
}
