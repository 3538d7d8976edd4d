package repository

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keysDomain "github.com/allisson/localvault/internal/keys/domain"
	"github.com/allisson/localvault/internal/testutil"
)

func TestNewSQLiteKeyRepository(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)

	repo := NewSQLiteKeyRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &SQLiteKeyRepository{}, repo)
}

func TestSQLiteKeyRepository_SaveAndGet(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteKeyRepository(db)
	ctx := context.Background()

	material := make([]byte, 32)
	_, err := rand.Read(material)
	require.NoError(t, err)

	key := &keysDomain.EncryptionKey{
		ID:        keysDomain.DeviceKeyID,
		Material:  material,
		Wrapped:   false,
		CreatedAt: time.Now().UTC(),
	}

	err = repo.Save(ctx, key)
	require.NoError(t, err)

	got, err := repo.Get(ctx, keysDomain.DeviceKeyID)
	require.NoError(t, err)
	assert.Equal(t, key.ID, got.ID)
	assert.Equal(t, material, got.Material)
	assert.False(t, got.Wrapped)
}

func TestSQLiteKeyRepository_Get_NotFound(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteKeyRepository(db)

	_, err := repo.Get(context.Background(), keysDomain.DeviceKeyID)
	assert.ErrorIs(t, err, keysDomain.ErrKeyNotFound)
}

func TestSQLiteKeyRepository_Save_LastWriterWins(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	repo := NewSQLiteKeyRepository(db)
	ctx := context.Background()

	first := &keysDomain.EncryptionKey{
		ID:        keysDomain.DeviceKeyID,
		Material:  []byte("first-key-material-32-bytes-long"),
		CreatedAt: time.Now().UTC(),
	}
	second := &keysDomain.EncryptionKey{
		ID:        keysDomain.DeviceKeyID,
		Material:  []byte("second-key-material-32-byteslng!"),
		Wrapped:   true,
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Get(ctx, keysDomain.DeviceKeyID)
	require.NoError(t, err)
	assert.Equal(t, second.Material, got.Material)
	assert.True(t, got.Wrapped)
}

func TestSQLiteKeyRepository_Save_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO encryption_keys").
		WillReturnError(assert.AnError)

	repo := NewSQLiteKeyRepository(db)
	err = repo.Save(context.Background(), &keysDomain.EncryptionKey{
		ID:        keysDomain.DeviceKeyID,
		Material:  []byte("material"),
		CreatedAt: time.Now().UTC(),
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
