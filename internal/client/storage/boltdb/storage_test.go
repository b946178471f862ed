package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/storekeeper/internal/client/storage"
)

// createTestStorage открывает BoltDB во временном каталоге
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestNew_Success(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	err = store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range allBuckets {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "db"))
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "testdb.db"))
	require.NoError(t, err)

	require.NoError(t, store.Close())
	assert.Nil(t, store.db)

	// Второй вызов Close ничего не делает
	assert.NoError(t, store.Close())

	ctx := context.Background()
	_, err = store.GetSnapshot(ctx, "products")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.AddPending(ctx, &storage.PendingMutation{Collection: "products"}), storage.ErrStorageClosed)
}

func TestInitBuckets_CreatesBuckets(t *testing.T) {
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "testdb.db"), 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	store := &Storage{db: db}
	require.NoError(t, store.initBuckets())
	// повторная инициализация идемпотентна
	require.NoError(t, store.initBuckets())

	err = db.View(func(tx *bbolt.Tx) error {
		for _, b := range allBuckets {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestReopen_KeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "client.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveSnapshot(ctx, "categories", []byte(`[{"id":"c1"}]`)))
	require.NoError(t, store.AddPending(ctx, &storage.PendingMutation{Collection: "categories", Kind: "delete", EntityID: "c1"}))
	require.NoError(t, store.Close())

	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	snap, err := store.GetSnapshot(ctx, "categories")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"c1"}]`, string(snap))

	n, err := store.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
