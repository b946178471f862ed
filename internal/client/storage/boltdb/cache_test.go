package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/internal/client/storage"
)

func TestStorage_Snapshot(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.GetSnapshot(ctx, "products")
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)

	require.NoError(t, store.SaveSnapshot(ctx, "products", []byte(`[{"id":"p1"}]`)))
	require.NoError(t, store.SaveSnapshot(ctx, "categories", []byte(`[]`)))

	got, err := store.GetSnapshot(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, string(got))

	// Замена снимка
	require.NoError(t, store.SaveSnapshot(ctx, "products", []byte(`[{"id":"p2"}]`)))
	got, err = store.GetSnapshot(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p2"}]`, string(got))

	got, err = store.GetSnapshot(ctx, "categories")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}
