package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_LastRefresh(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Коллекция еще не загружалась
	ts, err := store.GetLastRefresh(ctx, "products")
	require.NoError(t, err)
	assert.Zero(t, ts)

	require.NoError(t, store.SaveLastRefresh(ctx, "products", 1700000000123))
	require.NoError(t, store.SaveLastRefresh(ctx, "books", 42))

	ts, err = store.GetLastRefresh(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000123), ts)

	ts, err = store.GetLastRefresh(ctx, "books")
	require.NoError(t, err)
	assert.Equal(t, int64(42), ts)

	ts, err = store.GetLastRefresh(ctx, "categories")
	require.NoError(t, err)
	assert.Zero(t, ts)
}
