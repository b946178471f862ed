package boltdb

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/internal/client/storage"
)

func TestStorage_Pending(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	n, err := store.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	muts := []*storage.PendingMutation{
		{Collection: "products", Kind: "create", EntityID: "temp_1", Payload: json.RawMessage(`{"name":"Hammer"}`), Timestamp: 1},
		{Collection: "categories", Kind: "delete", EntityID: "c1", Timestamp: 2},
		{Collection: "products", Kind: "delete", EntityID: "p1", Timestamp: 3},
	}
	for _, m := range muts {
		require.NoError(t, store.AddPending(ctx, m))
	}

	// Seq назначается по порядку добавления
	assert.Equal(t, uint64(1), muts[0].Seq)
	assert.Equal(t, uint64(2), muts[1].Seq)
	assert.Equal(t, uint64(3), muts[2].Seq)

	n, err = store.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	products, err := store.ListPending(ctx, "products")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "temp_1", products[0].EntityID)
	assert.JSONEq(t, `{"name":"Hammer"}`, string(products[0].Payload))
	assert.Equal(t, "p1", products[1].EntityID)

	all, err := store.ListPending(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, m := range all {
		assert.Equal(t, uint64(i+1), m.Seq)
	}

	removed, err := store.ClearPending(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	rest, err := store.ListPending(ctx, "")
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "categories", rest[0].Collection)

	removed, err = store.ClearPending(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	n, err = store.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStorage_AddPending_RequiresCollection(t *testing.T) {
	store := createTestStorage(t)

	assert.Error(t, store.AddPending(context.Background(), &storage.PendingMutation{Kind: "create"}))
	assert.Error(t, store.AddPending(context.Background(), nil))
}

func TestStorage_ListPending_PrefixIsolation(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.AddPending(ctx, &storage.PendingMutation{Collection: "book", Kind: "delete", EntityID: "x"}))
	require.NoError(t, store.AddPending(ctx, &storage.PendingMutation{Collection: "books", Kind: "delete", EntityID: "y"}))

	got, err := store.ListPending(ctx, "book")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].EntityID)
}
