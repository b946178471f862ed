package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/internal/client/storage"
	"github.com/iudanet/storekeeper/internal/client/storage/boltdb"
	"github.com/iudanet/storekeeper/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) *service {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store, store, store, testLogger()).(*service)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

type listerFunc[T any] func(ctx context.Context) ([]T, error)

func (f listerFunc[T]) List(ctx context.Context) ([]T, error) {
	return f(ctx)
}

func TestService_Snapshot(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	var got []models.Category
	err := svc.LoadSnapshot(ctx, models.CollectionCategories, &got)
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)

	want := []models.Category{{ID: "c1", Name: "Tools", Description: "Hand tools"}}
	require.NoError(t, svc.SaveSnapshot(ctx, models.CollectionCategories, want))
	require.NoError(t, svc.LoadSnapshot(ctx, models.CollectionCategories, &got))
	assert.Equal(t, want, got)
}

func TestService_LastRefresh(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	ts, err := svc.LastRefresh(ctx, models.CollectionProducts)
	require.NoError(t, err)
	assert.True(t, ts.IsZero())

	require.NoError(t, svc.MarkRefreshed(ctx, models.CollectionProducts))
	ts, err = svc.LastRefresh(ctx, models.CollectionProducts)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), ts.UnixMilli())
}

func TestService_Pending(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	require.NoError(t, svc.AddPending(ctx, &storage.PendingMutation{Collection: "products", Kind: "delete", EntityID: "p1"}))
	require.NoError(t, svc.AddPending(ctx, &storage.PendingMutation{Collection: "categories", Kind: "delete", EntityID: "c1"}))

	n, err := svc.GetPendingSyncCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := svc.ListPending(ctx, "products")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p1", list[0].EntityID)

	removed, err := svc.ClearPending(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
}

func TestService_GetPendingSyncCount_Error(t *testing.T) {
	pending := &storage.PendingStorageMock{
		CountPendingFunc: func(ctx context.Context) (int, error) {
			return 0, storage.ErrStorageClosed
		},
	}
	svc := NewService(nil, nil, pending, testLogger())

	_, err := svc.GetPendingSyncCount(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestLoad(t *testing.T) {
	products := []models.Product{{ID: "p1", Name: "Hammer", Price: 10, Category: "Tools"}}
	cached := []models.Product{{ID: "p0", Name: "Old", Price: 1}}
	remoteErr := errors.New("connection refused")

	tests := []struct {
		remoteErr   error
		cached      []models.Product
		name        string
		want        []models.Product
		offline     bool
		wantErr     bool
		fromCache   bool
		wantRemote  bool
		wantRefresh bool
	}{
		{
			name:        "online refreshes cache",
			want:        products,
			wantRemote:  true,
			wantRefresh: true,
		},
		{
			name:       "offline reads cache",
			offline:    true,
			cached:     cached,
			want:       cached,
			fromCache:  true,
			wantRemote: false,
		},
		{
			name:      "offline without cache is empty",
			offline:   true,
			want:      []models.Product{},
			fromCache: true,
		},
		{
			name:       "remote error falls back to cache",
			remoteErr:  remoteErr,
			cached:     cached,
			want:       cached,
			fromCache:  true,
			wantRemote: true,
		},
		{
			name:       "remote error without cache",
			remoteErr:  remoteErr,
			wantErr:    true,
			wantRemote: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc := newTestService(t)
			if tt.cached != nil {
				require.NoError(t, svc.SaveSnapshot(ctx, "products", tt.cached))
			}

			called := false
			remote := listerFunc[models.Product](func(ctx context.Context) ([]models.Product, error) {
				called = true
				if tt.remoteErr != nil {
					return nil, tt.remoteErr
				}
				return products, nil
			})

			res, err := Load[models.Product](ctx, svc, remote, "products", tt.offline, testLogger())
			assert.Equal(t, tt.wantRemote, called)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.remoteErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Items)
			assert.Equal(t, tt.fromCache, res.FromCache)
			if tt.remoteErr != nil {
				assert.ErrorIs(t, res.RemoteErr, tt.remoteErr)
			}

			refreshed, err := svc.LastRefresh(ctx, "products")
			require.NoError(t, err)
			assert.Equal(t, tt.wantRefresh, !refreshed.IsZero())

			if tt.wantRefresh {
				var snap []models.Product
				require.NoError(t, svc.LoadSnapshot(ctx, "products", &snap))
				assert.Equal(t, products, snap)
			}
		})
	}
}

func TestLoad_SaveFailureIsNotFatal(t *testing.T) {
	svc := &ServiceMock{
		SaveSnapshotFunc: func(ctx context.Context, collection string, items any) error {
			return storage.ErrStorageClosed
		},
	}
	remote := listerFunc[models.Category](func(ctx context.Context) ([]models.Category, error) {
		return []models.Category{{ID: "c1", Name: "Tools"}}, nil
	})

	res, err := Load[models.Category](context.Background(), svc, remote, "categories", false, testLogger())
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Len(t, svc.SaveSnapshotCalls(), 1)
	assert.Empty(t, svc.MarkRefreshedCalls())
}

func TestPersister(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	persist := Persister[models.Category](ctx, svc, "categories", testLogger())
	persist([]models.Category{{ID: "temp_1", Name: "Tools"}})

	var got []models.Category
	require.NoError(t, svc.LoadSnapshot(ctx, "categories", &got))
	assert.Equal(t, []models.Category{{ID: "temp_1", Name: "Tools"}}, got)
}
