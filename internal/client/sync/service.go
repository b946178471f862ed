package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/storekeeper/internal/client/storage"
)

//go:generate moq -out service_mock.go . Service

// Service локальный offline кэш клиента: снимки коллекций, время последней
// загрузки и буфер offline мутаций.
type Service interface {
	// SaveSnapshot сохраняет коллекцию целиком
	SaveSnapshot(ctx context.Context, collection string, items any) error

	// LoadSnapshot декодирует сохраненную коллекцию в dst
	// Returns storage.ErrSnapshotNotFound if collection was never cached
	LoadSnapshot(ctx context.Context, collection string, dst any) error

	// MarkRefreshed запоминает момент успешной загрузки коллекции с сервера
	MarkRefreshed(ctx context.Context, collection string) error

	// LastRefresh момент последней загрузки (нулевое время, если загрузок не было)
	LastRefresh(ctx context.Context, collection string) (time.Time, error)

	// AddPending записывает offline мутацию
	AddPending(ctx context.Context, m *storage.PendingMutation) error

	// ListPending возвращает offline мутации коллекции ("" - все)
	ListPending(ctx context.Context, collection string) ([]*storage.PendingMutation, error)

	// ClearPending очищает буфер коллекции ("" - весь буфер)
	ClearPending(ctx context.Context, collection string) (int, error)

	// GetPendingSyncCount возвращает количество записей, ожидающих отправки
	GetPendingSyncCount(ctx context.Context) (int, error)
}

type service struct {
	cache    storage.CacheStorage
	metadata storage.MetadataStorage
	pending  storage.PendingStorage
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new offline cache service
func NewService(cache storage.CacheStorage, metadata storage.MetadataStorage, pending storage.PendingStorage, logger *slog.Logger) Service {
	return &service{
		cache:    cache,
		metadata: metadata,
		pending:  pending,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *service) SaveSnapshot(ctx context.Context, collection string, items any) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s snapshot: %w", collection, err)
	}

	if err := s.cache.SaveSnapshot(ctx, collection, data); err != nil {
		return fmt.Errorf("failed to save %s snapshot: %w", collection, err)
	}
	return nil
}

func (s *service) LoadSnapshot(ctx context.Context, collection string, dst any) error {
	data, err := s.cache.GetSnapshot(ctx, collection)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s snapshot: %w", collection, err)
	}
	return nil
}

func (s *service) MarkRefreshed(ctx context.Context, collection string) error {
	return s.metadata.SaveLastRefresh(ctx, collection, s.now().UnixMilli())
}

func (s *service) LastRefresh(ctx context.Context, collection string) (time.Time, error) {
	ts, err := s.metadata.GetLastRefresh(ctx, collection)
	if err != nil {
		return time.Time{}, err
	}
	if ts == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(ts), nil
}

func (s *service) AddPending(ctx context.Context, m *storage.PendingMutation) error {
	if err := s.pending.AddPending(ctx, m); err != nil {
		return err
	}
	s.logger.Debug("Pending mutation recorded", "collection", m.Collection, "kind", m.Kind, "id", m.EntityID, "seq", m.Seq)
	return nil
}

func (s *service) ListPending(ctx context.Context, collection string) ([]*storage.PendingMutation, error) {
	return s.pending.ListPending(ctx, collection)
}

func (s *service) ClearPending(ctx context.Context, collection string) (int, error) {
	n, err := s.pending.ClearPending(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("failed to clear pending mutations: %w", err)
	}
	s.logger.Info("Pending mutations cleared", "collection", collection, "count", n)
	return n, nil
}

// GetPendingSyncCount returns number of mutations recorded while offline
func (s *service) GetPendingSyncCount(ctx context.Context) (int, error) {
	count, err := s.pending.CountPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending mutations: %w", err)
	}
	return count, nil
}

// Lister источник коллекции на сервере
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// LoadResult результат загрузки коллекции
type LoadResult[T any] struct {
	// RemoteErr ошибка сервера, из-за которой коллекция прочитана из кэша
	RemoteErr error
	Items     []T
	FromCache bool
}

// Load читает коллекцию: online - с сервера с обновлением кэша,
// offline или при ошибке сервера - из локального снимка.
func Load[T any](ctx context.Context, svc Service, remote Lister[T], collection string, offline bool, logger *slog.Logger) (*LoadResult[T], error) {
	res := &LoadResult[T]{}

	if !offline {
		items, err := remote.List(ctx)
		if err == nil {
			if err := svc.SaveSnapshot(ctx, collection, items); err != nil {
				logger.Warn("Failed to cache collection", "collection", collection, "error", err)
			} else if err := svc.MarkRefreshed(ctx, collection); err != nil {
				logger.Warn("Failed to save refresh time", "collection", collection, "error", err)
			}
			res.Items = items
			return res, nil
		}

		logger.Warn("Remote list failed, using local cache", "collection", collection, "error", err)
		res.RemoteErr = err
	}

	res.FromCache = true
	var items []T
	if err := svc.LoadSnapshot(ctx, collection, &items); err != nil {
		if !errors.Is(err, storage.ErrSnapshotNotFound) {
			return nil, err
		}
		if res.RemoteErr != nil {
			return nil, fmt.Errorf("%s is not cached locally: %w", collection, res.RemoteErr)
		}
	}
	if items == nil {
		items = []T{}
	}
	res.Items = items

	return res, nil
}

// Persister возвращает наблюдателя, сохраняющего каждое изменение коллекции в кэш
func Persister[T any](ctx context.Context, svc Service, collection string, logger *slog.Logger) func([]T) {
	ctx = context.WithoutCancel(ctx)
	return func(items []T) {
		if err := svc.SaveSnapshot(ctx, collection, items); err != nil {
			logger.Warn("Failed to persist local snapshot", "collection", collection, "error", err)
		}
	}
}
