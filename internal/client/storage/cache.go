package storage

import "context"

//go:generate moq -out cache_mock.go . CacheStorage

// CacheStorage хранит последний известный снимок каждой коллекции.
// Снимок - JSON массив записей в порядке сервера.
type CacheStorage interface {
	// SaveSnapshot заменяет снимок коллекции
	SaveSnapshot(ctx context.Context, collection string, data []byte) error

	// GetSnapshot возвращает снимок коллекции
	// Returns ErrSnapshotNotFound if collection was never cached
	GetSnapshot(ctx context.Context, collection string) ([]byte, error)
}
