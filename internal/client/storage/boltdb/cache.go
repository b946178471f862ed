package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/storekeeper/internal/client/storage"
)

// SaveSnapshot заменяет локальный снимок коллекции
func (s *Storage) SaveSnapshot(ctx context.Context, collection string, data []byte) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return fmt.Errorf("cache bucket not found")
		}

		if err := bucket.Put([]byte(collection), data); err != nil {
			return fmt.Errorf("failed to save %s snapshot: %w", collection, err)
		}
		return nil
	})
}

// GetSnapshot возвращает копию снимка коллекции
func (s *Storage) GetSnapshot(ctx context.Context, collection string) ([]byte, error) {
	var out []byte

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCache)
		if bucket == nil {
			return fmt.Errorf("cache bucket not found")
		}

		data := bucket.Get([]byte(collection))
		if data == nil {
			return storage.ErrSnapshotNotFound
		}

		// значение валидно только внутри транзакции
		out = make([]byte, len(data))
		copy(out, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
