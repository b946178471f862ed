package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

const keyLastRefreshPrefix = "last_refresh:"

// SaveLastRefresh saves the time of the last successful pull of a collection
func (s *Storage) SaveLastRefresh(ctx context.Context, collection string, timestamp int64) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Конвертируем int64 в bytes
		timestampBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(timestampBytes, uint64(timestamp))

		if err := bucket.Put([]byte(keyLastRefreshPrefix+collection), timestampBytes); err != nil {
			return fmt.Errorf("failed to save last refresh timestamp: %w", err)
		}

		return nil
	})
}

// GetLastRefresh retrieves the time of the last successful pull of a collection
// Returns 0 if the collection has never been pulled
func (s *Storage) GetLastRefresh(ctx context.Context, collection string) (int64, error) {
	var timestamp int64

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		timestampBytes := bucket.Get([]byte(keyLastRefreshPrefix + collection))
		if timestampBytes == nil {
			return nil
		}

		timestamp = int64(binary.BigEndian.Uint64(timestampBytes))
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to get last refresh timestamp: %w", err)
	}

	return timestamp, nil
}
