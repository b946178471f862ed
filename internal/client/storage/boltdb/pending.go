package boltdb

import (
	"bytes"
	"cmp"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"slices"

	"go.etcd.io/bbolt"

	"github.com/iudanet/storekeeper/internal/client/storage"
)

// Ключ записи: <collection>/<seq big endian>.
// Курсор bbolt отдает записи коллекции в порядке добавления.
func pendingKey(collection string, seq uint64) []byte {
	key := make([]byte, 0, len(collection)+1+8)
	key = append(key, collection...)
	key = append(key, '/')
	return binary.BigEndian.AppendUint64(key, seq)
}

// AddPending добавляет мутацию в буфер, Seq назначается хранилищем
func (s *Storage) AddPending(ctx context.Context, m *storage.PendingMutation) error {
	if m == nil || m.Collection == "" {
		return fmt.Errorf("pending mutation must have a collection")
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return fmt.Errorf("pending bucket not found")
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate pending sequence: %w", err)
		}
		m.Seq = seq

		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal pending mutation: %w", err)
		}

		if err := bucket.Put(pendingKey(m.Collection, seq), data); err != nil {
			return fmt.Errorf("failed to save pending mutation: %w", err)
		}
		return nil
	})
}

// ListPending возвращает мутации коллекции ("" - все) в порядке Seq
func (s *Storage) ListPending(ctx context.Context, collection string) ([]*storage.PendingMutation, error) {
	var result []*storage.PendingMutation

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return fmt.Errorf("pending bucket not found")
		}

		return forEachPending(bucket.Cursor(), collection, func(_ []byte, v []byte) error {
			var m storage.PendingMutation
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("failed to unmarshal pending mutation: %w", err)
			}
			result = append(result, &m)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// ключи сгруппированы по коллекциям, глобальный порядок - по Seq
	if collection == "" {
		slices.SortFunc(result, func(a, b *storage.PendingMutation) int {
			return cmp.Compare(a.Seq, b.Seq)
		})
	}

	return result, nil
}

// CountPending возвращает общее количество мутаций в буфере
func (s *Storage) CountPending(ctx context.Context) (int, error) {
	var count int

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return fmt.Errorf("pending bucket not found")
		}
		count = bucket.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending mutations: %w", err)
	}

	return count, nil
}

// ClearPending удаляет мутации коллекции ("" - все)
func (s *Storage) ClearPending(ctx context.Context, collection string) (int, error) {
	var removed int

	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return fmt.Errorf("pending bucket not found")
		}

		var keys [][]byte
		err := forEachPending(bucket.Cursor(), collection, func(k []byte, _ []byte) error {
			keys = append(keys, bytes.Clone(k))
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range keys {
			if err := bucket.Delete(k); err != nil {
				return fmt.Errorf("failed to delete pending mutation: %w", err)
			}
		}
		removed = len(keys)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

func forEachPending(c *bbolt.Cursor, collection string, fn func(k, v []byte) error) error {
	if collection == "" {
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if err := fn(k, v); err != nil {
				return err
			}
		}
		return nil
	}

	prefix := []byte(collection + "/")
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}
