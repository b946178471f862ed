package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/storekeeper/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketAuth     = []byte("auth")
	bucketCache    = []byte("cache")
	bucketPending  = []byte("pending")
	bucketMetadata = []byte("metadata")
)

var allBuckets = [][]byte{bucketAuth, bucketCache, bucketPending, bucketMetadata}

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db *bbolt.DB
}

var (
	_ storage.AuthStorage     = (*Storage)(nil)
	_ storage.CacheStorage    = (*Storage)(nil)
	_ storage.PendingStorage  = (*Storage)(nil)
	_ storage.MetadataStorage = (*Storage)(nil)
)

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(fn)
}

func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.View(fn)
}
