package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastRefresh saves the unix time (ms) of the last successful pull of a collection
	SaveLastRefresh(ctx context.Context, collection string, timestamp int64) error

	// GetLastRefresh retrieves the time of the last successful pull
	// Returns 0 if the collection has never been pulled
	GetLastRefresh(ctx context.Context, collection string) (int64, error)
}
