package storage

import "errors"

// Common storage errors
var (
	// ErrEntryNotFound indicates that document was not found in collection
	ErrEntryNotFound = errors.New("entry not found")

	// ErrEntryExists indicates that document with this id already exists
	ErrEntryExists = errors.New("entry already exists")
)
