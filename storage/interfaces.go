package storage

import (
	"context"

	"github.com/poiesic/intently/core"
)

// EntryRepository provides operations for managing durable knowledge entries.
// Implementations must be thread-safe and preserve insertion order.
type EntryRepository interface {
	// AddEntries adds one or more knowledge entries to storage.
	// Entries keep their content-based IDs; an entry whose ID already
	// exists returns ErrDuplicateKey. Vectors are never persisted.
	AddEntries(ctx context.Context, entries ...*core.KnowledgeEntry) error

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.KnowledgeEntry, error)

	// ListEntries retrieves all entries in insertion order.
	ListEntries(ctx context.Context) ([]*core.KnowledgeEntry, error)

	// DeleteEntries removes entries by their IDs.
	// Returns ErrNotFound if any entry doesn't exist.
	DeleteEntries(ctx context.Context, ids ...core.ID) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}
