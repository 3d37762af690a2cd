package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/intently/core"
	"github.com/poiesic/intently/storage"
)

// EntryRepository implements storage.EntryRepository for BadgerDB.
//
// Each entry is stored under its content-based ID together with two index
// records: an insertion-order key (rank, BigEndian-encoded so key order
// equals insertion order) pointing at the entry ID, and a reverse-lookup
// key from entry ID to rank for cleanup on delete.
type EntryRepository struct {
	backend *Backend
	rankSeq *badger.Sequence
}

var _ storage.EntryRepository = (*EntryRepository)(nil)

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(backend *Backend) (*EntryRepository, error) {
	rankSeq, err := backend.GetSequence(entryRankSeq)
	if err != nil {
		return nil, err
	}

	return &EntryRepository{
		backend: backend,
		rankSeq: rankSeq,
	}, nil
}

// Close releases the rank sequence.
func (r *EntryRepository) Close() error {
	return r.rankSeq.Release()
}

// AddEntries adds one or more knowledge entries to storage.
// Entries keep their content-based IDs. Vectors are stripped before
// persisting; only question and answer reach disk.
func (r *EntryRepository) AddEntries(ctx context.Context, entries ...*core.KnowledgeEntry) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			key := makeEntryKey(entry.Id)

			// Reject duplicates before touching indexes
			existing, err := r.readEntry(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				return storage.ErrDuplicateKey
			}

			rank, err := r.nextRank()
			if err != nil {
				return err
			}

			if err := tx.Set(key, storage.MarshalKnowledgeEntry(entry)); err != nil {
				return err
			}
			if err := tx.Set(makeEntryOrderKey(rank), storage.MarshalID(entry.Id)); err != nil {
				return err
			}
			if err := tx.Set(makeEntryRankKey(entry.Id), encodeRank(rank)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves a single knowledge entry by ID.
func (r *EntryRepository) GetEntry(ctx context.Context, id core.ID) (*core.KnowledgeEntry, error) {
	var result *core.KnowledgeEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readEntry(tx, makeEntryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListEntries retrieves all knowledge entries in insertion order.
func (r *EntryRepository) ListEntries(ctx context.Context) ([]*core.KnowledgeEntry, error) {
	var results []*core.KnowledgeEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryOrderPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entryID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				entryID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			entry, err := r.readEntry(tx, makeEntryKey(entryID))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteEntries removes knowledge entries by their IDs.
func (r *EntryRepository) DeleteEntries(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEntryKey(id)

			entry, err := r.readEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return storage.ErrNotFound
			}

			// Read the rank to clean up the insertion-order index
			rankKey := makeEntryRankKey(id)
			item, err := tx.Get(rankKey)
			if err != nil && err != badger.ErrKeyNotFound {
				return err
			}
			if err == nil {
				var rank uint64
				if err := item.Value(func(val []byte) error {
					rank = decodeRank(val)
					return nil
				}); err != nil {
					return err
				}
				if err := tx.Delete(makeEntryOrderKey(rank)); err != nil {
					return err
				}
				if err := tx.Delete(rankKey); err != nil {
					return err
				}
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Count returns the number of stored entries.
func (r *EntryRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// nextRank returns the next insertion rank from the sequence.
func (r *EntryRepository) nextRank() (uint64, error) {
	rank, err := r.rankSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if rank == 0 {
		rank, err = r.rankSeq.Next()
		if err != nil {
			return 0, err
		}
	}
	return rank, nil
}

// readEntry reads a knowledge entry from the transaction.
func (r *EntryRepository) readEntry(tx *badger.Txn, key []byte) (*core.KnowledgeEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.KnowledgeEntry
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		entry, unmarshalErr = storage.UnmarshalKnowledgeEntry(val)
		return unmarshalErr
	})
	return entry, err
}
