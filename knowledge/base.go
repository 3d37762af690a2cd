package knowledge

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/intently/ai"
	"github.com/poiesic/intently/core"
	"github.com/poiesic/intently/storage"
)

const defaultBatchSize = 16

// Base is the knowledge base: an ordered, deduplicated set of canonical
// question/answer entries with lazily computed embeddings.
type Base struct {
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger

	mu      sync.RWMutex
	entries []*core.KnowledgeEntry
	index   map[core.ID]*core.KnowledgeEntry
	dim     int
}

// Option configures a Base.
type Option func(*Base) error

// WithPoolSize sets the worker pool size used by EnsureEmbedded.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Base) error {
		if size < 1 {
			size = 1
		}

		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		b.pool = pool
		return nil
	}
}

// WithBatchSize sets how many questions are sent to the provider per
// embedding call during EnsureEmbedded. Default is 16.
func WithBatchSize(size int) Option {
	return func(b *Base) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Base) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBase creates an empty knowledge base using the provider's embedder.
func NewBase(provider ai.EmbeddingProvider, opts ...Option) (*Base, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Base{
		embedder:  provider.Embedder(),
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
		index:     make(map[core.ID]*core.KnowledgeEntry),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(b); err != nil {
			b.pool.Release()
			return nil, err
		}
	}

	return b, nil
}

// Release frees the worker pool. The base remains readable afterwards but
// EnsureEmbedded must not be called again.
func (b *Base) Release() {
	b.pool.Release()
}

// AddEntry appends a new entry with the embedding left absent. It never
// calls the embedding provider. The entry's ID is derived from the question
// text; adding the same question twice returns the existing entry and
// ErrDuplicateQuestion.
func (b *Base) AddEntry(question, answer string) (*core.KnowledgeEntry, error) {
	entry := &core.KnowledgeEntry{
		Id:       core.IDFromContent(question),
		Question: question,
		Answer:   answer,
	}
	if err := core.ValidateKnowledgeEntry(entry); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.index[entry.Id]; ok {
		return existing, fmt.Errorf("%w: %q", ErrDuplicateQuestion, question)
	}

	b.entries = append(b.entries, entry)
	b.index[entry.Id] = entry
	return entry, nil
}

// RemoveEntry deletes the entry with the given ID, preserving the order of
// the remaining entries. It reports whether an entry was removed.
func (b *Base) RemoveEntry(id core.ID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.index[id]; !ok {
		return false
	}
	delete(b.index, id)
	for i, entry := range b.entries {
		if entry.Id == id {
			b.entries = slices.Delete(b.entries, i, i+1)
			break
		}
	}
	return true
}

// LoadFromRepository appends every stored entry, in stored order, that is
// not already present. Stored entries never carry embeddings; vectors are
// computed per process by EnsureEmbedded.
func (b *Base) LoadFromRepository(ctx context.Context, repo storage.EntryRepository) error {
	stored, err := repo.ListEntries(ctx)
	if err != nil {
		return err
	}

	for _, entry := range stored {
		if _, err := b.AddEntry(entry.Question, entry.Answer); err != nil {
			if errors.Is(err, ErrDuplicateQuestion) {
				continue
			}
			return err
		}
	}

	b.logger.Debug("loaded entries from repository", "count", len(stored))
	return nil
}

// Len returns the number of entries.
func (b *Base) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Dimension returns the embedding dimensionality established by
// EnsureEmbedded, or 0 if nothing has been embedded yet.
func (b *Base) Dimension() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dim
}

// Entries returns a restartable iterator over a stable snapshot of the
// entries, in insertion order. Callers must not mutate yielded entries.
func (b *Base) Entries() iter.Seq[*core.KnowledgeEntry] {
	b.mu.RLock()
	snapshot := make([]*core.KnowledgeEntry, len(b.entries))
	copy(snapshot, b.entries)
	b.mu.RUnlock()

	return func(yield func(*core.KnowledgeEntry) bool) {
		for _, entry := range snapshot {
			if !yield(entry) {
				return
			}
		}
	}
}

// EnsureEmbedded embeds every entry that does not yet have a vector,
// batching questions through the embedder on the worker pool. Entries that
// already have vectors are skipped, so the call is idempotent.
//
// If any batch fails, the whole call fails and the entries of the failed
// batch keep their absent embedding; a later call embeds only what is still
// missing. The base is never left with a partially written vector.
func (b *Base) EnsureEmbedded(ctx context.Context) error {
	b.mu.RLock()
	var missing []*core.KnowledgeEntry
	for _, entry := range b.entries {
		if !entry.Embedded() {
			missing = append(missing, entry)
		}
	}
	b.mu.RUnlock()

	if len(missing) == 0 {
		return nil
	}

	b.logger.Info("embedding knowledge entries", "missing", len(missing), "batchSize", b.batchSize)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for start := 0; start < len(missing); start += b.batchSize {
		end := start + b.batchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			if err := b.embedBatch(ctx, batch); err != nil {
				fail(err)
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("ensure embedded: %w", firstErr)
	}
	return nil
}

// embedBatch embeds one batch of entries and stores the vectors.
// Vectors are assigned under the write lock only after the whole batch
// validated, so readers never observe a half-populated batch.
func (b *Base) embedBatch(ctx context.Context, batch []*core.KnowledgeEntry) error {
	questions := make([]string, len(batch))
	for i, entry := range batch {
		questions[i] = entry.Question
	}

	vectors, err := b.embedder.EmbedTexts(ctx, questions)
	if err != nil {
		b.logger.Error("error embedding batch", "size", len(batch), "err", err)
		return err
	}

	if len(vectors) != len(batch) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(vectors))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, vector := range vectors {
		if b.dim == 0 {
			b.dim = len(vector)
			continue
		}
		if len(vector) != b.dim {
			return fmt.Errorf("%w: expected %d, received %d", ErrDimensionMismatch, b.dim, len(vector))
		}
	}

	for i, entry := range batch {
		entry.Vector = vectors[i]
	}
	return nil
}
