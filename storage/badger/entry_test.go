package badger

import (
	"context"
	"testing"

	"github.com/poiesic/intently/core"
	"github.com/poiesic/intently/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry(question, answer string) *core.KnowledgeEntry {
	return &core.KnowledgeEntry{
		Id:       core.IDFromContent(question),
		Question: question,
		Answer:   answer,
	}
}

func TestAddEntries(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	t.Run("single entry roundtrip", func(t *testing.T) {
		entry := newTestEntry("What are the library's opening hours?", "9am to 5pm on weekdays.")
		require.NoError(t, repo.AddEntries(ctx, entry))

		got, err := repo.GetEntry(ctx, entry.Id)
		require.NoError(t, err)
		assert.Equal(t, entry.Id, got.Id)
		assert.Equal(t, entry.Question, got.Question)
		assert.Equal(t, entry.Answer, got.Answer)
	})

	t.Run("duplicate entry rejected", func(t *testing.T) {
		entry := newTestEntry("How do I reset my password?", "Use the account settings page.")
		require.NoError(t, repo.AddEntries(ctx, entry))

		err := repo.AddEntries(ctx, newTestEntry("How do I reset my password?", "Different answer."))
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("vector never persisted", func(t *testing.T) {
		entry := newTestEntry("What is the refund policy?", "Refunds within 30 days.")
		entry.Vector = []float32{0.1, 0.2, 0.3}
		require.NoError(t, repo.AddEntries(ctx, entry))

		got, err := repo.GetEntry(ctx, entry.Id)
		require.NoError(t, err)
		assert.Nil(t, got.Vector)
	})
}

func TestGetEntry_NotFound(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	_, err = repo.GetEntry(context.Background(), core.ID(42))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListEntries_InsertionOrder(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	questions := []string{
		"What are the course fees?",
		"When does enrollment open?",
		"Is there a payment plan?",
		"Where is the campus located?",
		"Who do I contact for support?",
	}
	for i, q := range questions {
		require.NoError(t, repo.AddEntries(ctx, newTestEntry(q, "answer")), "entry %d", i)
	}

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, len(questions))

	for i, entry := range entries {
		assert.Equal(t, questions[i], entry.Question)
	}
}

func TestListEntries_Empty(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	entries, err := repo.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteEntries(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	first := newTestEntry("First question?", "First answer.")
	second := newTestEntry("Second question?", "Second answer.")
	third := newTestEntry("Third question?", "Third answer.")
	require.NoError(t, repo.AddEntries(ctx, first, second, third))

	require.NoError(t, repo.DeleteEntries(ctx, second.Id))

	_, err = repo.GetEntry(ctx, second.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Remaining entries keep their relative order
	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.Question, entries[0].Question)
	assert.Equal(t, third.Question, entries[1].Question)

	t.Run("missing entry", func(t *testing.T) {
		err := repo.DeleteEntries(ctx, core.ID(9999))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestCount(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, repo.AddEntries(ctx,
		newTestEntry("One?", "1"),
		newTestEntry("Two?", "2"),
	))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
