package match

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/intently/ai"
	"github.com/poiesic/intently/ai/mock"
	"github.com/poiesic/intently/core"
	"github.com/poiesic/intently/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedVectors wires a mock provider that embeds known texts to fixed
// vectors, so similarity scores are exact and controlled by the test.
func fixedVectors(vectors map[string][]float32) ai.EmbeddingProvider {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		v, ok := vectors[text]
		if !ok {
			return []float32{0, 0, 1}, nil
		}
		return v, nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			v, ok := vectors[text]
			if !ok {
				v = []float32{0, 0, 1}
			}
			out[i] = v
		}
		return out, nil
	}
	return mock.NewMockProviderWithEmbedder(embedder)
}

func newEmbeddedBase(t *testing.T, provider ai.EmbeddingProvider, pairs [][2]string) *knowledge.Base {
	t.Helper()

	base, err := knowledge.NewBase(provider)
	require.NoError(t, err)
	t.Cleanup(base.Release)

	for _, pair := range pairs {
		_, err := base.AddEntry(pair[0], pair[1])
		require.NoError(t, err)
	}
	require.NoError(t, base.EnsureEmbedded(context.Background()))
	return base
}

func TestNewMatcher(t *testing.T) {
	provider := mock.NewMockProvider()
	base, err := knowledge.NewBase(provider)
	require.NoError(t, err)
	defer base.Release()

	t.Run("valid configuration", func(t *testing.T) {
		matcher, err := NewMatcher(base, provider)
		require.NoError(t, err)
		assert.NotNil(t, matcher)
		assert.Equal(t, DefaultThreshold, matcher.Threshold())
	})

	t.Run("with custom threshold", func(t *testing.T) {
		matcher, err := NewMatcher(base, provider, WithThreshold(0.8))
		require.NoError(t, err)
		assert.Equal(t, float32(0.8), matcher.Threshold())
	})

	t.Run("threshold out of range", func(t *testing.T) {
		_, err := NewMatcher(base, provider, WithThreshold(1.5))
		assert.ErrorIs(t, err, ErrThresholdOutOfRange)

		_, err = NewMatcher(base, provider, WithThreshold(-1.5))
		assert.ErrorIs(t, err, ErrThresholdOutOfRange)
	})

	t.Run("nil knowledge base", func(t *testing.T) {
		_, err := NewMatcher(nil, provider)
		assert.Equal(t, ErrKnowledgeBaseRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewMatcher(base, nil)
		assert.Equal(t, ErrProviderRequired, err)
	})
}

func TestMatch_AboveThreshold(t *testing.T) {
	// "fees query" scores 1.0 against "fees" and 0 against "courses"
	provider := fixedVectors(map[string][]float32{
		"fees":       {1, 0, 0},
		"courses":    {0, 1, 0},
		"fees query": {1, 0, 0},
	})
	base := newEmbeddedBase(t, provider, [][2]string{
		{"fees", "Fee info"},
		{"courses", "Course info"},
	})

	matcher, err := NewMatcher(base, provider, WithThreshold(0.6))
	require.NoError(t, err)

	result, err := matcher.Match(context.Background(), "fees query")
	require.NoError(t, err)
	assert.True(t, result.Matched)
	require.NotNil(t, result.Entry)
	assert.Equal(t, "Fee info", result.Entry.Answer)
	assert.InDelta(t, 1.0, float64(result.Score), 1e-6)
}

func TestMatch_BelowThreshold(t *testing.T) {
	// Best score is 0.4: below the 0.6 threshold
	provider := fixedVectors(map[string][]float32{
		"fees":    {1, 0, 0},
		"courses": {0, 1, 0},
		"vague":   {0.4, 0, 0.9165151}, // unit-ish vector with x component 0.4
	})
	base := newEmbeddedBase(t, provider, [][2]string{
		{"fees", "Fee info"},
		{"courses", "Course info"},
	})

	matcher, err := NewMatcher(base, provider, WithThreshold(0.6))
	require.NoError(t, err)

	result, err := matcher.Match(context.Background(), "vague")
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Nil(t, result.Entry)
	assert.InDelta(t, 0.4, float64(result.Score), 1e-5)
}

func TestMatch_EmptyKnowledgeBase(t *testing.T) {
	provider := mock.NewMockProvider()
	base, err := knowledge.NewBase(provider)
	require.NoError(t, err)
	defer base.Release()

	matcher, err := NewMatcher(base, provider)
	require.NoError(t, err)

	result, err := matcher.Match(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Nil(t, result.Entry)
	assert.Equal(t, core.NoMatchScore, result.Score)
}

func TestMatch_ProviderErrorPropagates(t *testing.T) {
	provider := fixedVectors(map[string][]float32{
		"fees": {1, 0, 0},
	})
	base := newEmbeddedBase(t, provider, [][2]string{{"fees", "Fee info"}})

	perr := &ai.ProviderError{
		Kind: ai.ProviderErrorConnectivity,
		Op:   "embed text",
		Err:  errors.New("dial tcp: i/o timeout"),
	}
	failing := mock.NewMockEmbedder()
	failing.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, perr
	}

	matcher, err := NewMatcher(base, mock.NewMockProviderWithEmbedder(failing))
	require.NoError(t, err)

	result, err := matcher.Match(context.Background(), "fees")
	require.Error(t, err)
	assert.Nil(t, result)

	var got *ai.ProviderError
	require.ErrorAs(t, err, &got)
	assert.Same(t, perr, got)
}

func TestMatch_TieBreaksToFirstInserted(t *testing.T) {
	// Both entries have identical vectors, so scores tie exactly
	provider := fixedVectors(map[string][]float32{
		"open on weekends": {0, 1, 0},
		"weekend hours":    {0, 1, 0},
		"query":            {0, 1, 0},
	})
	base := newEmbeddedBase(t, provider, [][2]string{
		{"open on weekends", "First answer"},
		{"weekend hours", "Second answer"},
	})

	matcher, err := NewMatcher(base, provider)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		result, err := matcher.Match(context.Background(), "query")
		require.NoError(t, err)
		require.True(t, result.Matched)
		assert.Equal(t, "First answer", result.Entry.Answer)
	}
}

func TestMatch_UnembeddedBaseFailsFast(t *testing.T) {
	provider := mock.NewMockProvider()
	base, err := knowledge.NewBase(provider)
	require.NoError(t, err)
	defer base.Release()

	_, err = base.AddEntry("fees", "Fee info")
	require.NoError(t, err)

	matcher, err := NewMatcher(base, provider)
	require.NoError(t, err)

	_, err = matcher.Match(context.Background(), "fees")
	assert.ErrorIs(t, err, ErrBaseNotEmbedded)
}

func TestMatchWithMonitor(t *testing.T) {
	provider := fixedVectors(map[string][]float32{
		"fees":    {1, 0, 0},
		"courses": {0, 1, 0},
	})
	base := newEmbeddedBase(t, provider, [][2]string{
		{"fees", "Fee info"},
		{"courses", "Course info"},
	})

	matcher, err := NewMatcher(base, provider)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	result, err := matcher.MatchWithMonitor(context.Background(), "fees", monitor)
	require.NoError(t, err)

	assert.Equal(t, "fees", monitor.query)
	assert.Equal(t, 3, monitor.queryDim)
	assert.Len(t, monitor.scored, 2)
	assert.Equal(t, result, monitor.result)
}

type recordingMonitor struct {
	query    string
	queryDim int
	scored   []float32
	result   *core.MatchResult
}

var _ MatchMonitor = (*recordingMonitor)(nil)

func (r *recordingMonitor) Start(query string)           { r.query = query }
func (r *recordingMonitor) AfterQueryEmbedding(dim int)  { r.queryDim = dim }
func (r *recordingMonitor) Finish(res *core.MatchResult) { r.result = res }
func (r *recordingMonitor) EntryScored(_ *core.KnowledgeEntry, score float32) {
	r.scored = append(r.scored, score)
}
