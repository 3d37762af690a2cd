package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/intently/ai"
	"github.com/poiesic/intently/core"
	"github.com/poiesic/intently/knowledge"
)

// DefaultThreshold is the similarity score a best match must reach before it
// counts as understood. Tuned against small FAQ-style knowledge bases.
const DefaultThreshold float32 = 0.60

// Matcher matches free-form queries against a knowledge base.
//
// The knowledge base must have completed EnsureEmbedded before Match is
// called; once it has, any number of Match calls may run concurrently.
type Matcher struct {
	base      *knowledge.Base
	embedder  ai.Embedder
	threshold float32
	logger    *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithThreshold sets the decision threshold, a value in [-1, 1].
// Default is DefaultThreshold.
func WithThreshold(threshold float32) Option {
	return func(m *Matcher) error {
		if threshold < -1 || threshold > 1 {
			return fmt.Errorf("%w: %v", ErrThresholdOutOfRange, threshold)
		}
		m.threshold = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a new matcher over the given knowledge base.
func NewMatcher(base *knowledge.Base, provider ai.EmbeddingProvider, opts ...Option) (*Matcher, error) {
	if base == nil {
		return nil, ErrKnowledgeBaseRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	m := &Matcher{
		base:      base,
		embedder:  provider.Embedder(),
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Threshold returns the configured decision threshold.
func (m *Matcher) Threshold() float32 {
	return m.threshold
}

// Match embeds the query and scores it against every knowledge base entry.
// Returns the best-scoring entry when its score reaches the threshold, and
// a no-match result otherwise. An empty knowledge base yields a no-match
// result with core.NoMatchScore; it is not an error.
func (m *Matcher) Match(ctx context.Context, query string) (*core.MatchResult, error) {
	return m.MatchWithMonitor(ctx, query, nil)
}

// MatchWithMonitor matches the query with monitoring.
// The monitor receives callbacks at each stage of the match.
func (m *Matcher) MatchWithMonitor(ctx context.Context, query string, monitor MatchMonitor) (*core.MatchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	queryVector, err := m.embedder.EmbedText(ctx, query)
	if err != nil {
		m.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(len(queryVector))

	var (
		best      = core.NoMatchScore
		bestEntry *core.KnowledgeEntry
	)

	for entry := range m.base.Entries() {
		if !entry.Embedded() {
			return nil, fmt.Errorf("%w: %q", ErrBaseNotEmbedded, entry.Question)
		}

		score, err := core.CosineSimilarity(queryVector, entry.Vector)
		if err != nil {
			return nil, err
		}
		monitor.EntryScored(entry, score)

		// Strictly greater, so exact ties keep the first-inserted entry
		if bestEntry == nil || score > best {
			best = score
			bestEntry = entry
		}
	}

	result := &core.MatchResult{Score: best}
	if bestEntry != nil && best >= m.threshold {
		result.Entry = bestEntry
		result.Matched = true
	}

	m.logger.Debug("match complete", "query", query, "score", best, "matched", result.Matched)
	monitor.Finish(result)

	return result, nil
}
