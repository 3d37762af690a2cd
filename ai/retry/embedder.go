package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/intently/ai"
)

// ErrInvalidMaxAttempts is returned when an Embedder is constructed with a
// non-positive attempt count.
var ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")

// Embedder decorates an ai.Embedder with retry and exponential backoff.
type Embedder struct {
	inner       ai.Embedder
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder wraps inner with retry behavior.
// maxAttempts: maximum number of attempts (must be > 0)
// baseDelay: base delay between retries (doubles on each retry)
func NewEmbedder(inner ai.Embedder, maxAttempts int, baseDelay time.Duration) (*Embedder, error) {
	if inner == nil {
		return nil, errors.New("embedder required")
	}
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}

	return &Embedder{
		inner:       inner,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      slog.Default().With("component", "retry-embedder"),
	}, nil
}

// EmbedText delegates to the inner embedder, retrying on failure.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	err := e.withBackoff(ctx, func() error {
		var err error
		vector, err = e.inner.EmbedText(ctx, text)
		return err
	})
	return vector, err
}

// EmbedTexts delegates to the inner embedder, retrying on failure.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	err := e.withBackoff(ctx, func() error {
		var err error
		vectors, err = e.inner.EmbedTexts(ctx, texts)
		return err
	})
	return vectors, err
}

// withBackoff retries an operation with exponential backoff.
// Returns the error from the last attempt if all attempts fail.
func (e *Embedder) withBackoff(ctx context.Context, operation func() error) error {
	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		// Check context before attempting
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				e.logger.Debug("embedding succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		e.logger.Debug("embedding failed, will retry", "attempt", attempt, "maxAttempts", e.maxAttempts, "err", lastErr)

		// Don't sleep after the last attempt
		if attempt == e.maxAttempts {
			break
		}

		// Exponential backoff: baseDelay * 2^(attempt-1)
		delay := e.baseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}

		// Sleep with context awareness
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}
