// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package intently

import (
	"context"
	"log/slog"

	"github.com/poiesic/intently/ai"
	"github.com/poiesic/intently/ai/openai"
	"github.com/poiesic/intently/core"
	"github.com/poiesic/intently/knowledge"
	"github.com/poiesic/intently/match"
	"github.com/poiesic/intently/storage"
	"github.com/poiesic/intently/storage/badger"
)

// DefaultFallback is the reply used by Answer when no entry clears the
// matching threshold.
const DefaultFallback = "Sorry, I don't have an answer for that yet."

// Assistant ties the durable entry store, the in-memory knowledge base and
// the intent matcher together behind one handle.
type Assistant struct {
	backend   *badger.Backend
	entryRepo storage.EntryRepository
	provider  ai.EmbeddingProvider
	base      *knowledge.Base
	matcher   *match.Matcher
	fallback  string
	logger    *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig  *ai.Config
	provider  ai.EmbeddingProvider
	threshold float32
	fallback  string
	inMemory  bool
}

// WithAIConfig sets the embedding provider configuration. Ignored when a
// provider is injected with WithProvider.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects an embedding provider, bypassing provider
// construction from the AI config. Used by tests with the mock provider.
func WithProvider(provider ai.EmbeddingProvider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithThreshold sets the matching threshold.
// Default is match.DefaultThreshold.
func WithThreshold(threshold float32) AssistantOption {
	return func(o *assistantOptions) {
		o.threshold = threshold
	}
}

// WithFallback sets the reply Answer returns when nothing matches.
func WithFallback(fallback string) AssistantOption {
	return func(o *assistantOptions) {
		o.fallback = fallback
	}
}

// WithInMemoryStorage uses an in-memory entry store instead of a directory
// on disk. The path argument to NewAssistant is ignored.
func WithInMemoryStorage() AssistantOption {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	// Apply options
	options := &assistantOptions{
		aiConfig:  ai.DefaultConfig(),
		threshold: match.DefaultThreshold,
		fallback:  DefaultFallback,
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create entry repository
	entryRepo, err := badger.NewEntryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create embedding provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			entryRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	base, err := knowledge.NewBase(provider)
	if err != nil {
		provider.Close()
		entryRepo.Close()
		backend.Close()
		return nil, err
	}

	matcher, err := match.NewMatcher(base, provider, match.WithThreshold(options.threshold))
	if err != nil {
		base.Release()
		provider.Close()
		entryRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Assistant{
		backend:   backend,
		entryRepo: entryRepo,
		provider:  provider,
		base:      base,
		matcher:   matcher,
		fallback:  options.fallback,
		logger:    slog.Default(),
	}, nil
}

// Close releases the knowledge base, provider and storage.
func (a *Assistant) Close() error {
	a.base.Release()

	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing embedding provider", "err", err)
	}

	if err := a.entryRepo.Close(); err != nil {
		a.logger.Error("error closing entry repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// AddEntry validates, registers and persists a question/answer pair. The
// embedding is left absent until the next Warmup. Adding a question that is
// already known returns knowledge.ErrDuplicateQuestion.
func (a *Assistant) AddEntry(ctx context.Context, question, answer string) (*core.KnowledgeEntry, error) {
	entry, err := a.base.AddEntry(question, answer)
	if err != nil {
		return nil, err
	}

	if err := a.entryRepo.AddEntries(ctx, entry); err != nil {
		// An entry the store never accepted must not be servable
		a.base.RemoveEntry(entry.Id)
		return nil, err
	}
	return entry, nil
}

// Warmup loads all persisted entries into the knowledge base and embeds
// everything that is still missing a vector. Safe to call repeatedly.
func (a *Assistant) Warmup(ctx context.Context) error {
	if err := a.base.LoadFromRepository(ctx, a.entryRepo); err != nil {
		return err
	}
	return a.base.EnsureEmbedded(ctx)
}

// Match resolves a free-form query against the knowledge base.
func (a *Assistant) Match(ctx context.Context, query string) (*core.MatchResult, error) {
	return a.matcher.Match(ctx, query)
}

// Answer resolves a query and returns the matched entry's answer, or the
// configured fallback reply when nothing clears the threshold.
func (a *Assistant) Answer(ctx context.Context, query string) (string, error) {
	result, err := a.matcher.Match(ctx, query)
	if err != nil {
		return "", err
	}
	if !result.Matched {
		return a.fallback, nil
	}
	return result.Entry.Answer, nil
}

// Base exposes the in-memory knowledge base.
func (a *Assistant) Base() *knowledge.Base {
	return a.base
}

// EntryRepository exposes the durable entry store.
func (a *Assistant) EntryRepository() storage.EntryRepository {
	return a.entryRepo
}
