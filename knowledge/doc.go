// Package knowledge holds the canonical question/answer entries the matcher
// compares incoming queries against.
//
// The Base keeps entries in insertion order and deduplicates them by a
// content ID derived from the question text. Population is decoupled from
// embedding cost: AddEntry never talks to the provider, and EnsureEmbedded
// batches every still-unembedded question through the embedder on a worker
// pool. EnsureEmbedded is idempotent and must complete before matching
// starts; an entry is either fully embedded or still absent, never partial.
package knowledge
