package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Knowledge entries use content-based IDs derived from their question text.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// KnowledgeEntry is a canonical question/answer pair in the knowledge base.
// Vector holds the embedding of the question text; it stays nil until the
// knowledge base embeds the entry, and is never persisted.
type KnowledgeEntry struct {
	Id       ID
	Question string
	Answer   string
	Vector   []float32
}

// Embedded reports whether the entry has an embedding vector.
func (e *KnowledgeEntry) Embedded() bool {
	return len(e.Vector) > 0
}

// NoMatchScore is the sentinel score reported when there was nothing to
// match against, i.e. an empty knowledge base.
const NoMatchScore float32 = -1

// MatchResult is the outcome of matching a query against the knowledge base.
// Entry is nil when Matched is false. Score is the best similarity observed,
// or NoMatchScore if the base was empty.
type MatchResult struct {
	Entry   *KnowledgeEntry
	Score   float32
	Matched bool
}
