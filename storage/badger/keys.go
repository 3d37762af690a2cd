package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/intently/core"
)

// Key prefixes for different data types
const (
	entryRecordPrefix = "knwent"
	entryOrderPrefix  = "knwordr"
	entryRankPrefix   = "knwrank"
	entryRankSeq      = "knwrankseq"
)

// makeEntryKey generates a key for a knowledge entry by ID.
func makeEntryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", entryRecordPrefix, id))
}

// makeEntryOrderKey generates a composite key for the insertion-order index.
// Format: prefix:rank
func makeEntryOrderKey(rank uint64) []byte {
	prefix := entryOrderPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort equals insertion order
	binary.BigEndian.PutUint64(buf[offset:], rank)
	return buf
}

// makeEntryRankKey generates the reverse-lookup key holding an entry's rank.
func makeEntryRankKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", entryRankPrefix, id))
}

// encodeRank serializes a rank for storage in the reverse-lookup value.
func encodeRank(rank uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, rank)
	return buf
}

// decodeRank deserializes a rank from a reverse-lookup value.
func decodeRank(data []byte) uint64 {
	return binary.BigEndian.Uint64(data)
}
