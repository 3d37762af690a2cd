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


package storage

import (
	"github.com/poiesic/intently/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalKnowledgeEntry serializes a KnowledgeEntry to bytes.
// The Vector field is stripped first: embeddings are per-process state and
// must never reach disk.
func MarshalKnowledgeEntry(entry *core.KnowledgeEntry) []byte {
	stored := *entry
	stored.Vector = nil
	buf := make([]byte, core.KnowledgeEntryMUS.Size(stored))
	core.KnowledgeEntryMUS.Marshal(stored, buf)
	return buf
}

// UnmarshalKnowledgeEntry deserializes a KnowledgeEntry from bytes.
// A stored entry has no vector; the decoded empty slice is normalized to nil
// so Embedded() reads it as not yet embedded.
func UnmarshalKnowledgeEntry(data []byte) (*core.KnowledgeEntry, error) {
	entry, _, err := core.KnowledgeEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if len(entry.Vector) == 0 {
		entry.Vector = nil
	}
	return &entry, nil
}
