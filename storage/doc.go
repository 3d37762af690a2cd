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


// Package storage provides the storage abstraction layer for Intently.
//
// The repository interface persists the canonical question/answer pairs
// between runs. Embedding vectors are deliberately NOT persisted: they are
// recomputed per process by the knowledge base, so a stored entry only ever
// carries its question and answer.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - EntryRepository: operations for knowledge entries, preserving
//     insertion order
//
// Implementations live in sub-packages (storage/badger). Public
// constructors return interface types so consumers never couple to a
// concrete backend; in-memory variants exist for tests.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
