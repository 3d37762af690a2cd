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


package match

import "errors"

var (
	// ErrKnowledgeBaseRequired is returned when a knowledge base is not provided.
	ErrKnowledgeBaseRequired = errors.New("knowledge base required")

	// ErrProviderRequired is returned when an embedding provider is not provided.
	ErrProviderRequired = errors.New("embedding provider required")

	// ErrThresholdOutOfRange is returned when the similarity threshold lies
	// outside [-1, 1].
	ErrThresholdOutOfRange = errors.New("similarity threshold must be in [-1, 1]")

	// ErrBaseNotEmbedded indicates a match was attempted against an entry
	// that has no embedding yet. Run EnsureEmbedded before matching.
	ErrBaseNotEmbedded = errors.New("knowledge base has unembedded entries")
)
