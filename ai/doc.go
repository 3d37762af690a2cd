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


// Package ai provides abstractions for the embedding services used in Intently.
//
// The package defines the Embedder and EmbeddingProvider interfaces so that
// the knowledge base and matcher depend on abstractions rather than on a
// concrete embedding backend.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//   - ai/retry: An Embedder decorator adding retry with exponential backoff
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations:
//
//	provider, err := openai.NewProvider(config)  // returns ai.EmbeddingProvider
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types to
// enable test assertions and behavior injection via the mock's public methods
// (CallCount, EmbedTextFunc, Reset):
//
//	mockEmbed := mock.NewMockEmbedder()  // returns *mock.MockEmbedder
//	mockEmbed.EmbedTextFunc = ...        // needs concrete type
//	count := mockEmbed.CallCount()       // test assertion
//
// # Failure Model
//
// Every failed outbound call surfaces as a *ProviderError. The error's Kind
// distinguishes a bad response (non-success status, unparsable body) from a
// connectivity failure (DNS, refused connection, timeout); both are caught
// the same way by callers:
//
//	var perr *ai.ProviderError
//	if errors.As(err, &perr) { ... }
//
// No retry happens at this layer. Callers that want resilience wrap the
// embedder with ai/retry.
package ai
