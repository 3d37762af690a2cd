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


// Package retry wraps an ai.Embedder with retry and exponential backoff.
//
// The matcher core performs no retries of its own; callers that want
// resilience against transient provider failures wrap the embedder:
//
//	embedder := retry.NewEmbedder(inner, 3, time.Second)
//	vector, err := embedder.EmbedText(ctx, "query")
//
// Only the final error after all attempts is returned, unchanged, so the
// *ai.ProviderError taxonomy is preserved for callers.
package retry
