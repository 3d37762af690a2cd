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


// Package match decides whether a free-form query means the same thing as
// one of the knowledge base's canonical questions.
//
// The Matcher embeds the query, scores it against every entry with cosine
// similarity, and gates the best score on a tunable threshold. Exact ties
// resolve to the entry inserted first, so results are reproducible across
// runs. A provider failure during query embedding propagates as a
// *ai.ProviderError - it is never converted into a "no match" result.
package match
