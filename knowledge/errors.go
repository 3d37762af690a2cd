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


package knowledge

import "errors"

var (
	// ErrProviderRequired is returned when an embedding provider is not provided.
	ErrProviderRequired = errors.New("embedding provider required")

	// ErrDuplicateQuestion is returned by AddEntry when an entry with the
	// same question text already exists. The existing entry is returned
	// alongside the error and remains unchanged.
	ErrDuplicateQuestion = errors.New("duplicate question")

	// ErrDimensionMismatch indicates the provider returned a vector whose
	// length differs from the dimensionality established by earlier
	// embeddings. All vectors in a run must share the same length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
