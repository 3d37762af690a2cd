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


package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ProviderErrorKind classifies a ProviderError.
type ProviderErrorKind int

const (
	// ProviderErrorResponse indicates the provider answered but the answer
	// was unusable: a non-success status, an unparsable body, or an empty
	// embedding result.
	ProviderErrorResponse ProviderErrorKind = iota + 1

	// ProviderErrorConnectivity indicates the call itself could not be
	// completed: DNS failure, connection refused or reset, or timeout.
	ProviderErrorConnectivity
)

// String returns a human-readable name for the kind.
func (k ProviderErrorKind) String() string {
	switch k {
	case ProviderErrorResponse:
		return "response"
	case ProviderErrorConnectivity:
		return "connectivity"
	default:
		return "unknown"
	}
}

// ProviderError reports a failed outbound call to the embedding provider.
// Both kinds surface as a single catchable failure; the Kind is advisory so
// callers can show a transient-failure message for connectivity problems.
//
// The wrapped error carries the transport-layer detail. Authentication
// material is never included.
type ProviderError struct {
	Kind ProviderErrorKind
	Op   string // operation that failed, e.g. "embed query"
	Err  error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider: %s: %s failure: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WrapProviderError wraps err in a *ProviderError for the given operation,
// classifying connectivity failures (net errors, deadline expiry) apart from
// response failures. A nil err returns nil. An err that already is a
// *ProviderError is returned unchanged so decorators don't double-wrap.
func WrapProviderError(op string, err error) error {
	if err == nil {
		return nil
	}

	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr
	}

	kind := ProviderErrorResponse
	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		kind = ProviderErrorConnectivity
	}

	return &ProviderError{Kind: kind, Op: op, Err: err}
}
