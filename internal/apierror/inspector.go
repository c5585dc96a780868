// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apierror

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Inspector defines the interface for inspecting and classifying API errors.
type Inspector interface {
	// IsAuthError returns true if the error represents an authentication or authorization failure.
	IsAuthError(err error) bool

	// IsNotFoundError returns true if the error represents a missing entity.
	IsNotFoundError(err error) bool

	// IsRateLimitError returns true if the error represents a rate limit error.
	IsRateLimitError(err error) bool

	// IsComplexityError returns true if the error represents a query complexity error.
	IsComplexityError(err error) bool

	// IsNetworkError returns true if the error represents a network connectivity error.
	IsNetworkError(err error) bool
}

// Message fragments, lower case, that identify each class of failure.
var (
	authMarkers       = []string{"401", "unauthorized", "forbidden", "authentication", "not authenticated", "invalid api key"}
	notFoundMarkers   = []string{"404", "not found", "could not find"}
	rateLimitMarkers  = []string{"rate limit", "ratelimited", "429"}
	complexityMarkers = []string{"complexity", "too complex"}
	networkMarkers    = []string{"connection refused", "no such host", "timeout", "dial tcp", "tls handshake", "network is unreachable"}
)

// LinearErrorInspector classifies errors by message text. Linear reports most
// failures as GraphQL errors with an HTTP 200 or 400, so the text is often
// all there is.
type LinearErrorInspector struct{}

// NewInspector returns a LinearErrorInspector behind an ErrorChainInspector.
func NewInspector() Inspector {
	return NewErrorChainInspector(&LinearErrorInspector{})
}

func mentions(err error, markers []string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, m := range markers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

func (i *LinearErrorInspector) IsAuthError(err error) bool { return mentions(err, authMarkers) }

func (i *LinearErrorInspector) IsNotFoundError(err error) bool { return mentions(err, notFoundMarkers) }

func (i *LinearErrorInspector) IsRateLimitError(err error) bool {
	return mentions(err, rateLimitMarkers)
}

func (i *LinearErrorInspector) IsComplexityError(err error) bool {
	return mentions(err, complexityMarkers)
}

// IsNetworkError also accepts any net.Error and deadline expiry in the chain.
func (i *LinearErrorInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return mentions(err, networkMarkers)
}

// ErrorChainInspector asks typed errors in the chain first, through methods
// such as IsAuthError() bool, and falls back to base.
type ErrorChainInspector struct {
	base Inspector
}

// NewErrorChainInspector creates an ErrorChainInspector over base.
func NewErrorChainInspector(base Inspector) Inspector {
	return &ErrorChainInspector{base: base}
}

// claims reports whether some error in the chain implements check and it
// returns true.
func claims[T any](err error, check func(T) bool) bool {
	var target T
	return errors.As(err, &target) && check(target)
}

func (e *ErrorChainInspector) IsAuthError(err error) bool {
	return claims(err, func(c interface{ IsAuthError() bool }) bool { return c.IsAuthError() }) ||
		e.base.IsAuthError(err)
}

func (e *ErrorChainInspector) IsNotFoundError(err error) bool {
	return claims(err, func(c interface{ IsNotFoundError() bool }) bool { return c.IsNotFoundError() }) ||
		e.base.IsNotFoundError(err)
}

func (e *ErrorChainInspector) IsRateLimitError(err error) bool {
	return claims(err, func(c interface{ IsRateLimitError() bool }) bool { return c.IsRateLimitError() }) ||
		e.base.IsRateLimitError(err)
}

func (e *ErrorChainInspector) IsComplexityError(err error) bool {
	return claims(err, func(c interface{ IsComplexityError() bool }) bool { return c.IsComplexityError() }) ||
		e.base.IsComplexityError(err)
}

func (e *ErrorChainInspector) IsNetworkError(err error) bool {
	return claims(err, func(c interface{ IsNetworkError() bool }) bool { return c.IsNetworkError() }) ||
		e.base.IsNetworkError(err)
}
