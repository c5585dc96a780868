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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Request taxonomy. Every failed GraphQL round-trip matches exactly one of these.
var (
	// ErrTransport indicates the request never produced a decodable response envelope:
	// connection failures, timeouts, oversized or malformed bodies.
	// Maps to exit code 3.
	ErrTransport = errors.New("transport failure")

	// ErrApplication indicates the API executed the request but answered with
	// one or more GraphQL errors.
	// Maps to exit code 1.
	ErrApplication = errors.New("graphql error")

	// ErrNoData indicates a response envelope carried neither errors nor data.
	// Maps to exit code 1.
	ErrNoData = errors.New("no data")
)

// Classified failures, layered on top of the request taxonomy.
var (
	// ErrInvalidToken indicates Linear rejected the API key.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid linear api key")

	// ErrNotFound indicates the requested entity does not exist or is not visible.
	// Maps to exit code 2.
	ErrNotFound = errors.New("entity not found")

	// ErrRateLimit indicates the Linear API rate limit has been exceeded.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("linear rate limit exceeded")

	// ErrPageLimit indicates pagination stopped at the configured page ceiling
	// while the server still reported more pages.
	// Maps to exit code 1.
	ErrPageLimit = errors.New("page limit reached")

	// ErrMutationNotAllowed indicates an attempt to execute a mutation document.
	// This client is read-only.
	ErrMutationNotAllowed = errors.New("mutations are not supported")
)
