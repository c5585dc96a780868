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

// Package main implements the sirseer-linear command-line interface.
// It lists and shows Linear issues, teams and workflow states.
//
// The CLI supports:
//   - Listing issues with a result limit or all pages (--all)
//   - Client-side filtering by assignee and workflow state type
//   - Table, JSON and NDJSON output
//   - Pagination statistics with --stats
//
// Usage:
//
//	sirseer-linear [global flags] <command>
//
// Example:
//
//	export LINEAR_API_KEY=lin_api_xxx
//	sirseer-linear issues list -n 20 --assignee alice --exclude-state completed,canceled
//
// Exit codes:
//   - 0: Success
//   - 1: General error, GraphQL error or empty response
//   - 2: Authentication, rate limit, not found or usage error
//   - 3: Network error
package main
