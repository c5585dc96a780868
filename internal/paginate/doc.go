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

// Package paginate drives cursor-based GraphQL pagination.
//
// Collect repeatedly calls a FetchFunc with an advancing cursor, filters each
// page's items, accumulates the survivors in server order and stops when the
// server reports no further pages or when enough items have been collected.
// Pages are fetched strictly one after another because every request depends
// on the previous response's cursor.
//
// The limit counts items that passed the filter and is checked only between
// pages, so the result is never truncated: the page that crosses the limit is
// kept whole. A failed fetch or a cancelled context discards everything
// collected so far.
package paginate
