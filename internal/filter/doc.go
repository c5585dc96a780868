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

// Package filter implements the client-side predicates applied to issues
// after each page is decoded.
//
// Filters run before an issue counts toward a list limit, so a limited list
// keeps paginating until enough matching issues have been seen. State
// exclusion is normalised to an inclusion set here; pagination only ever
// evaluates inclusion.
package filter
