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

// Package metadata types define the statistics record emitted for a list
// operation with --stats.
package metadata

import (
	"time"

	"github.com/sirseerhq/sirseer-linear/internal/paginate"
)

// ListMetadata describes one completed list operation: what was asked for,
// how many round-trips it took and what came back.
type ListMetadata struct {
	Version    string      `json:"version"`
	QueryID    string      `json:"query_id"`
	Parameters ListParams  `json:"parameters"`
	Results    ListResults `json:"results"`
	// Pages holds one entry per fetched page, in fetch order.
	Pages []paginate.PageStats `json:"pages"`
}

// ListParams captures the inputs of a list operation.
type ListParams struct {
	Resource        string `json:"resource"`
	Sort            string `json:"sort,omitempty"`
	Limit           string `json:"limit"`
	PageSize        int    `json:"page_size"`
	MaxPages        int    `json:"max_pages"`
	Filter          string `json:"filter"`
	IncludeArchived bool   `json:"include_archived"`
}

// ListResults contains the counters collected while paginating.
type ListResults struct {
	PageCount     int        `json:"page_count"`
	APICallCount  int        `json:"api_calls_made"`
	ItemsReceived int        `json:"items_received"`
	ItemsKept     int        `json:"items_kept"`
	OldestCreated *time.Time `json:"oldest_created,omitempty"`
	NewestUpdated *time.Time `json:"newest_updated,omitempty"`
	Duration      string     `json:"duration"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   time.Time  `json:"completed_at"`
}
