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

package linear

import (
	"context"

	"github.com/sirseerhq/sirseer-linear/internal/paginate"
)

// DefaultIssuePageSize is the number of issues requested per page.
const DefaultIssuePageSize = 100

// MaxPageSize is the largest page Linear serves.
const MaxPageSize = 250

// IssueQuery configures ListIssues. Zero values select the documented defaults.
type IssueQuery struct {
	// SortBy orders results on the server. Defaults to SortCreated.
	SortBy SortBy

	// PageSize is the preferred page size. Defaults to DefaultIssuePageSize,
	// capped at MaxPageSize.
	PageSize int

	// Limit is the number of matching issues wanted. Defaults to paginate.NoLimit.
	Limit paginate.Limit

	// Filter keeps an issue when it returns true. Nil keeps everything.
	// It runs before issues count toward Limit.
	Filter func(Issue) bool

	// MaxPages aborts pagination with errors.ErrPageLimit after this many
	// pages. Zero disables the ceiling.
	MaxPages int

	// IncludeArchived also lists archived issues.
	IncludeArchived bool

	// OnPage observes every fetched page.
	OnPage func(paginate.PageStats)
}

// ListIssues pages through issues until the result set ends or q.Limit
// matching issues have been collected. The returned slice keeps server order
// and may exceed the limit by the remainder of the last page.
func ListIssues(ctx context.Context, client Client, q IssueQuery) ([]Issue, error) {
	if q.SortBy == "" {
		q.SortBy = SortCreated
	}
	pageOpts := IssuePageOptions{SortBy: q.SortBy, IncludeArchived: q.IncludeArchived}

	fetch := func(ctx context.Context, req paginate.Request) (*paginate.Page[Issue], error) {
		return client.FetchIssues(ctx, req, pageOpts)
	}

	return paginate.Collect(ctx, fetch, paginate.Options[Issue]{
		PageSize: clampPageSize(q.PageSize, DefaultIssuePageSize),
		Limit:    q.Limit,
		Filter:   q.Filter,
		MaxPages: q.MaxPages,
		OnPage:   q.OnPage,
	})
}

// ListTeams returns every team visible to the API key.
func ListTeams(ctx context.Context, client Client, maxPages int) ([]Team, error) {
	return paginate.Collect(ctx, client.FetchTeams, paginate.Options[Team]{
		PageSize: MaxPageSize,
		MaxPages: maxPages,
	})
}

// ListWorkflowStates returns every workflow state across all teams.
func ListWorkflowStates(ctx context.Context, client Client, maxPages int) ([]WorkflowState, error) {
	return paginate.Collect(ctx, client.FetchWorkflowStates, paginate.Options[WorkflowState]{
		PageSize: MaxPageSize,
		MaxPages: maxPages,
	})
}

func clampPageSize(size, fallback int) int {
	if size <= 0 {
		return fallback
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}
