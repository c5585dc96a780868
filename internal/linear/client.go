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

// Client defines the interface for interacting with Linear's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// Viewer returns the user that owns the API key.
	Viewer(ctx context.Context) (*User, error)

	// FetchIssues retrieves one page of issues. The cursor in req.After
	// selects the page; req.First its size.
	FetchIssues(ctx context.Context, req paginate.Request, opts IssuePageOptions) (*paginate.Page[Issue], error)

	// GetIssue retrieves a single issue by UUID or identifier (e.g. "ENG-123").
	GetIssue(ctx context.Context, id string) (*Issue, error)

	// FetchTeams retrieves one page of teams.
	FetchTeams(ctx context.Context, req paginate.Request) (*paginate.Page[Team], error)

	// FetchWorkflowStates retrieves one page of workflow states.
	FetchWorkflowStates(ctx context.Context, req paginate.Request) (*paginate.Page[WorkflowState], error)
}

// IssuePageOptions are the server-side parameters of an issue page request.
type IssuePageOptions struct {
	SortBy          SortBy
	IncludeArchived bool
}
