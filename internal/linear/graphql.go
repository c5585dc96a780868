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
	"errors"
	"fmt"

	"github.com/shurcooL/graphql"

	"github.com/sirseerhq/sirseer-linear/internal/apierror"
	relaierrors "github.com/sirseerhq/sirseer-linear/internal/errors"
	"github.com/sirseerhq/sirseer-linear/internal/gqlclient"
	"github.com/sirseerhq/sirseer-linear/internal/paginate"
)

// Executor sends a single GraphQL operation. *gqlclient.Executor implements it.
type Executor interface {
	Execute(ctx context.Context, op gqlclient.Operation, out interface{}) error
}

// connection is the wire shape of a paginated Linear list.
type connection[T any] struct {
	PageInfo paginate.PageInfo `json:"pageInfo"`
	Nodes    []T               `json:"nodes"`
}

func (c connection[T]) page() *paginate.Page[T] {
	return &paginate.Page[T]{Items: c.Nodes, PageInfo: c.PageInfo}
}

// GraphQLClient implements the Client interface using Linear's GraphQL API.
type GraphQLClient struct {
	exec      Executor
	inspector apierror.Inspector
}

// NewGraphQLClient creates a client sending operations through exec.
func NewGraphQLClient(exec Executor) *GraphQLClient {
	return &GraphQLClient{
		exec:      exec,
		inspector: apierror.NewInspector(),
	}
}

// Viewer returns the authenticated user.
func (c *GraphQLClient) Viewer(ctx context.Context) (*User, error) {
	var data struct {
		Viewer User `json:"viewer"`
	}
	if err := c.run(ctx, viewerQuery, nil, &data); err != nil {
		return nil, c.mapError(err, "current user")
	}
	return &data.Viewer, nil
}

// FetchIssues fetches one page of issues ordered by opts.SortBy.
func (c *GraphQLClient) FetchIssues(ctx context.Context, req paginate.Request, opts IssuePageOptions) (*paginate.Page[Issue], error) {
	variables := pageVariables(req)
	variables["orderBy"] = opts.SortBy.orderBy()
	variables["includeArchived"] = graphql.Boolean(opts.IncludeArchived)

	var data struct {
		Issues connection[Issue] `json:"issues"`
	}
	if err := c.run(ctx, listIssuesQuery, variables, &data); err != nil {
		return nil, c.mapError(err, "issues")
	}
	return data.Issues.page(), nil
}

// GetIssue fetches a single issue by id or identifier.
func (c *GraphQLClient) GetIssue(ctx context.Context, id string) (*Issue, error) {
	variables := map[string]interface{}{
		"id": graphql.String(id),
	}

	var data struct {
		Issue *Issue `json:"issue"`
	}
	if err := c.run(ctx, showIssueQuery, variables, &data); err != nil {
		return nil, c.mapError(err, fmt.Sprintf("issue %q", id))
	}
	if data.Issue == nil {
		return nil, fmt.Errorf("issue %q not found: %w", id, relaierrors.ErrNotFound)
	}
	return data.Issue, nil
}

// FetchTeams fetches one page of teams.
func (c *GraphQLClient) FetchTeams(ctx context.Context, req paginate.Request) (*paginate.Page[Team], error) {
	var data struct {
		Teams connection[Team] `json:"teams"`
	}
	if err := c.run(ctx, listTeamsQuery, pageVariables(req), &data); err != nil {
		return nil, c.mapError(err, "teams")
	}
	return data.Teams.page(), nil
}

// FetchWorkflowStates fetches one page of workflow states.
func (c *GraphQLClient) FetchWorkflowStates(ctx context.Context, req paginate.Request) (*paginate.Page[WorkflowState], error) {
	var data struct {
		WorkflowStates connection[WorkflowState] `json:"workflowStates"`
	}
	if err := c.run(ctx, listWorkflowStatesQuery, pageVariables(req), &data); err != nil {
		return nil, c.mapError(err, "workflow states")
	}
	return data.WorkflowStates.page(), nil
}

// run builds a fresh operation and executes it.
func (c *GraphQLClient) run(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	op, err := gqlclient.NewOperation(query, variables)
	if err != nil {
		return err
	}
	return c.exec.Execute(ctx, op, out)
}

// pageVariables returns the connection arguments for req. The cursor is
// passed through untouched; a nil cursor encodes as null.
func pageVariables(req paginate.Request) map[string]interface{} {
	return map[string]interface{}{
		"first": graphql.Int(req.First), // #nosec G115 - page sizes are validated to at most 250
		"after": req.After,
	}
}

// mapError maps request errors to domain errors with actionable messages.
// The original error stays in the chain.
func (c *GraphQLClient) mapError(err error, what string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("fetching %s interrupted: %w", what, err)
	}

	// Check rate limit first, Linear answers rate limited requests with a 400
	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("Linear API rate limit exceeded. Please wait before retrying: %w: %w", relaierrors.ErrRateLimit, err)
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("Linear API authentication failed. Please provide a valid API key via --token flag or LINEAR_API_KEY environment variable: %w: %w", relaierrors.ErrInvalidToken, err)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("%s not found: %w: %w", what, relaierrors.ErrNotFound, err)
	}

	if c.inspector.IsComplexityError(err) {
		return fmt.Errorf("query complexity exceeded while fetching %s. Reducing --page-size may help: %w", what, err)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to Linear API. Please check your internet connection and try again: %w", err)
	}

	return fmt.Errorf("failed to fetch %s: %w", what, err)
}
