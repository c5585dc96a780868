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
	"encoding/json"
	"fmt"
	"time"

	relaierrors "github.com/sirseerhq/sirseer-linear/internal/errors"
	"github.com/sirseerhq/sirseer-linear/internal/paginate"
)

// MockClient is a mock implementation of the Client interface for testing.
// It serves Issues, Teams and States in pages of the requested size and
// records every issue page request.
type MockClient struct {
	User   User
	Issues []Issue
	Teams  []Team
	States []WorkflowState

	// Error to return from every call
	Error error

	// FailAtPage makes FetchIssues return PageError for that page index.
	FailAtPage int
	PageError  error

	// Behavior flags
	ShouldFailAuth bool

	// Track calls for verification
	CallCount    int
	IssueQueries []paginate.Request
	LastOpts     IssuePageOptions
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		User:       User{ID: "user-1", Name: "Alice Doe", DisplayName: "alice", Email: "alice@example.com", Active: true},
		Issues:     generateTestIssues(),
		Teams:      []Team{{ID: "team-1", Key: "ENG", Name: "Engineering"}, {ID: "team-2", Key: "OPS", Name: "Operations"}},
		States:     generateTestStates(),
		FailAtPage: -1,
	}
}

func (m *MockClient) check(ctx context.Context) error {
	m.CallCount++

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", relaierrors.ErrInvalidToken)
	}
	return m.Error
}

// Viewer implements the Client interface
func (m *MockClient) Viewer(ctx context.Context) (*User, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	u := m.User
	return &u, nil
}

// FetchIssues implements the Client interface
func (m *MockClient) FetchIssues(ctx context.Context, req paginate.Request, opts IssuePageOptions) (*paginate.Page[Issue], error) {
	m.IssueQueries = append(m.IssueQueries, req)
	m.LastOpts = opts
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	if req.Index == m.FailAtPage {
		return nil, m.PageError
	}
	return mockPage(m.Issues, req)
}

// GetIssue implements the Client interface
func (m *MockClient) GetIssue(ctx context.Context, id string) (*Issue, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	for _, issue := range m.Issues {
		if issue.ID == id || issue.Identifier == id {
			found := issue
			return &found, nil
		}
	}
	return nil, fmt.Errorf("issue %q not found: %w", id, relaierrors.ErrNotFound)
}

// FetchTeams implements the Client interface
func (m *MockClient) FetchTeams(ctx context.Context, req paginate.Request) (*paginate.Page[Team], error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	return mockPage(m.Teams, req)
}

// FetchWorkflowStates implements the Client interface
func (m *MockClient) FetchWorkflowStates(ctx context.Context, req paginate.Request) (*paginate.Page[WorkflowState], error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	return mockPage(m.States, req)
}

// mockPage slices items the way a server would: the cursor is the offset of
// the next item.
func mockPage[T any](items []T, req paginate.Request) (*paginate.Page[T], error) {
	start := 0
	if req.After != nil {
		if _, err := fmt.Sscanf(req.After.String(), "offset:%d", &start); err != nil {
			return nil, fmt.Errorf("mock: bad cursor %q", req.After.String())
		}
	}
	if start > len(items) {
		start = len(items)
	}
	end := start + req.First
	if end > len(items) {
		end = len(items)
	}

	page := &paginate.Page[T]{Items: items[start:end]}
	if end < len(items) {
		page.PageInfo.HasNextPage = true
		page.PageInfo.EndCursor = MockCursor(fmt.Sprintf("offset:%d", end))
	}
	return page, nil
}

// MockCursor decodes token into a cursor, the way a server response would.
func MockCursor(token string) *paginate.Cursor {
	raw, _ := json.Marshal(token)
	var c paginate.Cursor
	_ = json.Unmarshal(raw, &c)
	return &c
}

// generateTestIssues creates sample issue data for testing
func generateTestIssues() []Issue {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	alice := &User{ID: "user-1", Name: "Alice Doe", DisplayName: "alice"}
	bob := &User{ID: "user-2", Name: "Bob Roe", DisplayName: "bob"}
	eng := TeamRef{ID: "team-1", Key: "ENG", Name: "Engineering"}

	return []Issue{
		{
			ID: "issue-1", Identifier: "ENG-1", Title: "Add pagination to issue list",
			URL: "https://linear.app/acme/issue/ENG-1", Priority: 2, PriorityLabel: "High",
			CreatedAt: lastWeek, UpdatedAt: now, Assignee: alice, Team: eng,
			State: WorkflowState{ID: "state-2", Name: "In Progress", Type: StateStarted},
		},
		{
			ID: "issue-2", Identifier: "ENG-2", Title: "Fix crash on empty response",
			URL: "https://linear.app/acme/issue/ENG-2", Priority: 1, PriorityLabel: "Urgent",
			CreatedAt: lastWeek, UpdatedAt: yesterday, Assignee: bob, Team: eng,
			State: WorkflowState{ID: "state-4", Name: "Done", Type: StateCompleted},
		},
		{
			ID: "issue-3", Identifier: "ENG-3", Title: "Document configuration file",
			URL: "https://linear.app/acme/issue/ENG-3", PriorityLabel: "No priority",
			CreatedAt: yesterday, UpdatedAt: yesterday, Team: eng,
			State: WorkflowState{ID: "state-1", Name: "Backlog", Type: StateBacklog},
		},
	}
}

// generateTestStates creates one workflow state per state type
func generateTestStates() []WorkflowState {
	states := make([]WorkflowState, 0, len(AllStateTypes()))
	for i, st := range AllStateTypes() {
		states = append(states, WorkflowState{
			ID:       fmt.Sprintf("state-%d", i+1),
			Name:     string(st),
			Type:     st,
			Position: float64(i),
			Team:     &TeamRef{ID: "team-1", Key: "ENG"},
		})
	}
	return states
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithIssues sets specific issues to return
func WithIssues(issues []Issue) MockClientOption {
	return func(m *MockClient) {
		m.Issues = issues
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithPageError makes FetchIssues fail on the given page index
func WithPageError(index int, err error) MockClientOption {
	return func(m *MockClient) {
		m.FailAtPage = index
		m.PageError = err
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
