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

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirseerhq/sirseer-linear/internal/linear"
	"github.com/sirseerhq/sirseer-linear/internal/metadata"
	"github.com/sirseerhq/sirseer-linear/test/testutil"
)

func lines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func decodeNDJSON(t *testing.T, out string) []string {
	t.Helper()
	var ids []string
	for _, line := range lines(out) {
		var issue linear.Issue
		require.NoError(t, json.Unmarshal([]byte(line), &issue))
		ids = append(ids, issue.Identifier)
	}
	return ids
}

func TestIssuesList_DefaultLimit(t *testing.T) {
	isolate(t)
	server := testutil.NewPagedServer(t,
		testutil.IssuesPage(true, "c1", testutil.IssueRange(1, 10)...),
	)

	code, stdout, stderr := runCLI(t, server, "issues", "list")
	require.Equal(t, 0, code, stderr)

	rows := lines(stdout)
	assert.Len(t, rows, 11)
	assert.True(t, strings.HasPrefix(rows[0], "id "))
	assert.True(t, strings.HasPrefix(rows[1], "ENG-1 "))
	assert.Contains(t, rows[1], "Todo (unstarted)")

	reqs := server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, float64(10), reqs[0].Variables["first"])
	assert.Nil(t, reqs[0].Variables["after"])
	assert.Equal(t, "createdAt", reqs[0].Variables["orderBy"])
	assert.Equal(t, "lin_api_test", reqs[0].Header.Get("Authorization"))
}

func TestIssuesList_AllJSON(t *testing.T) {
	isolate(t)
	server := testutil.NewPagedServer(t,
		testutil.IssuesPage(true, "c1", testutil.IssueRange(1, 2)...),
		testutil.IssuesPage(true, "c2", testutil.IssueRange(3, 4)...),
		testutil.IssuesPage(false, "", testutil.IssueRange(5, 6)...),
	)

	code, stdout, stderr := runCLI(t, server, "--json", "issues", "list", "--all", "--page-size", "2", "--sort", "updated")
	require.Equal(t, 0, code, stderr)

	var issues []linear.Issue
	require.NoError(t, json.Unmarshal([]byte(stdout), &issues))
	require.Len(t, issues, 6)
	for i, issue := range issues {
		assert.Equal(t, fmt.Sprintf("ENG-%d", i+1), issue.Identifier)
	}

	reqs := server.Requests()
	require.Len(t, reqs, 3)
	assert.Nil(t, reqs[0].Variables["after"])
	assert.Equal(t, "c1", reqs[1].Variables["after"])
	assert.Equal(t, "c2", reqs[2].Variables["after"])
	for _, req := range reqs {
		assert.Equal(t, float64(2), req.Variables["first"])
		assert.Equal(t, "updatedAt", req.Variables["orderBy"])
	}
}

func TestIssuesList_EmptyJSON(t *testing.T) {
	isolate(t)
	server := testutil.NewPagedServer(t, testutil.IssuesPage(false, ""))

	code, stdout, stderr := runCLI(t, server, "--json", "issues", "list")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, "[]", stdout)
}

func TestIssuesList_Filters(t *testing.T) {
	isolate(t)
	page1 := []map[string]interface{}{
		testutil.NewIssueBuilder(1).WithAssignee("alice").WithState("started", "In Progress").Build(),
		testutil.NewIssueBuilder(2).WithAssignee("alice").WithState("completed", "Done").Build(),
		testutil.NewIssueBuilder(3).WithAssignee("Alice").WithState("started", "In Progress").Build(),
	}
	page2 := []map[string]interface{}{
		testutil.NewIssueBuilder(4).WithState("backlog", "Backlog").Build(),
		testutil.NewIssueBuilder(5).WithAssignee("alice").WithState("backlog", "Backlog").Build(),
		testutil.NewIssueBuilder(6).WithAssignee("alice").WithState("canceled", "Canceled").Build(),
	}
	server := testutil.NewPagedServer(t,
		testutil.IssuesPage(true, "c1", page1...),
		testutil.IssuesPage(false, "", page2...),
	)

	code, stdout, stderr := runCLI(t, server,
		"--format", "ndjson", "issues", "list",
		"-n", "5", "--page-size", "3",
		"--assignee", "alice", "--exclude-state", "completed,canceled",
	)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []string{"ENG-1", "ENG-5"}, decodeNDJSON(t, stdout))

	reqs := server.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, float64(3), reqs[0].Variables["first"])
	assert.Equal(t, float64(3), reqs[1].Variables["first"])
}

func TestIssuesList_StateInclude(t *testing.T) {
	isolate(t)
	server := testutil.NewPagedServer(t,
		testutil.IssuesPage(false, "",
			testutil.NewIssueBuilder(1).WithState("started", "In Progress").Build(),
			testutil.NewIssueBuilder(2).WithState("backlog", "Backlog").Build(),
			testutil.NewIssueBuilder(3).Build(),
		),
	)

	code, stdout, stderr := runCLI(t, server, "--format", "ndjson", "issues", "list", "--state", "started", "--state", "unstarted")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []string{"ENG-1", "ENG-3"}, decodeNDJSON(t, stdout))
}

func TestIssuesList_KeepsWholePage(t *testing.T) {
	isolate(t)
	// The server ignores first and returns five issues.
	server := testutil.NewPagedServer(t,
		testutil.IssuesPage(true, "c1", testutil.IssueRange(1, 5)...),
	)

	code, stdout, stderr := runCLI(t, server, "--format", "ndjson", "issues", "list", "-n", "3")
	require.Equal(t, 0, code, stderr)
	assert.Len(t, decodeNDJSON(t, stdout), 5)
	assert.Equal(t, 1, server.RequestCount())
}

func TestIssuesList_LimitZero(t *testing.T) {
	isolate(t)
	server := testutil.NewPagedServer(t)

	code, stdout, stderr := runCLI(t, server, "issues", "list", "--limit", "0")
	require.Equal(t, 0, code, stderr)
	assert.Len(t, lines(stdout), 1)
	assert.Equal(t, 0, server.RequestCount())
}

func TestIssuesList_UsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "state and exclude-state",
			args:    []string{"issues", "list", "--state", "started", "--exclude-state", "completed"},
			wantErr: "--state and --exclude-state cannot be used together",
		},
		{
			name:    "limit and all",
			args:    []string{"issues", "list", "--limit", "5", "--all"},
			wantErr: "--limit and --all cannot be used together",
		},
		{
			name:    "negative limit",
			args:    []string{"issues", "list", "--limit", "-1"},
			wantErr: "--limit must not be negative",
		},
		{
			name:    "page size too large",
			args:    []string{"issues", "list", "--page-size", "251"},
			wantErr: "--page-size must be between 1 and 250",
		},
		{
			name:    "unknown state",
			args:    []string{"issues", "list", "--state", "doing"},
			wantErr: "doing",
		},
		{
			name:    "unknown sort",
			args:    []string{"issues", "list", "--sort", "priority"},
			wantErr: "priority",
		},
		{
			name:    "json conflicts with format",
			args:    []string{"--json", "--format", "table", "issues", "list"},
			wantErr: "--json conflicts with --format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			server := testutil.NewPagedServer(t)

			code, stdout, stderr := runCLI(t, server, tt.args...)
			assert.Equal(t, 2, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantErr)
			assert.Equal(t, 0, server.RequestCount())
		})
	}
}

func TestIssuesList_Failures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		respond  testutil.Responder
		wantCode int
		wantErr  string
	}{
		{
			name: "page limit",
			args: []string{"issues", "list", "--all", "--max-pages", "1"},
			respond: func(req testutil.GraphQLRequest, n int) (int, interface{}) {
				return http.StatusOK, testutil.IssuesPage(true, fmt.Sprintf("c%d", n+1), testutil.IssueRange(1, 2)...)
			},
			wantCode: 1,
			wantErr:  "page limit",
		},
		{
			name: "graphql errors report the last message",
			args: []string{"issues", "list"},
			respond: func(req testutil.GraphQLRequest, n int) (int, interface{}) {
				return http.StatusOK, testutil.Errors("A", "B")
			},
			wantCode: 1,
			wantErr:  "graphql error: B",
		},
		{
			name: "missing cursor",
			args: []string{"issues", "list", "--all"},
			respond: func(req testutil.GraphQLRequest, n int) (int, interface{}) {
				return http.StatusOK, testutil.IssuesPage(true, "", testutil.IssueRange(1, 2)...)
			},
			wantCode: 1,
			wantErr:  "no data",
		},
		{
			name: "empty envelope on server error",
			args: []string{"issues", "list"},
			respond: func(req testutil.GraphQLRequest, n int) (int, interface{}) {
				return http.StatusServiceUnavailable, map[string]interface{}{}
			},
			wantCode: 1,
			wantErr:  "no data",
		},
		{
			name: "unauthorized",
			args: []string{"issues", "list"},
			respond: func(req testutil.GraphQLRequest, n int) (int, interface{}) {
				return http.StatusUnauthorized, testutil.ErrorWithCode("Authentication required", "AUTHENTICATION_ERROR")
			},
			wantCode: 2,
			wantErr:  "authentication failed",
		},
		{
			name: "rate limited",
			args: []string{"issues", "list"},
			respond: func(req testutil.GraphQLRequest, n int) (int, interface{}) {
				return http.StatusBadRequest, testutil.ErrorWithCode("Rate limit exceeded", "RATELIMITED")
			},
			wantCode: 2,
			wantErr:  "rate limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			server := testutil.NewMockServer(t, tt.respond)

			code, stdout, stderr := runCLI(t, server, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, stdout, "no partial results on failure")
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestIssuesList_ErrorReportFirst(t *testing.T) {
	isolate(t)
	t.Setenv("SIRSEER_ERROR_REPORT", "first")
	server := testutil.NewPagedServer(t, testutil.Errors("A", "B"))

	code, _, stderr := runCLI(t, server, "issues", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "graphql error: A")
	assert.NotContains(t, stderr, "graphql error: B")
}

func TestIssuesList_TransportFailure(t *testing.T) {
	isolate(t)
	server := testutil.NewPagedServer(t)
	server.Close()

	code, stdout, stderr := runCLI(t, server, "issues", "list")
	assert.Equal(t, 3, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "network error")
}

func TestIssuesList_Stats(t *testing.T) {
	isolate(t)
	server := testutil.NewPagedServer(t,
		testutil.IssuesPage(true, "c1", testutil.IssueRange(1, 2)...),
		testutil.IssuesPage(false, "", testutil.IssueRange(3, 4)...),
	)
	statsFile := filepath.Join(t.TempDir(), "stats.json")

	code, stdout, stderr := runCLI(t, server,
		"issues", "list", "--all", "--page-size", "2", "--stats", "--stats-file", statsFile,
	)
	require.Equal(t, 0, code, stderr)
	assert.Len(t, lines(stdout), 5)
	assert.Contains(t, stderr, `"page_count": 2`)

	data, err := os.ReadFile(statsFile)
	require.NoError(t, err)

	var md metadata.ListMetadata
	require.NoError(t, json.Unmarshal(data, &md))
	assert.Equal(t, "issues", md.Parameters.Resource)
	assert.Equal(t, "none", md.Parameters.Limit)
	assert.Equal(t, 2, md.Results.PageCount)
	assert.Equal(t, 2, md.Results.APICallCount)
	assert.Equal(t, 4, md.Results.ItemsKept)
	require.Len(t, md.Pages, 2)
	assert.Equal(t, 4, md.Pages[1].Total)
	assert.NotEmpty(t, md.QueryID)
}

func TestIssuesList_OutputFile(t *testing.T) {
	isolate(t)
	server := testutil.NewPagedServer(t,
		testutil.IssuesPage(false, "", testutil.IssueRange(1, 3)...),
	)
	path := filepath.Join(t.TempDir(), "issues.ndjson")

	code, stdout, stderr := runCLI(t, server, "--format", "ndjson", "-o", path, "issues", "list")
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ENG-1", "ENG-2", "ENG-3"}, decodeNDJSON(t, string(data)))
}

func TestIssuesList_OutputFileNotCreatedOnFailure(t *testing.T) {
	isolate(t)
	server := testutil.NewPagedServer(t, testutil.Errors("Argument Validation Error"))
	path := filepath.Join(t.TempDir(), "issues.json")

	code, _, _ := runCLI(t, server, "--json", "--output", path, "issues", "list")
	assert.Equal(t, 1, code)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file for a failed command")
}

func TestIssuesList_OutputFileUnwritable(t *testing.T) {
	isolate(t)
	server := testutil.NewPagedServer(t,
		testutil.IssuesPage(false, "", testutil.IssueRange(1, 1)...),
	)
	path := filepath.Join(t.TempDir(), "missing", "issues.txt")

	code, _, stderr := runCLI(t, server, "-o", path, "issues", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to create output file")
}
