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

// Package linear provides a read-only client for Linear's GraphQL API.
//
// The package includes:
//   - A Client interface fetching single pages of issues, teams and workflow
//     states, the current user and individual issues
//   - A GraphQLClient implementation on top of gqlclient.Executor
//   - ListIssues, ListTeams and ListWorkflowStates, which drive pagination
//     through paginate.Collect
//   - A MockClient for tests
//
// Basic usage:
//
//	exec := gqlclient.New(gqlclient.Options{Token: os.Getenv("LINEAR_API_KEY")})
//	client := linear.NewGraphQLClient(exec)
//	issues, err := linear.ListIssues(ctx, client, linear.IssueQuery{
//	    SortBy: linear.SortUpdated,
//	    Limit:  paginate.LimitTo(20),
//	})
package linear
