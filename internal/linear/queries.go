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

// Query documents. Field selections mirror the JSON tags in types.go.

const viewerQuery = `query Viewer {
  viewer {
    id
    name
    displayName
    email
    admin
    active
    url
  }
}`

const listIssuesQuery = `query ListIssues($first: Int, $after: String, $orderBy: PaginationOrderBy, $includeArchived: Boolean) {
  issues(first: $first, after: $after, orderBy: $orderBy, includeArchived: $includeArchived) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      id
      identifier
      title
      url
      priority
      priorityLabel
      createdAt
      updatedAt
      assignee { id name displayName }
      state { id name type color }
      team { id key name }
      project { id name }
      parent { id identifier }
      labels { nodes { id name } }
    }
  }
}`

const showIssueQuery = `query ShowIssue($id: String!) {
  issue(id: $id) {
    id
    identifier
    title
    url
    priority
    priorityLabel
    createdAt
    updatedAt
    assignee { id name displayName }
    creator { id name displayName }
    state { id name type color }
    team { id key name }
    project { id name }
    parent { id identifier }
    labels { nodes { id name } }
    description
    branchName
    startedAt
    completedAt
    canceledAt
    dueDate
    estimate
    trashed
  }
}`

const listTeamsQuery = `query ListTeams($first: Int, $after: String) {
  teams(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      id
      key
      name
      description
    }
  }
}`

const listWorkflowStatesQuery = `query ListWorkflowStates($first: Int, $after: String) {
  workflowStates(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      id
      name
      type
      color
      position
      team { id key name }
    }
  }
}`
