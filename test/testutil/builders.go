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

package testutil

import (
	"fmt"
	"time"
)

// IssueBuilder builds issue nodes as the Linear API returns them.
type IssueBuilder struct {
	number    int
	title     string
	state     string
	stateName string
	assignee  string
	priority  float64
	createdAt time.Time
	labels    []string
}

// NewIssueBuilder creates a builder for issue ENG-<number>.
func NewIssueBuilder(number int) *IssueBuilder {
	return &IssueBuilder{
		number:    number,
		title:     fmt.Sprintf("Issue %d", number),
		state:     "unstarted",
		stateName: "Todo",
		createdAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(number) * time.Hour),
	}
}

// WithTitle sets the title
func (b *IssueBuilder) WithTitle(title string) *IssueBuilder {
	b.title = title
	return b
}

// WithState sets the state type and name
func (b *IssueBuilder) WithState(stateType, name string) *IssueBuilder {
	b.state = stateType
	b.stateName = name
	return b
}

// WithAssignee sets the assignee display name
func (b *IssueBuilder) WithAssignee(displayName string) *IssueBuilder {
	b.assignee = displayName
	return b
}

// WithPriority sets the numeric priority
func (b *IssueBuilder) WithPriority(p float64) *IssueBuilder {
	b.priority = p
	return b
}

// WithLabels sets label names
func (b *IssueBuilder) WithLabels(labels ...string) *IssueBuilder {
	b.labels = labels
	return b
}

// Build creates the issue node
func (b *IssueBuilder) Build() map[string]interface{} {
	identifier := fmt.Sprintf("ENG-%d", b.number)

	labels := make([]interface{}, 0, len(b.labels))
	for i, name := range b.labels {
		labels = append(labels, map[string]interface{}{"id": fmt.Sprintf("label-%d", i), "name": name})
	}

	var assignee interface{}
	if b.assignee != "" {
		assignee = map[string]interface{}{
			"id":          "user-" + b.assignee,
			"name":        b.assignee,
			"displayName": b.assignee,
		}
	}

	return map[string]interface{}{
		"id":            fmt.Sprintf("issue-%d", b.number),
		"identifier":    identifier,
		"title":         b.title,
		"url":           "https://linear.app/acme/issue/" + identifier,
		"priority":      b.priority,
		"priorityLabel": "No priority",
		"createdAt":     b.createdAt.Format(time.RFC3339),
		"updatedAt":     b.createdAt.Add(time.Hour).Format(time.RFC3339),
		"assignee":      assignee,
		"state": map[string]interface{}{
			"id":   "state-" + b.state,
			"name": b.stateName,
			"type": b.state,
		},
		"team":    map[string]interface{}{"id": "team-1", "key": "ENG", "name": "Engineering"},
		"project": nil,
		"parent":  nil,
		"labels":  map[string]interface{}{"nodes": labels},
	}
}

// Connection builds a {"data": {<field>: {nodes, pageInfo}}} response.
// An empty cursor is encoded as null.
func Connection(field string, hasNext bool, cursor string, nodes ...map[string]interface{}) map[string]interface{} {
	var endCursor interface{}
	if cursor != "" {
		endCursor = cursor
	}
	if nodes == nil {
		nodes = []map[string]interface{}{}
	}

	return map[string]interface{}{
		"data": map[string]interface{}{
			field: map[string]interface{}{
				"nodes": nodes,
				"pageInfo": map[string]interface{}{
					"hasNextPage": hasNext,
					"endCursor":   endCursor,
				},
			},
		},
	}
}

// IssuesPage builds an issues connection response.
func IssuesPage(hasNext bool, cursor string, issues ...map[string]interface{}) map[string]interface{} {
	return Connection("issues", hasNext, cursor, issues...)
}

// IssueRange builds issue nodes numbered from start to end inclusive.
func IssueRange(start, end int) []map[string]interface{} {
	nodes := make([]map[string]interface{}, 0, end-start+1)
	for i := start; i <= end; i++ {
		nodes = append(nodes, NewIssueBuilder(i).Build())
	}
	return nodes
}

// Errors builds a response carrying only GraphQL errors.
func Errors(messages ...string) map[string]interface{} {
	errs := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		errs = append(errs, map[string]interface{}{"message": msg})
	}
	return map[string]interface{}{"data": nil, "errors": errs}
}

// ErrorWithCode builds a response carrying one GraphQL error with extensions.code.
func ErrorWithCode(message, code string) map[string]interface{} {
	return map[string]interface{}{
		"errors": []interface{}{
			map[string]interface{}{
				"message":    message,
				"extensions": map[string]interface{}{"code": code},
			},
		},
	}
}

// Data wraps a payload in a {"data": ...} envelope.
func Data(payload map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"data": payload}
}
