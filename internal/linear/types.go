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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StateType is the workflow state classification Linear attaches to every state.
type StateType string

// The five state types, in the order Linear presents them.
const (
	StateStarted   StateType = "started"
	StateUnstarted StateType = "unstarted"
	StateBacklog   StateType = "backlog"
	StateCompleted StateType = "completed"
	StateCanceled  StateType = "canceled"
)

// AllStateTypes returns every state type.
func AllStateTypes() []StateType {
	return []StateType{StateStarted, StateUnstarted, StateBacklog, StateCompleted, StateCanceled}
}

// ParseStateType parses a state type name, ignoring case and surrounding space.
func ParseStateType(s string) (StateType, error) {
	st := StateType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStateTypes() {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown state %q (want started, unstarted, backlog, completed or canceled)", s)
}

// SortBy selects the server-side ordering of issue lists.
type SortBy string

const (
	// SortCreated orders by creation time.
	SortCreated SortBy = "created"
	// SortUpdated orders by last update time.
	SortUpdated SortBy = "updated"
)

// ParseSortBy parses a sort key. An empty string selects SortCreated.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortCreated:
		return SortCreated, nil
	case SortUpdated:
		return SortUpdated, nil
	default:
		return "", fmt.Errorf("unknown sort %q (want created or updated)", s)
	}
}

// orderBy returns the PaginationOrderBy enum value for s.
func (s SortBy) orderBy() string {
	if s == SortUpdated {
		return "updatedAt"
	}
	return "createdAt"
}

// User is a Linear user.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	Admin       bool   `json:"admin,omitempty"`
	Active      bool   `json:"active,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Team is a Linear team.
type Team struct {
	ID          string  `json:"id"`
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// WorkflowState is one column of a team's workflow.
type WorkflowState struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     StateType `json:"type"`
	Color    string    `json:"color,omitempty"`
	Position float64   `json:"position,omitempty"`
	Team     *TeamRef  `json:"team,omitempty"`
}

// TeamRef is the short team reference embedded in other records.
type TeamRef struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// Label is an issue label.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectRef is the short project reference embedded in issues.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParentRef is the short parent issue reference embedded in issues.
type ParentRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
}

// Date is a calendar date without time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON encodes the date as YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

// Issue is a Linear issue. Fields below Description are only populated by
// GetIssue.
type Issue struct {
	ID            string        `json:"id"`
	Identifier    string        `json:"identifier"`
	Title         string        `json:"title"`
	URL           string        `json:"url"`
	Priority      float64       `json:"priority"`
	PriorityLabel string        `json:"priorityLabel"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Assignee      *User         `json:"assignee"`
	State         WorkflowState `json:"state"`
	Team          TeamRef       `json:"team"`
	Project       *ProjectRef   `json:"project"`
	Parent        *ParentRef    `json:"parent"`
	Labels        []Label       `json:"labels"`

	Description *string    `json:"description,omitempty"`
	BranchName  string     `json:"branchName,omitempty"`
	Creator     *User      `json:"creator,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CanceledAt  *time.Time `json:"canceledAt,omitempty"`
	DueDate     *Date      `json:"dueDate,omitempty"`
	Estimate    *float64   `json:"estimate,omitempty"`
	Trashed     *bool      `json:"trashed,omitempty"`
}

// AssigneeName returns the assignee's display name, empty when unassigned.
func (i Issue) AssigneeName() string {
	if i.Assignee == nil {
		return ""
	}
	return i.Assignee.DisplayName
}

// IsTrashed reports whether the issue is in the trash.
func (i Issue) IsTrashed() bool {
	return i.Trashed != nil && *i.Trashed
}

// UnmarshalJSON accepts labels either as a connection ({"nodes": [...]}),
// which is what the API returns, or as a plain list.
func (i *Issue) UnmarshalJSON(data []byte) error {
	type plain Issue
	aux := struct {
		*plain
		Labels json.RawMessage `json:"labels"`
	}{plain: (*plain)(i)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	i.Labels = nil
	raw := bytes.TrimSpace(aux.Labels)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '[':
		if err := json.Unmarshal(raw, &i.Labels); err != nil {
			return fmt.Errorf("labels: %w", err)
		}
	default:
		var conn struct {
			Nodes []Label `json:"nodes"`
		}
		if err := json.Unmarshal(raw, &conn); err != nil {
			return fmt.Errorf("labels: %w", err)
		}
		i.Labels = conn.Nodes
	}
	return nil
}
