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

package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirseerhq/sirseer-linear/internal/linear"
)

// DateFormat is the layout used for timestamps in tables.
const DateFormat = "2006-01-02 15:04"

// DefaultTitleWidth is the title column width when FullWidth is off.
const DefaultTitleWidth = 60

// TableOptions controls table rendering.
type TableOptions struct {
	// FullWidth disables title truncation.
	FullWidth bool
	// TitleWidth is the maximum title length in runes. Defaults to DefaultTitleWidth.
	TitleWidth int
	// Location is the zone timestamps are shown in. Defaults to time.Local.
	Location *time.Location
}

func (o TableOptions) withDefaults() TableOptions {
	if o.TitleWidth <= 0 {
		o.TitleWidth = DefaultTitleWidth
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

func (o TableOptions) date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(o.Location).Format(DateFormat)
}

func (o TableOptions) title(s string) string {
	if o.FullWidth {
		return s
	}
	return truncate(s, o.TitleWidth)
}

// table wraps a tabwriter and remembers the first write error.
type table struct {
	tw  *tabwriter.Writer
	err error
}

func newTable(w io.Writer) *table {
	return &table{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
}

func (t *table) row(cells ...string) {
	if t.err != nil {
		return
	}
	for i, c := range cells {
		cells[i] = sanitize(c)
	}
	_, t.err = fmt.Fprintln(t.tw, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	if t.err != nil {
		return fmt.Errorf("failed to write table: %w", t.err)
	}
	if err := t.tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// IssueTable renders one row per issue.
func IssueTable(w io.Writer, issues []linear.Issue, opts TableOptions) error {
	opts = opts.withDefaults()
	t := newTable(w)
	t.row("id", "title", "state", "assignee", "created_at", "updated_at", "priority", "url")
	for _, issue := range issues {
		t.row(
			issue.Identifier,
			opts.title(issue.Title),
			stateLabel(issue.State),
			issue.AssigneeName(),
			opts.date(issue.CreatedAt),
			opts.date(issue.UpdatedAt),
			priorityLabel(issue),
			issue.URL,
		)
	}
	return t.flush()
}

// IssueDetail renders one issue as a key/value table. Rows for unset
// optional fields are omitted.
func IssueDetail(w io.Writer, issue linear.Issue, opts TableOptions) error {
	opts = opts.withDefaults()

	state := stateLabel(issue.State)
	if issue.IsTrashed() {
		state += " -- TRASHED"
	}
	creator := ""
	if issue.Creator != nil {
		creator = issue.Creator.DisplayName
	}

	t := newTable(w)
	t.row("id", issue.Identifier)
	t.row("url", issue.URL)
	t.row("title", issue.Title)
	t.row("state", state)
	t.row("creator", creator)
	t.row("assignee", issue.AssigneeName())
	t.row("team", issue.Team.Key)
	if len(issue.Labels) > 0 {
		names := make([]string, 0, len(issue.Labels))
		for _, l := range issue.Labels {
			names = append(names, l.Name)
		}
		t.row("labels", strings.Join(names, ", "))
	}
	t.row("priority", fmt.Sprintf("%s (%s)", issue.PriorityLabel, formatNumber(issue.Priority)))
	if issue.Parent != nil {
		t.row("parent", issue.Parent.Identifier)
	}
	if issue.Project != nil {
		t.row("project", issue.Project.Name)
	}
	t.row("created at", opts.date(issue.CreatedAt))
	t.row("updated at", opts.date(issue.UpdatedAt))
	optionalTime(t, "started at", issue.StartedAt, opts)
	optionalTime(t, "completed at", issue.CompletedAt, opts)
	optionalTime(t, "canceled at", issue.CanceledAt, opts)
	if issue.DueDate != nil {
		t.row("due date", issue.DueDate.Format(time.DateOnly))
	}
	if issue.Estimate != nil {
		t.row("estimate", formatNumber(*issue.Estimate))
	}
	if issue.Description != nil {
		t.row("description", *issue.Description)
	}
	return t.flush()
}

// TeamTable renders one row per team.
func TeamTable(w io.Writer, teams []linear.Team) error {
	t := newTable(w)
	t.row("id", "key", "name", "description")
	for _, team := range teams {
		desc := ""
		if team.Description != nil {
			desc = *team.Description
		}
		t.row(team.ID, team.Key, team.Name, desc)
	}
	return t.flush()
}

// StateTable renders one row per workflow state.
func StateTable(w io.Writer, states []linear.WorkflowState) error {
	t := newTable(w)
	t.row("id", "team", "name", "type", "color")
	for _, st := range states {
		team := ""
		if st.Team != nil {
			team = st.Team.Key
		}
		t.row(st.ID, team, st.Name, string(st.Type), st.Color)
	}
	return t.flush()
}

// UserDetail renders a user as a key/value table.
func UserDetail(w io.Writer, user linear.User) error {
	t := newTable(w)
	t.row("id", user.ID)
	t.row("name", user.Name)
	t.row("display name", user.DisplayName)
	t.row("email", user.Email)
	t.row("admin", strconv.FormatBool(user.Admin))
	t.row("active", strconv.FormatBool(user.Active))
	if user.URL != "" {
		t.row("url", user.URL)
	}
	return t.flush()
}

func optionalTime(t *table, key string, ts *time.Time, opts TableOptions) {
	if ts != nil {
		t.row(key, opts.date(*ts))
	}
}

func stateLabel(st linear.WorkflowState) string {
	return fmt.Sprintf("%s (%s)", st.Name, st.Type)
}

// priorityLabel leaves "No priority" (0) blank.
func priorityLabel(issue linear.Issue) string {
	if issue.Priority == 0 {
		return ""
	}
	return issue.PriorityLabel
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// truncate shortens s to at most width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// sanitize keeps cell content on one line so rows stay aligned.
func sanitize(s string) string {
	return strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ").Replace(s)
}
