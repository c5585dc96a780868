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
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirseerhq/sirseer-linear/internal/filter"
	"github.com/sirseerhq/sirseer-linear/internal/linear"
	"github.com/sirseerhq/sirseer-linear/internal/metadata"
	"github.com/sirseerhq/sirseer-linear/internal/paginate"
	"github.com/sirseerhq/sirseer-linear/pkg/version"
)

// listFlags are the flags of "issues list".
type listFlags struct {
	limit           int
	all             bool
	sort            string
	assignee        string
	states          []string
	excludeStates   []string
	pageSize        int
	maxPages        int
	includeArchived bool
	stats           bool
	statsFile       string
}

func newIssuesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "Work with issues",
	}
	cmd.AddCommand(newIssuesListCommand(a), newIssuesShowCommand(a))
	return cmd
}

func newIssuesListCommand(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Long: `List issues visible to the API key, newest first.

Filters are applied locally after each page is fetched, and only matching
issues count toward --limit. The page that reaches the limit is printed in
full, so slightly more than --limit issues may be shown.

State types are: started, unstarted, backlog, completed, canceled.`,
		Example: `  sirseer-linear issues list -n 20 --sort updated
  sirseer-linear issues list --all --assignee alice --state started,unstarted
  sirseer-linear issues list --exclude-state completed,canceled --stats`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, params, err := a.issueQuery(cmd, flags)
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context) error {
				return a.listIssues(ctx, cmd, q, params, flags)
			})
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.limit, "limit", "n", 0, "Number of matching issues to list (default from config, 10)")
	f.BoolVar(&flags.all, "all", false, "List every matching issue")
	f.StringVar(&flags.sort, "sort", "", "Sort by created or updated (default created)")
	f.StringVar(&flags.assignee, "assignee", "", "Only issues assigned to this display name (exact match)")
	f.StringSliceVar(&flags.states, "state", nil, "Only issues in these state types")
	f.StringSliceVar(&flags.excludeStates, "exclude-state", nil, "Skip issues in these state types")
	f.IntVar(&flags.pageSize, "page-size", 0, "Issues requested per page, at most 250 (default from config, 100)")
	f.IntVar(&flags.maxPages, "max-pages", 0, "Stop with an error after this many pages (default from config, 1000)")
	f.BoolVar(&flags.includeArchived, "include-archived", false, "Include archived issues")
	f.BoolVar(&flags.stats, "stats", false, "Print pagination statistics to stderr")
	f.StringVar(&flags.statsFile, "stats-file", "", "Write pagination statistics as JSON to this file")

	return cmd
}

// issueQuery turns flags and configuration into a query.
func (a *app) issueQuery(cmd *cobra.Command, flags listFlags) (linear.IssueQuery, metadata.ListParams, error) {
	defaults := a.cfg.Defaults

	sortName := defaults.Sort
	if flags.sort != "" {
		sortName = flags.sort
	}
	sortBy, err := linear.ParseSortBy(sortName)
	if err != nil {
		return linear.IssueQuery{}, metadata.ListParams{}, usageError{err}
	}

	if flags.all && cmd.Flags().Changed("limit") {
		return linear.IssueQuery{}, metadata.ListParams{}, usageError{errors.New("--limit and --all cannot be used together")}
	}
	limit := paginate.LimitTo(defaults.Limit)
	switch {
	case flags.all:
		limit = paginate.NoLimit
	case cmd.Flags().Changed("limit"):
		if flags.limit < 0 {
			return linear.IssueQuery{}, metadata.ListParams{}, usageError{fmt.Errorf("--limit must not be negative, got %d", flags.limit)}
		}
		limit = paginate.LimitTo(flags.limit)
	}

	pageSize := defaults.PageSize
	if cmd.Flags().Changed("page-size") {
		if flags.pageSize <= 0 || flags.pageSize > linear.MaxPageSize {
			return linear.IssueQuery{}, metadata.ListParams{}, usageError{fmt.Errorf("--page-size must be between 1 and %d, got %d", linear.MaxPageSize, flags.pageSize)}
		}
		pageSize = flags.pageSize
	}

	maxPages := defaults.MaxPages
	if cmd.Flags().Changed("max-pages") {
		if flags.maxPages < 0 {
			return linear.IssueQuery{}, metadata.ListParams{}, usageError{fmt.Errorf("--max-pages must not be negative, got %d", flags.maxPages)}
		}
		maxPages = flags.maxPages
	}

	spec, err := filter.New(flags.assignee, flags.states, flags.excludeStates)
	if err != nil {
		if errors.Is(err, filter.ErrConflictingStates) {
			return linear.IssueQuery{}, metadata.ListParams{}, err
		}
		return linear.IssueQuery{}, metadata.ListParams{}, usageError{err}
	}

	q := linear.IssueQuery{
		SortBy:          sortBy,
		PageSize:        pageSize,
		Limit:           limit,
		Filter:          spec.Predicate(),
		MaxPages:        maxPages,
		IncludeArchived: flags.includeArchived,
	}
	params := metadata.ListParams{
		Resource:        "issues",
		Sort:            string(sortBy),
		Limit:           limit.String(),
		PageSize:        pageSize,
		MaxPages:        maxPages,
		Filter:          spec.String(),
		IncludeArchived: flags.includeArchived,
	}
	return q, params, nil
}

func (a *app) listIssues(ctx context.Context, cmd *cobra.Command, q linear.IssueQuery, params metadata.ListParams, flags listFlags) error {
	tracker := metadata.New()
	q.OnPage = func(s paginate.PageStats) {
		tracker.ObservePage(s)
		a.logger.Debug("page fetched",
			zap.Int("page", s.Index),
			zap.Int("requested", s.Requested),
			zap.Int("received", s.Received),
			zap.Int("kept", s.Kept),
			zap.Int("total", s.Total),
		)
	}

	a.logger.Debug("listing issues",
		zap.String("sort", params.Sort),
		zap.String("limit", params.Limit),
		zap.Int("page_size", params.PageSize),
		zap.String("filter", params.Filter),
	)

	issues, err := linear.ListIssues(ctx, a.client, q)
	if err != nil {
		return err
	}
	a.logger.Debug("issues listed",
		zap.Int("issues", len(issues)),
		zap.Int("api_calls", tracker.APICallCount()),
	)

	if err := a.printer.Issues(issues); err != nil {
		return err
	}

	if !flags.stats && flags.statsFile == "" {
		return nil
	}
	for _, issue := range issues {
		tracker.UpdateItemStats(issue.CreatedAt, issue.UpdatedAt)
	}
	md := tracker.GenerateMetadata(version.Version, params)
	if flags.stats {
		if err := metadata.WriteMetadataToWriter(md, cmd.ErrOrStderr()); err != nil {
			return fmt.Errorf("failed to print statistics: %w", err)
		}
	}
	if flags.statsFile != "" {
		if err := metadata.SaveMetadata(md, flags.statsFile); err != nil {
			return err
		}
	}
	return nil
}

func newIssuesShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show <ID>",
		Short:   "Show one issue in detail",
		Example: "  sirseer-linear issues show ENG-123",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return usageError{errors.New("issue id must not be empty")}
			}
			return a.run(cmd, func(ctx context.Context) error {
				issue, err := a.client.GetIssue(ctx, id)
				if err != nil {
					return err
				}
				return a.printer.Issue(*issue)
			})
		},
	}
}
