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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirseerhq/sirseer-linear/internal/linear"
)

func newTeamsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Work with teams",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every team visible to the API key",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context) error {
				teams, err := linear.ListTeams(ctx, a.client, a.cfg.Defaults.MaxPages)
				if err != nil {
					return err
				}
				a.logger.Debug("teams listed", zap.Int("count", len(teams)))
				return a.printer.Teams(teams)
			})
		},
	})
	return cmd
}

func newStatesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "states",
		Short: "Work with workflow states",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the workflow states of every team",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context) error {
				states, err := linear.ListWorkflowStates(ctx, a.client, a.cfg.Defaults.MaxPages)
				if err != nil {
					return err
				}
				a.logger.Debug("workflow states listed", zap.Int("count", len(states)))
				return a.printer.States(states)
			})
		},
	})
	return cmd
}
