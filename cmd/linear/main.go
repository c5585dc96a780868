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
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-linear/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	defer a.close()

	rootCmd := newRootCommand(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return mapErrorToExitCode(err)
	}
	return 0
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sirseer-linear",
		Short: "Query issues, teams and workflow states from Linear",
		Long: `SirSeer Linear is a read-only command-line client for Linear.
It pages through the GraphQL API on your behalf, applies assignee and state
filters locally and prints results as a table, JSON or NDJSON.

Authentication uses a Linear API key:
  - Use --token flag to provide the key directly
  - Or set the LINEAR_API_KEY environment variable`,
		Version:           version.Version,
		SilenceUsage:      true, // Don't show usage on error
		SilenceErrors:     true, // We'll handle error printing ourselves
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	a.bindFlags(rootCmd)

	rootCmd.AddCommand(
		newMeCommand(a),
		newIssuesCommand(a),
		newTeamsCommand(a),
		newStatesCommand(a),
	)

	return rootCmd
}
