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

package integration

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirseerhq/sirseer-linear/test/testutil"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	// Build binary in temp directory
	tmpDir := t.TempDir()
	binaryPath := filepath.Join(tmpDir, "sirseer-linear")

	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/linear")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\nOutput: %s", err, output)
	}

	return binaryPath
}

// result is the outcome of one CLI invocation.
type result struct {
	exitCode int
	stdout   string
	stderr   string
}

// runBinary runs the binary in an empty working directory with a clean
// environment plus env.
func runBinary(t *testing.T, binaryPath string, env []string, args ...string) result {
	t.Helper()
	home := t.TempDir()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append([]string{"PATH=" + os.Getenv("PATH"), "HOME=" + home}, env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("Unexpected error type: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}

	return result{exitCode: exitCode, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCLI_HelpCommand(t *testing.T) {
	binaryPath := buildBinary(t)

	tests := []struct {
		name     string
		args     []string
		wantText []string
	}{
		{
			name:     "main help",
			args:     []string{"--help"},
			wantText: []string{"sirseer-linear", "issues", "teams", "states", "me"},
		},
		{
			name:     "issues list help",
			args:     []string{"issues", "list", "--help"},
			wantText: []string{"--limit", "--all", "--assignee", "--state", "--exclude-state", "--sort"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runBinary(t, binaryPath, nil, tt.args...)
			if res.exitCode != 0 {
				t.Fatalf("Help command failed with exit code %d: %s", res.exitCode, res.stderr)
			}
			for _, want := range tt.wantText {
				if !strings.Contains(res.stdout, want) {
					t.Errorf("Expected %q in help output", want)
				}
			}
			if strings.Contains(res.stdout, "--endpoint") {
				t.Error("--endpoint should be hidden")
			}
		})
	}
}

func TestCLI_VersionFlag(t *testing.T) {
	binaryPath := buildBinary(t)

	res := runBinary(t, binaryPath, nil, "--version")
	if res.exitCode != 0 {
		t.Fatalf("Version flag failed: %s", res.stderr)
	}
	if !strings.Contains(res.stdout, "sirseer-linear") {
		t.Error("Expected binary name in version output")
	}
}

func TestCLI_MissingToken(t *testing.T) {
	binaryPath := buildBinary(t)

	res := runBinary(t, binaryPath, nil, "issues", "list")
	if res.exitCode != 2 {
		t.Errorf("Expected exit code 2, got %d", res.exitCode)
	}
	if !strings.Contains(res.stderr, "Linear API key not found") {
		t.Errorf("Expected missing token error, got: %s", res.stderr)
	}
}

// TestCLI_ExitCodes verifies that the CLI returns appropriate exit codes
func TestCLI_ExitCodes(t *testing.T) {
	binaryPath := buildBinary(t)

	ok := testutil.NewMockServer(t, func(req testutil.GraphQLRequest, n int) (int, interface{}) {
		return 200, testutil.IssuesPage(false, "", testutil.IssueRange(1, 3)...)
	})
	appErr := testutil.NewMockServer(t, func(req testutil.GraphQLRequest, n int) (int, interface{}) {
		return 200, testutil.Errors("Argument Validation Error")
	})
	unauthorized := testutil.NewMockServer(t, func(req testutil.GraphQLRequest, n int) (int, interface{}) {
		return 401, testutil.ErrorWithCode("Authentication required", "AUTHENTICATION_ERROR")
	})
	down := testutil.NewMockServer(t, nil)
	down.Close()

	tests := []struct {
		name         string
		server       *testutil.MockServer
		args         []string
		wantExitCode int
	}{
		{
			name:         "success",
			server:       ok,
			args:         []string{"issues", "list"},
			wantExitCode: 0,
		},
		{
			name:         "help command",
			args:         []string{"--help"},
			wantExitCode: 0,
		},
		{
			name:         "graphql error",
			server:       appErr,
			args:         []string{"issues", "list"},
			wantExitCode: 1,
		},
		{
			name:         "conflicting state filters",
			server:       ok,
			args:         []string{"issues", "list", "--state", "started", "--exclude-state", "backlog"},
			wantExitCode: 2,
		},
		{
			name:         "unknown flag",
			args:         []string{"issues", "list", "--unknown-flag"},
			wantExitCode: 2,
		},
		{
			name:         "invalid api key",
			server:       unauthorized,
			args:         []string{"me"},
			wantExitCode: 2,
		},
		{
			name:         "server unreachable",
			server:       down,
			args:         []string{"teams", "list"},
			wantExitCode: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env []string
			if tt.server != nil {
				env = []string{
					"LINEAR_API_KEY=lin_api_test",
					"LINEAR_GRAPHQL_ENDPOINT=" + tt.server.Endpoint(),
				}
			}

			res := runBinary(t, binaryPath, env, tt.args...)
			if res.exitCode != tt.wantExitCode {
				t.Errorf("Expected exit code %d, got %d (stderr: %s)", tt.wantExitCode, res.exitCode, res.stderr)
			}
		})
	}
}
