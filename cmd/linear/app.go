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
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sirseerhq/sirseer-linear/internal/config"
	relaierrors "github.com/sirseerhq/sirseer-linear/internal/errors"
	"github.com/sirseerhq/sirseer-linear/internal/filter"
	"github.com/sirseerhq/sirseer-linear/internal/gqlclient"
	"github.com/sirseerhq/sirseer-linear/internal/linear"
	"github.com/sirseerhq/sirseer-linear/internal/output"
	"github.com/sirseerhq/sirseer-linear/internal/telemetry"
	"github.com/sirseerhq/sirseer-linear/pkg/version"
)

const tracerName = "github.com/sirseerhq/sirseer-linear/cmd/linear"

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	token      string
	configPath string
	endpoint   string
	format     string
	outputPath string
	json       bool
	fullWidth  bool
	verbose    bool
}

// app holds what commands need once flags and configuration are resolved.
type app struct {
	flags globalFlags

	cfg      *config.Config
	logger   *zap.Logger
	tracer   trace.Tracer
	client   linear.Client
	printer  *output.Printer
	shutdown telemetry.ShutdownFunc
}

func (a *app) bindFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&a.flags.token, "token", "", "Linear API key (overrides LINEAR_API_KEY env var)")
	f.StringVar(&a.flags.configPath, "config", "", "Configuration file (default: .sirseer-linear.yaml or ~/.sirseer/linear.yaml)")
	f.StringVar(&a.flags.endpoint, "endpoint", "", "GraphQL endpoint (overrides configuration)")
	f.StringVar(&a.flags.format, "format", "", "Output format: table, json or ndjson")
	f.StringVarP(&a.flags.outputPath, "output", "o", "", "Write results to this file instead of stdout")
	f.BoolVar(&a.flags.json, "json", false, "Print JSON (same as --format json)")
	f.BoolVar(&a.flags.fullWidth, "full-width", false, "Do not truncate long titles in tables")
	f.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Log requests and pages to stderr")
	_ = f.MarkHidden("endpoint")
}

// setup resolves configuration and builds the client. It runs before every
// leaf command.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(a.flags.configPath)
	if err != nil {
		return err
	}
	if err := a.applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	a.cfg = cfg

	logger, err := telemetry.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.logger = logger

	shutdown, err := telemetry.SetupTracing(cmd.Context(), cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName, version.Version)
	if err != nil {
		return err
	}
	a.shutdown = shutdown
	a.tracer = telemetry.Tracer(tracerName)

	format, err := output.ParseFormat(cfg.Defaults.OutputFormat)
	if err != nil {
		return usageError{err}
	}
	tableOpts := output.TableOptions{
		FullWidth:  cfg.Defaults.FullWidth,
		TitleWidth: cfg.Defaults.TitleWidth,
	}
	if a.flags.outputPath != "" {
		a.printer = output.NewFilePrinter(config.ExpandPath(a.flags.outputPath), format, tableOpts)
	} else {
		a.printer = output.NewPrinter(cmd.OutOrStdout(), format, tableOpts)
	}

	if a.client != nil {
		return nil
	}

	token := a.flags.token
	if token == "" {
		token = cfg.Token()
	}
	if token == "" {
		return fmt.Errorf("Linear API key not found. Set %s or use --token flag: %w", cfg.Linear.TokenEnv, relaierrors.ErrInvalidToken)
	}

	report, err := gqlclient.ParseErrorReport(cfg.Linear.ErrorReport)
	if err != nil {
		return usageError{err}
	}

	exec := gqlclient.New(gqlclient.Options{
		Endpoint:    cfg.Linear.GraphQLEndpoint,
		Token:       token,
		Logger:      logger,
		Tracer:      a.tracer,
		ErrorReport: report,
	})
	a.client = linear.NewGraphQLClient(exec)

	logger.Debug("client ready",
		zap.String("endpoint", cfg.Linear.GraphQLEndpoint),
		zap.String("error_report", string(report)),
		zap.Duration("timeout", cfg.Linear.Timeout),
	)
	return nil
}

// applyFlags layers explicitly set global flags over cfg.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if a.flags.endpoint != "" {
		cfg.Linear.GraphQLEndpoint = a.flags.endpoint
	}
	if a.flags.format != "" {
		cfg.Defaults.OutputFormat = strings.ToLower(a.flags.format)
	}
	if a.flags.json {
		if a.flags.format != "" && cfg.Defaults.OutputFormat != string(output.FormatJSON) {
			return usageError{errors.New("--json conflicts with --format " + a.flags.format)}
		}
		cfg.Defaults.OutputFormat = string(output.FormatJSON)
	}
	if cmd.Flags().Changed("full-width") {
		cfg.Defaults.FullWidth = a.flags.fullWidth
	}
	if a.flags.verbose {
		cfg.Logging.Level = "debug"
	}
	return nil
}

// run executes fn under the configured timeout inside a span named after the
// command.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Linear.Timeout)
	defer cancel()

	ctx, span := a.tracer.Start(ctx, cmd.CommandPath(),
		trace.WithAttributes(attribute.String("cli.version", version.Version)),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	a.logger.Debug("command finished",
		zap.String("command", cmd.CommandPath()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)
	if err == nil {
		err = a.printer.Close()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// close flushes telemetry. It is safe to call when setup never ran.
func (a *app) close() {
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.shutdown(ctx)
	}
	if a.printer != nil {
		_ = a.printer.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// usageError marks errors caused by invalid invocation.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	var usage usageError
	if errors.As(err, &usage) ||
		errors.Is(err, filter.ErrConflictingStates) ||
		strings.HasPrefix(err.Error(), "unknown command") {
		return 2
	}

	// Check for specific error types
	if errors.Is(err, relaierrors.ErrInvalidToken) ||
		errors.Is(err, relaierrors.ErrNotFound) ||
		errors.Is(err, relaierrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, relaierrors.ErrTransport) ||
		errors.Is(err, context.DeadlineExceeded) {
		return 3 // Network errors
	}

	return 1 // General error
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError{err}
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
