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

package gqlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultEndpoint is Linear's public GraphQL endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

const tracerName = "github.com/sirseerhq/sirseer-linear/internal/gqlclient"

// Options configures an Executor. Zero values select the documented defaults.
type Options struct {
	// Endpoint is the GraphQL URL. Defaults to DefaultEndpoint.
	Endpoint string

	// Token is the API credential. See authorizationValue for header formatting.
	Token string

	// HTTPClient overrides the pooled client built by New. Its transport is
	// still wrapped with authentication and the response size limit.
	HTTPClient *http.Client

	// Logger receives one debug record per request and one error record per
	// GraphQL error. Defaults to a no-op logger.
	Logger *zap.Logger

	// Tracer creates one span per request. Defaults to the global tracer provider.
	Tracer trace.Tracer

	// ErrorReport selects the surfaced message when a response carries
	// several GraphQL errors. Defaults to ReportLast.
	ErrorReport ErrorReport

	// MaxResponseBytes caps response bodies. Defaults to DefaultMaxResponseBytes.
	MaxResponseBytes int64
}

// Executor sends GraphQL operations. It is safe for concurrent use and keeps
// no state between calls.
type Executor struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
	tracer   trace.Tracer
	report   ErrorReport
}

// New creates an Executor from opts.
func New(opts Options) *Executor {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracerName)
	}
	if opts.ErrorReport == "" {
		opts.ErrorReport = ReportLast
	}
	if opts.MaxResponseBytes <= 0 {
		opts.MaxResponseBytes = DefaultMaxResponseBytes
	}

	var base http.RoundTripper
	var timeout time.Duration
	if opts.HTTPClient != nil {
		base = opts.HTTPClient.Transport
		timeout = opts.HTTPClient.Timeout
	}
	if base == nil {
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		}
	}

	return &Executor{
		endpoint: opts.Endpoint,
		client: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				token:    opts.Token,
				maxBytes: opts.MaxResponseBytes,
				base:     base,
			},
		},
		logger: opts.Logger,
		tracer: opts.Tracer,
		report: opts.ErrorReport,
	}
}

// envelope is the GraphQL-over-HTTP response body.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Execute sends op and decodes the response data into out, which must be a
// pointer. Failures are always returned as *RequestError.
func (e *Executor) Execute(ctx context.Context, op Operation, out interface{}) error {
	requestID := uuid.NewString()
	logger := e.logger.With(
		zap.String("operation", op.Name()),
		zap.String("request_id", requestID),
	)

	ctx, span := e.tracer.Start(ctx, "graphql.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("graphql.operation.name", op.Name()),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	err := e.execute(ctx, op, out, requestID, logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (e *Executor) execute(ctx context.Context, op Operation, out interface{}, requestID string, logger *zap.Logger) error {
	body, err := json.Marshal(op)
	if err != nil {
		return e.transportError(op, 0, "failed to encode request", err)
	}

	logger.Debug("sending query",
		zap.String("query", op.Query()),
		zap.Any("variables", op.Variables()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return e.transportError(op, 0, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := e.client.Do(req)
	if err != nil {
		return e.transportError(op, 0, "request failed", err)
	}
	defer resp.Body.Close()

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	logger.Debug("response", zap.Int("status", resp.StatusCode))

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return e.transportError(op, resp.StatusCode, fmt.Sprintf("unexpected status %d", resp.StatusCode), err)
		}
		return e.transportError(op, resp.StatusCode, "failed to decode response", err)
	}

	if len(env.Errors) > 0 {
		span.SetAttributes(attribute.Int("graphql.error_count", len(env.Errors)))
		for i, gqlErr := range env.Errors {
			logger.Error("graphql error",
				zap.Int("index", i),
				zap.String("message", gqlErr.Message),
				zap.String("code", gqlErr.Code()),
				zap.Any("path", gqlErr.Path),
			)
		}
		return &RequestError{
			Kind:       KindApplication,
			Operation:  op.Name(),
			Message:    e.report.message(env.Errors),
			Errors:     env.Errors,
			StatusCode: resp.StatusCode,
		}
	}

	// A decoded envelope without errors or data is NoData whatever the status.
	if len(env.Data) == 0 || bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		return &RequestError{
			Kind:       KindNoData,
			Operation:  op.Name(),
			Message:    "no data",
			StatusCode: resp.StatusCode,
		}
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return e.transportError(op, resp.StatusCode, "failed to decode data", err)
	}

	return nil
}

func (e *Executor) transportError(op Operation, status int, msg string, err error) error {
	return &RequestError{
		Kind:       KindTransport,
		Operation:  op.Name(),
		Message:    msg,
		StatusCode: status,
		Err:        err,
	}
}
