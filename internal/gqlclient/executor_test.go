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
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	relaierrors "github.com/sirseerhq/sirseer-linear/internal/errors"
)

const viewerQuery = `query Me { viewer { id name } }`

type viewerData struct {
	Viewer struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"viewer"`
}

func newTestExecutor(t *testing.T, handler http.HandlerFunc, opts Options) *Executor {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts.Endpoint = server.URL + "/graphql"
	return New(opts)
}

func mustOperation(t *testing.T, query string) Operation {
	t.Helper()
	op, err := NewOperation(query, nil)
	require.NoError(t, err)
	return op
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestExecutor_Success(t *testing.T) {
	exec := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "lin_api_test", r.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "sirseer-linear/"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, viewerQuery, body["query"])
		assert.Equal(t, "Me", body["operationName"])

		writeJSON(w, http.StatusOK, `{"data":{"viewer":{"id":"u1","name":"Ada"}}}`)
	}, Options{Token: "lin_api_test"})

	var out viewerData
	err := exec.Execute(context.Background(), mustOperation(t, viewerQuery), &out)
	require.NoError(t, err)
	assert.Equal(t, "u1", out.Viewer.ID)
	assert.Equal(t, "Ada", out.Viewer.Name)
}

func TestAuthorizationValue(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"lin_api_abc", "lin_api_abc"},
		{"oauth-token", "Bearer oauth-token"},
		{"Bearer already", "Bearer already"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, authorizationValue(tt.token))
		})
	}
}

func TestExecutor_ApplicationErrors(t *testing.T) {
	const body = `{"data":null,"errors":[{"message":"A"},{"message":"B"}]}`

	tests := []struct {
		name    string
		report  ErrorReport
		wantMsg string
	}{
		{name: "default reports last", report: "", wantMsg: "B"},
		{name: "first", report: ReportFirst, wantMsg: "A"},
		{name: "all", report: ReportAll, wantMsg: "A; B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			exec := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, body)
			}, Options{Logger: zap.New(core), ErrorReport: tt.report})

			var out viewerData
			err := exec.Execute(context.Background(), mustOperation(t, viewerQuery), &out)
			require.Error(t, err)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, KindApplication, reqErr.Kind)
			assert.Equal(t, tt.wantMsg, reqErr.Message)
			assert.Len(t, reqErr.Errors, 2)
			assert.True(t, errors.Is(err, relaierrors.ErrApplication))
			assert.Equal(t, "graphql error: "+tt.wantMsg, err.Error())

			logged := logs.FilterMessage("graphql error").All()
			require.Len(t, logged, 2)
			assert.Equal(t, zapcore.ErrorLevel, logged[0].Level)
			assert.Equal(t, "A", logged[0].ContextMap()["message"])
			assert.Equal(t, "B", logged[1].ContextMap()["message"])
		})
	}
}

func TestExecutor_NoData(t *testing.T) {
	for _, body := range []string{`{}`, `{"data":null}`, `{"errors":[]}`} {
		t.Run(body, func(t *testing.T) {
			exec := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, body)
			}, Options{})

			var out viewerData
			err := exec.Execute(context.Background(), mustOperation(t, viewerQuery), &out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, relaierrors.ErrNoData))
			assert.False(t, errors.Is(err, relaierrors.ErrTransport))
		})
	}
}

func TestExecutor_NoDataKeepsStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantAuth bool
	}{
		{name: "service unavailable", status: http.StatusServiceUnavailable, body: `{}`},
		{name: "bad gateway null data", status: http.StatusBadGateway, body: `{"data":null}`},
		{name: "unauthorized without errors", status: http.StatusUnauthorized, body: `{"message":"invalid key"}`, wantAuth: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}, Options{})

			var out viewerData
			err := exec.Execute(context.Background(), mustOperation(t, viewerQuery), &out)
			require.Error(t, err)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, KindNoData, reqErr.Kind)
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, tt.wantAuth, reqErr.IsAuthError())
			assert.True(t, errors.Is(err, relaierrors.ErrNoData))
			assert.False(t, errors.Is(err, relaierrors.ErrTransport))
		})
	}
}

func TestExecutor_TransportErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantAuth   bool
	}{
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"data": {`)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "html error page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = io.WriteString(w, "<html>bad gateway</html>")
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "unauthorized plain text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, "invalid key")
			},
			wantStatus: http.StatusUnauthorized,
			wantAuth:   true,
		},
		{
			name: "data does not match shape",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"data":{"viewer":"not an object"}}`)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newTestExecutor(t, tt.handler, Options{})

			var out viewerData
			err := exec.Execute(context.Background(), mustOperation(t, viewerQuery), &out)
			require.Error(t, err)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, KindTransport, reqErr.Kind)
			assert.Equal(t, tt.wantStatus, reqErr.StatusCode)
			assert.Equal(t, tt.wantAuth, reqErr.IsAuthError())
			assert.True(t, errors.Is(err, relaierrors.ErrTransport))
		})
	}
}

func TestExecutor_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	exec := New(Options{Endpoint: endpoint})
	var out viewerData
	err := exec.Execute(context.Background(), mustOperation(t, viewerQuery), &out)
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, KindTransport, reqErr.Kind)
	assert.True(t, reqErr.IsNetworkError())
}

func TestExecutor_ContextCanceled(t *testing.T) {
	exec := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"viewer":{"id":"u1"}}}`)
	}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out viewerData
	err := exec.Execute(ctx, mustOperation(t, viewerQuery), &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(err, relaierrors.ErrTransport))
}

func TestExecutor_ResponseSizeLimit(t *testing.T) {
	exec := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"viewer":{"id":"`+strings.Repeat("x", 4096)+`"}}}`)
	}, Options{MaxResponseBytes: 1024})

	var out viewerData
	err := exec.Execute(context.Background(), mustOperation(t, viewerQuery), &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, relaierrors.ErrTransport))
}

func TestExecutor_RateLimitCode(t *testing.T) {
	exec := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest,
			`{"errors":[{"message":"Rate limit exceeded","extensions":{"code":"RATELIMITED"}}]}`)
	}, Options{})

	var out viewerData
	err := exec.Execute(context.Background(), mustOperation(t, viewerQuery), &out)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, KindApplication, reqErr.Kind)
	assert.True(t, reqErr.IsRateLimitError())
	assert.False(t, reqErr.IsAuthError())
}

func TestParseErrorReport(t *testing.T) {
	tests := []struct {
		in      string
		want    ErrorReport
		wantErr bool
	}{
		{"", ReportLast, false},
		{"last", ReportLast, false},
		{"FIRST", ReportFirst, false},
		{" all ", ReportAll, false},
		{"some", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseErrorReport(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
