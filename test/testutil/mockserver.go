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

// Package testutil provides common test helpers for sirseer-linear
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// GraphQLRequest represents a parsed GraphQL request
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
	Header        http.Header            `json:"-"`
}

// Responder answers one GraphQL request with a status code and a JSON body.
type Responder func(req GraphQLRequest, n int) (status int, body interface{})

// MockServer is an httptest server speaking GraphQL over HTTP. It records
// every request it receives.
type MockServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []GraphQLRequest
}

// NewMockServer creates a server answering POST /graphql through respond.
// n is the zero-based index of the request.
func NewMockServer(t *testing.T, respond Responder) *MockServer {
	t.Helper()
	m := &MockServer{}

	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/graphql" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		var req GraphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		req.Header = r.Header.Clone()

		m.mu.Lock()
		n := len(m.requests)
		m.requests = append(m.requests, req)
		m.mu.Unlock()

		status, body := respond(req, n)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(m.Server.Close)

	return m
}

// NewPagedServer creates a server answering the n-th request with pages[n].
// Requests beyond the script fail the test.
func NewPagedServer(t *testing.T, pages ...interface{}) *MockServer {
	t.Helper()
	return NewMockServer(t, func(req GraphQLRequest, n int) (int, interface{}) {
		if n >= len(pages) {
			t.Errorf("unexpected request %d (%s)", n, req.OperationName)
			return http.StatusInternalServerError, map[string]interface{}{}
		}
		return http.StatusOK, pages[n]
	})
}

// NewErrorServer creates a mock server that always returns the specified status
// with a plain text body.
func NewErrorServer(t *testing.T, statusCode int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	}))
	t.Cleanup(server.Close)
	return server
}

// Endpoint returns the GraphQL URL of the server.
func (m *MockServer) Endpoint() string {
	return m.URL + "/graphql"
}

// Requests returns a copy of the recorded requests.
func (m *MockServer) Requests() []GraphQLRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GraphQLRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestCount returns the number of requests received.
func (m *MockServer) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
