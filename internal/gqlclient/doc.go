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

// Package gqlclient executes GraphQL operations against a single HTTPS endpoint.
//
// An Executor sends one operation per call, attaches the API credential,
// decodes the {data, errors} response envelope and classifies failures into
// three kinds:
//   - KindTransport: the request never produced a decodable envelope
//   - KindApplication: the server answered with GraphQL errors
//   - KindNoData: the envelope had neither errors nor data
//
// Executors hold no per-call state and never retry. Every call is logged
// through the injected zap logger and traced through the injected
// OpenTelemetry tracer; neither influences control flow.
//
// Basic usage:
//
//	exec := gqlclient.New(gqlclient.Options{
//	    Endpoint: "https://api.linear.app/graphql",
//	    Token:    os.Getenv("LINEAR_API_KEY"),
//	})
//	op, err := gqlclient.NewOperation(`query Me { viewer { id name } }`, nil)
//	if err != nil {
//	    // Handle error
//	}
//	var data struct{ Viewer struct{ ID, Name string } }
//	if err := exec.Execute(ctx, op, &data); err != nil {
//	    // Handle error
//	}
package gqlclient
