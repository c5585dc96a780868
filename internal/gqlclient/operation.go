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
	"encoding/json"
	"fmt"
	"maps"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	relaierrors "github.com/sirseerhq/sirseer-linear/internal/errors"
)

// Operation is a parsed, immutable GraphQL request: a query document and its
// variables. Build a fresh Operation for every round-trip.
type Operation struct {
	query     string
	name      string
	variables map[string]interface{}
}

// NewOperation parses query and pairs it with a copy of variables.
// The document must contain exactly one operation and it must be a query;
// mutations and subscriptions are rejected.
func NewOperation(query string, variables map[string]interface{}) (Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "operation", Input: query})
	if err != nil {
		return Operation{}, fmt.Errorf("invalid query document: %w", err)
	}

	if len(doc.Operations) != 1 {
		return Operation{}, fmt.Errorf("query document must contain exactly one operation, got %d", len(doc.Operations))
	}

	def := doc.Operations[0]
	if def.Operation != ast.Query {
		return Operation{}, fmt.Errorf("%s %q: %w", def.Operation, def.Name, relaierrors.ErrMutationNotAllowed)
	}

	return Operation{
		query:     query,
		name:      def.Name,
		variables: maps.Clone(variables),
	}, nil
}

// Name returns the operation name, empty for anonymous operations.
func (o Operation) Name() string {
	return o.name
}

// Query returns the query document.
func (o Operation) Query() string {
	return o.query
}

// Variables returns a copy of the operation variables.
func (o Operation) Variables() map[string]interface{} {
	return maps.Clone(o.variables)
}

// MarshalJSON encodes the operation as a GraphQL-over-HTTP request body.
func (o Operation) MarshalJSON() ([]byte, error) {
	body := struct {
		Query         string                 `json:"query"`
		Variables     map[string]interface{} `json:"variables,omitempty"`
		OperationName string                 `json:"operationName,omitempty"`
	}{
		Query:         o.query,
		Variables:     o.variables,
		OperationName: o.name,
	}
	return json.Marshal(body)
}
