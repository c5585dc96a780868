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
	"fmt"
	"strings"

	relaierrors "github.com/sirseerhq/sirseer-linear/internal/errors"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindTransport covers connection failures, timeouts and undecodable bodies.
	KindTransport Kind = iota + 1
	// KindApplication covers responses carrying GraphQL errors.
	KindApplication
	// KindNoData covers responses with neither errors nor data.
	KindNoData
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	case KindNoData:
		return "no_data"
	default:
		return "unknown"
	}
}

// Location is a position in the query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// GraphQLError is one entry of the response "errors" list.
type GraphQLError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Locations  []Location             `json:"locations,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Code returns extensions.code, or extensions.type when code is absent.
func (e GraphQLError) Code() string {
	for _, key := range []string{"code", "type"} {
		if v, ok := e.Extensions[key].(string); ok {
			return v
		}
	}
	return ""
}

// RequestError is returned by Executor.Execute for every failed call.
type RequestError struct {
	Kind      Kind
	Operation string
	// Message is the message surfaced to the caller. For application errors
	// it is selected from Errors by the executor's ErrorReport policy.
	Message string
	// Errors holds every GraphQL error of an application failure.
	Errors     []GraphQLError
	StatusCode int
	Err        error
}

// Error implements error.
func (e *RequestError) Error() string {
	switch e.Kind {
	case KindApplication:
		return "graphql error: " + e.Message
	case KindNoData:
		return "no data"
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	}
}

// Unwrap returns the underlying cause, if any.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is matches the taxonomy sentinel for the error's kind.
func (e *RequestError) Is(target error) bool {
	switch e.Kind {
	case KindTransport:
		return target == relaierrors.ErrTransport
	case KindApplication:
		return target == relaierrors.ErrApplication
	case KindNoData:
		return target == relaierrors.ErrNoData
	}
	return false
}

// IsAuthError reports whether the server flagged the request as unauthenticated.
func (e *RequestError) IsAuthError() bool {
	return e.StatusCode == 401 || e.hasCode("AUTHENTICATION_ERROR", "FORBIDDEN")
}

// IsRateLimitError reports whether the server rejected the request for rate limiting.
func (e *RequestError) IsRateLimitError() bool {
	return e.StatusCode == 429 || e.hasCode("RATELIMITED")
}

// IsNetworkError reports whether the request failed below the GraphQL layer.
func (e *RequestError) IsNetworkError() bool {
	return e.Kind == KindTransport && e.StatusCode == 0
}

func (e *RequestError) hasCode(codes ...string) bool {
	for _, gqlErr := range e.Errors {
		code := gqlErr.Code()
		for _, c := range codes {
			if strings.EqualFold(code, c) {
				return true
			}
		}
	}
	return false
}

// ErrorReport selects which GraphQL error message is promoted to the caller
// when a response carries several. All of them are logged regardless.
type ErrorReport string

const (
	// ReportLast surfaces the final error's message.
	ReportLast ErrorReport = "last"
	// ReportFirst surfaces the first error's message.
	ReportFirst ErrorReport = "first"
	// ReportAll joins every message with "; ".
	ReportAll ErrorReport = "all"
)

// ParseErrorReport parses a policy name. An empty string selects ReportLast.
func ParseErrorReport(s string) (ErrorReport, error) {
	switch r := ErrorReport(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return ReportLast, nil
	case ReportLast, ReportFirst, ReportAll:
		return r, nil
	default:
		return "", fmt.Errorf("unknown error report policy %q (want last, first or all)", s)
	}
}

// message picks the surfaced message from a non-empty error list.
func (r ErrorReport) message(errs []GraphQLError) string {
	switch r {
	case ReportFirst:
		return errs[0].Message
	case ReportAll:
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Message)
		}
		return strings.Join(msgs, "; ")
	default:
		return errs[len(errs)-1].Message
	}
}
