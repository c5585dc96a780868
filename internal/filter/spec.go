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

package filter

import (
	"strings"

	"github.com/sirseerhq/sirseer-linear/internal/linear"
)

// Spec is a conjunction of optional issue predicates. A nil Assignee and an
// unrestricted States both match everything.
type Spec struct {
	// Assignee matches the assignee's display name exactly, including case.
	// Unassigned issues never match a non-nil Assignee.
	Assignee *string

	// States holds the allowed state types.
	States StateSet
}

// New builds a Spec from CLI style arguments. An empty assignee is treated as
// unset.
func New(assignee string, include, exclude []string) (Spec, error) {
	states, err := StatesFrom(include, exclude)
	if err != nil {
		return Spec{}, err
	}

	spec := Spec{States: states}
	if assignee != "" {
		spec.Assignee = &assignee
	}
	return spec, nil
}

// Match reports whether issue satisfies every predicate.
func (s Spec) Match(issue linear.Issue) bool {
	if s.Assignee != nil {
		if issue.Assignee == nil || issue.Assignee.DisplayName != *s.Assignee {
			return false
		}
	}
	return s.States.Contains(issue.State.Type)
}

// IsEmpty reports whether s matches every issue.
func (s Spec) IsEmpty() bool {
	return s.Assignee == nil && s.States.IsAny()
}

// Predicate returns Match, or nil when s is empty so callers can skip
// filtering entirely.
func (s Spec) Predicate() func(linear.Issue) bool {
	if s.IsEmpty() {
		return nil
	}
	return s.Match
}

func (s Spec) String() string {
	var parts []string
	if s.Assignee != nil {
		parts = append(parts, "assignee="+*s.Assignee)
	}
	if !s.States.IsAny() {
		parts = append(parts, "states="+s.States.String())
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
