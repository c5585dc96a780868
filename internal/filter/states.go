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
	"errors"
	"fmt"
	"strings"

	"github.com/sirseerhq/sirseer-linear/internal/linear"
)

// ErrConflictingStates is returned when both an include and an exclude state
// list are supplied.
var ErrConflictingStates = errors.New("--state and --exclude-state cannot be used together")

// StateSet is the set of state types an issue may be in. The zero value is
// unrestricted and contains every state type.
type StateSet struct {
	members    map[linear.StateType]struct{}
	restricted bool
}

// AnyState returns the unrestricted set.
func AnyState() StateSet {
	return StateSet{}
}

// Include returns a set holding exactly states. With no states it is
// unrestricted.
func Include(states ...linear.StateType) StateSet {
	if len(states) == 0 {
		return AnyState()
	}
	set := StateSet{members: make(map[linear.StateType]struct{}, len(states)), restricted: true}
	for _, st := range states {
		set.members[st] = struct{}{}
	}
	return set
}

// Exclude returns the complement of states against every known state type.
// Excluding every state type yields a set that matches nothing.
func Exclude(states ...linear.StateType) StateSet {
	skip := make(map[linear.StateType]struct{}, len(states))
	for _, st := range states {
		skip[st] = struct{}{}
	}

	set := StateSet{members: make(map[linear.StateType]struct{}), restricted: true}
	for _, st := range linear.AllStateTypes() {
		if _, ok := skip[st]; !ok {
			set.members[st] = struct{}{}
		}
	}
	return set
}

// Contains reports whether st is in the set.
func (s StateSet) Contains(st linear.StateType) bool {
	if !s.restricted {
		return true
	}
	_, ok := s.members[st]
	return ok
}

// IsAny reports whether the set is unrestricted.
func (s StateSet) IsAny() bool {
	return !s.restricted
}

// Sorted returns the members in canonical order. An unrestricted set returns
// every state type.
func (s StateSet) Sorted() []linear.StateType {
	out := make([]linear.StateType, 0, len(linear.AllStateTypes()))
	for _, st := range linear.AllStateTypes() {
		if s.Contains(st) {
			out = append(out, st)
		}
	}
	return out
}

func (s StateSet) String() string {
	if s.IsAny() {
		return "any"
	}
	names := make([]string, 0, len(s.members))
	for _, st := range s.Sorted() {
		names = append(names, string(st))
	}
	return "{" + strings.Join(names, ",") + "}"
}

// ParseStates parses state names. Each value may itself be a comma separated
// list, so both repeated flags and "a,b" work. Blank entries are ignored.
func ParseStates(values []string) ([]linear.StateType, error) {
	var states []linear.StateType
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			st, err := linear.ParseStateType(part)
			if err != nil {
				return nil, err
			}
			states = append(states, st)
		}
	}
	return states, nil
}

// StatesFrom builds a StateSet from an include list or an exclude list.
// Supplying both is an error.
func StatesFrom(include, exclude []string) (StateSet, error) {
	in, err := ParseStates(include)
	if err != nil {
		return StateSet{}, fmt.Errorf("invalid --state: %w", err)
	}
	out, err := ParseStates(exclude)
	if err != nil {
		return StateSet{}, fmt.Errorf("invalid --exclude-state: %w", err)
	}

	switch {
	case len(in) > 0 && len(out) > 0:
		return StateSet{}, ErrConflictingStates
	case len(out) > 0:
		return Exclude(out...), nil
	default:
		return Include(in...), nil
	}
}
