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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirseerhq/sirseer-linear/internal/linear"
)

func issue(assignee string, st linear.StateType) linear.Issue {
	i := linear.Issue{State: linear.WorkflowState{Type: st}}
	if assignee != "" {
		i.Assignee = &linear.User{DisplayName: assignee}
	}
	return i
}

func TestSpecMatch(t *testing.T) {
	alice := "alice"

	tests := []struct {
		name  string
		spec  Spec
		issue linear.Issue
		want  bool
	}{
		{
			name:  "empty spec matches everything",
			spec:  Spec{},
			issue: issue("", linear.StateCanceled),
			want:  true,
		},
		{
			name:  "assignee exact",
			spec:  Spec{Assignee: &alice},
			issue: issue("alice", linear.StateStarted),
			want:  true,
		},
		{
			name:  "assignee is case sensitive",
			spec:  Spec{Assignee: &alice},
			issue: issue("Alice", linear.StateStarted),
			want:  false,
		},
		{
			name:  "unassigned never matches an assignee",
			spec:  Spec{Assignee: &alice},
			issue: issue("", linear.StateStarted),
			want:  false,
		},
		{
			name:  "state in set",
			spec:  Spec{States: Include(linear.StateStarted)},
			issue: issue("bob", linear.StateStarted),
			want:  true,
		},
		{
			name:  "state outside set",
			spec:  Spec{States: Exclude(linear.StateStarted, linear.StateBacklog)},
			issue: issue("bob", linear.StateBacklog),
			want:  false,
		},
		{
			name:  "both predicates must hold",
			spec:  Spec{Assignee: &alice, States: Include(linear.StateCompleted)},
			issue: issue("alice", linear.StateStarted),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.Match(tt.issue))
		})
	}
}

func TestNew(t *testing.T) {
	spec, err := New("", nil, nil)
	require.NoError(t, err)
	assert.True(t, spec.IsEmpty())
	assert.Nil(t, spec.Predicate())
	assert.Equal(t, "none", spec.String())

	spec, err = New("alice", nil, []string{"completed,canceled"})
	require.NoError(t, err)
	require.NotNil(t, spec.Assignee)
	assert.Equal(t, "alice", *spec.Assignee)
	assert.Equal(t, "assignee=alice states={started,unstarted,backlog}", spec.String())

	pred := spec.Predicate()
	require.NotNil(t, pred)
	assert.True(t, pred(issue("alice", linear.StateBacklog)))
	assert.False(t, pred(issue("alice", linear.StateCompleted)))

	_, err = New("alice", []string{"started"}, []string{"backlog"})
	assert.ErrorIs(t, err, ErrConflictingStates)
}
