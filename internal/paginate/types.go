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

package paginate

import (
	"encoding/json"
	"fmt"
)

// Cursor is an opaque, server-issued position in a result stream. It is only
// ever decoded from a response and sent back unchanged.
type Cursor struct {
	token string
}

// Equal reports whether c and other identify the same position.
func (c Cursor) Equal(other Cursor) bool {
	return c.token == other.token
}

// String returns the raw token for logging.
func (c Cursor) String() string {
	return c.token
}

// MarshalJSON encodes the cursor as the JSON string the server issued.
func (c Cursor) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.token)
}

// UnmarshalJSON decodes a cursor from a JSON string.
func (c *Cursor) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("cursor must be a string: %w", err)
	}
	c.token = token
	return nil
}

// PageInfo is the continuation metadata of a connection. EndCursor is only
// meaningful while HasNextPage is true.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *Cursor `json:"endCursor"`
}

// Page is one decoded batch of items.
type Page[T any] struct {
	Items    []T
	PageInfo PageInfo
}

// Limit is an optional upper bound on the number of items a caller wants.
type Limit struct {
	n   int
	set bool
}

// NoLimit fetches every available page.
var NoLimit = Limit{}

// LimitTo requests at least n items when that many exist. Negative values are
// treated as zero.
func LimitTo(n int) Limit {
	if n < 0 {
		n = 0
	}
	return Limit{n: n, set: true}
}

// Value returns the bound and whether one is set.
func (l Limit) Value() (int, bool) {
	return l.n, l.set
}

// String implements fmt.Stringer.
func (l Limit) String() string {
	if !l.set {
		return "none"
	}
	return fmt.Sprintf("%d", l.n)
}
