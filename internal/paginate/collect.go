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
	"context"
	"fmt"

	relaierrors "github.com/sirseerhq/sirseer-linear/internal/errors"
)

// DefaultPageSize is used when Options.PageSize is not positive.
const DefaultPageSize = 50

// Request describes the next page to fetch.
type Request struct {
	// First is the number of items to request.
	First int
	// After is the cursor of the previous page, nil for the first page.
	After *Cursor
	// Index is the zero-based page number.
	Index int
}

// FetchFunc executes one page request.
type FetchFunc[T any] func(ctx context.Context, req Request) (*Page[T], error)

// PageStats describes one fetched page. It is passed to Options.OnPage.
type PageStats struct {
	Index     int `json:"index"`
	Requested int `json:"requested"`
	Received  int `json:"received"`
	Kept      int `json:"kept"`
	// Total is the accumulated item count after this page.
	Total int `json:"total"`
}

// Options configures Collect.
type Options[T any] struct {
	// PageSize is the preferred number of items per request. Defaults to DefaultPageSize.
	PageSize int

	// Limit bounds the number of filtered items wanted. Defaults to NoLimit.
	Limit Limit

	// Filter keeps an item when it returns true. Nil keeps everything.
	Filter func(T) bool

	// MaxPages stops with ErrPageLimit once this many pages have been fetched
	// and the server still reports more. Zero disables the ceiling.
	MaxPages int

	// OnPage is called after each page has been filtered.
	OnPage func(PageStats)
}

// Collect fetches pages until the server reports the end of the result set or
// until Limit is reached, and returns the filtered items in server order.
//
// Any fetch error, context cancellation or ceiling violation returns a nil
// slice with the error.
func Collect[T any](ctx context.Context, fetch FetchFunc[T], opts Options[T]) ([]T, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	limit, limited := opts.Limit.Value()

	result := make([]T, 0)
	if limited && limit == 0 {
		return result, nil
	}

	var after *Cursor
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.MaxPages > 0 && index >= opts.MaxPages {
			return nil, fmt.Errorf("stopped after %d pages: %w", index, relaierrors.ErrPageLimit)
		}

		first := pageSize
		if limited {
			if remaining := limit - len(result); remaining < first {
				first = remaining
			}
		}

		page, err := fetch(ctx, Request{First: first, After: after, Index: index})
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, fmt.Errorf("page %d: empty response: %w", index, relaierrors.ErrNoData)
		}

		kept := 0
		for _, item := range page.Items {
			if opts.Filter == nil || opts.Filter(item) {
				result = append(result, item)
				kept++
			}
		}

		if opts.OnPage != nil {
			opts.OnPage(PageStats{
				Index:     index,
				Requested: first,
				Received:  len(page.Items),
				Kept:      kept,
				Total:     len(result),
			})
		}

		if !page.PageInfo.HasNextPage {
			return result, nil
		}
		if limited && len(result) >= limit {
			return result, nil
		}
		if page.PageInfo.EndCursor == nil {
			return nil, fmt.Errorf("page %d reports more pages without an end cursor: %w", index, relaierrors.ErrNoData)
		}
		after = page.PageInfo.EndCursor
	}
}
