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

// Package metadata tracks pagination statistics for list operations. A
// Tracker observes every page through paginate's OnPage hook and produces a
// ListMetadata record that the CLI prints with --stats or saves to a file.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sirseerhq/sirseer-linear/internal/paginate"
)

// Tracker collects statistics during one list operation. It is not safe for
// concurrent use; pagination is sequential.
type Tracker struct {
	startTime time.Time
	now       func() time.Time
	pages     []paginate.PageStats
	received  int
	kept      int
	oldest    time.Time
	newest    time.Time
}

// New creates a tracker whose clock starts now.
func New() *Tracker {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Tracker {
	return &Tracker{
		startTime: now(),
		now:       now,
	}
}

// ObservePage records one fetched page. Pass it as the OnPage hook.
func (t *Tracker) ObservePage(stats paginate.PageStats) {
	t.pages = append(t.pages, stats)
	t.received += stats.Received
	t.kept += stats.Kept
}

// UpdateItemStats widens the creation/update window with one returned item.
func (t *Tracker) UpdateItemStats(createdAt, updatedAt time.Time) {
	if !createdAt.IsZero() && (t.oldest.IsZero() || createdAt.Before(t.oldest)) {
		t.oldest = createdAt
	}
	if updatedAt.After(t.newest) {
		t.newest = updatedAt
	}
}

// APICallCount returns the number of pages fetched so far.
func (t *Tracker) APICallCount() int {
	return len(t.pages)
}

// GenerateMetadata creates the record for the operation so far.
func (t *Tracker) GenerateMetadata(version string, params ListParams) *ListMetadata {
	completedAt := t.now()

	results := ListResults{
		PageCount:     len(t.pages),
		APICallCount:  t.APICallCount(),
		ItemsReceived: t.received,
		ItemsKept:     t.kept,
		Duration:      completedAt.Sub(t.startTime).String(),
		StartedAt:     t.startTime,
		CompletedAt:   completedAt,
	}
	if !t.oldest.IsZero() {
		oldest := t.oldest
		results.OldestCreated = &oldest
	}
	if !t.newest.IsZero() {
		newest := t.newest
		results.NewestUpdated = &newest
	}

	pages := make([]paginate.PageStats, len(t.pages))
	copy(pages, t.pages)

	return &ListMetadata{
		Version:    version,
		QueryID:    uuid.NewString(),
		Parameters: params,
		Results:    results,
		Pages:      pages,
	}
}

// SaveMetadata writes metadata as indented JSON to path. The file is written
// to a temporary sibling first and renamed into place.
func SaveMetadata(metadata *ListMetadata, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metadata directory: %w", err)
		}
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile) // #nosec G304 - path is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	if err := WriteMetadataToWriter(metadata, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}

// WriteMetadataToWriter serializes metadata as indented JSON.
func WriteMetadataToWriter(metadata *ListMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}
