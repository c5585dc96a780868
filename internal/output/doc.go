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

// Package output renders Linear records for the terminal and for scripts.
//
// Three formats are supported:
//   - table: aligned columns via text/tabwriter, for people
//   - json: a single pretty-printed document
//   - ndjson: one compact JSON record per line, for streaming into other tools
//
// The NDJSON Writer never buffers records. NewFilePrinter sends any format to
// a file instead of stdout.
//
// Example usage:
//
//	p := output.NewPrinter(os.Stdout, output.FormatTable, output.TableOptions{})
//	if err := p.Issues(issues); err != nil {
//	    return err
//	}
package output
