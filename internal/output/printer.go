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

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirseerhq/sirseer-linear/internal/linear"
)

// Format selects how records are rendered.
type Format string

const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
)

// ParseFormat parses a format name. An empty string selects FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or ndjson)", s)
	}
}

// Printer renders command results in one format.
type Printer struct {
	out    *Writer
	open   func() (*Writer, error)
	format Format
	table  TableOptions
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, format Format, table TableOptions) *Printer {
	if format == "" {
		format = FormatTable
	}
	return &Printer{out: NewWriter(w), format: format, table: table}
}

// NewFilePrinter creates a Printer writing to the file at path. The file is
// created on the first write, so a command that fails before printing leaves
// no file behind. Close must be called once printing is done.
func NewFilePrinter(path string, format Format, table TableOptions) *Printer {
	p := NewPrinter(nil, format, table)
	p.out = nil
	p.open = func() (*Writer, error) { return NewFileWriter(path) }
	return p
}

// Format returns the printer's format.
func (p *Printer) Format() Format {
	return p.format
}

// Close closes the output file of a file printer.
func (p *Printer) Close() error {
	if p.out == nil {
		return nil
	}
	return p.out.Close()
}

func (p *Printer) writer() (*Writer, error) {
	if p.out == nil {
		out, err := p.open()
		if err != nil {
			return nil, err
		}
		p.out = out
	}
	return p.out, nil
}

// Issues prints an issue list.
func (p *Printer) Issues(issues []linear.Issue) error {
	return printList(p, issues, func(w io.Writer) error { return IssueTable(w, issues, p.table) })
}

// Issue prints a single issue in detail.
func (p *Printer) Issue(issue linear.Issue) error {
	return printOne(p, issue, func(w io.Writer) error { return IssueDetail(w, issue, p.table) })
}

// Teams prints a team list.
func (p *Printer) Teams(teams []linear.Team) error {
	return printList(p, teams, func(w io.Writer) error { return TeamTable(w, teams) })
}

// States prints a workflow state list.
func (p *Printer) States(states []linear.WorkflowState) error {
	return printList(p, states, func(w io.Writer) error { return StateTable(w, states) })
}

// User prints a single user.
func (p *Printer) User(user linear.User) error {
	return printOne(p, user, func(w io.Writer) error { return UserDetail(w, user) })
}

func printList[T any](p *Printer, records []T, table func(io.Writer) error) error {
	out, err := p.writer()
	if err != nil {
		return err
	}
	switch p.format {
	case FormatJSON:
		if records == nil {
			records = []T{}
		}
		return WriteJSON(out.output, records)
	case FormatNDJSON:
		return WriteAll(out, records)
	default:
		return table(out.output)
	}
}

func printOne(p *Printer, record interface{}, table func(io.Writer) error) error {
	out, err := p.writer()
	if err != nil {
		return err
	}
	switch p.format {
	case FormatJSON:
		return WriteJSON(out.output, record)
	case FormatNDJSON:
		return out.Write(record)
	default:
		return table(out.output)
	}
}
