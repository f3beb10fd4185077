// Copyright 2026 The Glimpse Authors. All rights reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tablewriter renders console summary tables, e.g. feature
// rankings, classification reports and confusion matrices.
//
// Example:
//
//	table := tablewriter.NewASCIIWriter(os.Stdout, 1024)
//	table.SetHeader([]string{"feature", "score"})
//	table.AppendRow([]string{"x1", "12.31"})
//	if e := table.Flush(); e != nil {
//		log.Fatal(e)
//	}
package tablewriter

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// ASCIIWriter writes rows as an ASCII-art table, flushing every
// bufSize rows so unbounded result sets do not accumulate in memory.
type ASCIIWriter struct {
	table   *tablewriter.Table
	bufSize int
	w       io.Writer
}

// NewASCIIWriter returns an ASCIIWriter writing to w.
func NewASCIIWriter(w io.Writer, bufSize int) *ASCIIWriter {
	return &ASCIIWriter{
		table:   tablewriter.NewWriter(w),
		bufSize: bufSize,
		w:       w,
	}
}

// SetHeader sets the table header.
func (t *ASCIIWriter) SetHeader(cols []string) {
	t.table.SetHeader(cols)
}

// AppendRow appends one row of cells, rendering when the buffer is full.
func (t *ASCIIWriter) AppendRow(row []string) {
	t.table.Append(row)
	if t.table.NumLines() >= t.bufSize {
		t.table.Render()
		t.table.ClearRows()
	}
}

// AppendFloats appends one row of float cells formatted with prec digits.
func (t *ASCIIWriter) AppendFloats(label string, vals []float64, prec int) {
	row := []string{label}
	for _, v := range vals {
		row = append(row, fmt.Sprintf("%.*f", prec, v))
	}
	t.table.Append(row)
	if t.table.NumLines() >= t.bufSize {
		t.table.Render()
		t.table.ClearRows()
	}
}

// Flush renders any buffered rows.
func (t *ASCIIWriter) Flush() error {
	if t.table.NumLines() > 0 {
		t.table.Render()
		t.table.ClearRows()
	}
	return nil
}
