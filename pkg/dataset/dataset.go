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

// Package dataset holds the in-memory table of named, typed columns
// that all exploration and explanation operations consume.
package dataset

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is a 2D table of named columns with mixed semantic types.
// Rows are independent observations. A Table is a value; operations
// return new Tables and never mutate the receiver.
type Table struct {
	df dataframe.DataFrame
}

// New wraps a gota DataFrame.
func New(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	return &Table{df: df}, nil
}

// FromCSV reads a table from CSV with a header row.
func FromCSV(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String))
	return New(df)
}

// FromRecords builds a table from string records. The first record is
// the header row. Column types are detected from the cell values.
func FromRecords(records [][]string) (*Table, error) {
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String))
	return New(df)
}

// DataFrame returns the backing gota DataFrame.
func (t *Table) DataFrame() dataframe.DataFrame { return t.df }

// Names returns the column names in original order.
func (t *Table) Names() []string { return t.df.Names() }

// NumRows returns the number of observations.
func (t *Table) NumRows() int { return t.df.Nrow() }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return t.df.Ncol() }

// Has reports whether the table contains the named column.
func (t *Table) Has(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Column returns the named column.
func (t *Table) Column(name string) (series.Series, error) {
	if !t.Has(name) {
		return series.Series{}, fmt.Errorf("no column %q in table", name)
	}
	return t.df.Col(name), nil
}

// Floats returns the named column as float64 values. Non-numeric cells
// become NaN, matching the imputation contract of the feature ranker.
func (t *Table) Floats(name string) ([]float64, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return s.Float(), nil
}

// Strings returns the named column as its string records.
func (t *Table) Strings(name string) ([]string, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return s.Records(), nil
}

// Select returns a new table holding only the named columns, in the
// given order.
func (t *Table) Select(names ...string) (*Table, error) {
	for _, n := range names {
		if !t.Has(n) {
			return nil, fmt.Errorf("no column %q in table", n)
		}
	}
	return New(t.df.Select(names))
}

// Drop returns a new table without the named columns. Column order of
// the remaining columns is preserved.
func (t *Table) Drop(names ...string) (*Table, error) {
	dropped := make(map[string]bool, len(names))
	for _, n := range names {
		dropped[n] = true
	}
	keep := []string{}
	for _, n := range t.df.Names() {
		if !dropped[n] {
			keep = append(keep, n)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("dropping %v leaves no columns", names)
	}
	return New(t.df.Select(keep))
}

// WithColumn returns a new table with the given series added or, when a
// column of the same name exists, replaced.
func (t *Table) WithColumn(s series.Series) (*Table, error) {
	return New(t.df.Mutate(s))
}

// FloatMatrix returns the named columns as a row-major [nRows][len(names)]
// matrix. Non-numeric cells become NaN.
func (t *Table) FloatMatrix(names []string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for i, n := range names {
		f, err := t.Floats(n)
		if err != nil {
			return nil, err
		}
		cols[i] = f
	}
	out := make([][]float64, t.NumRows())
	for r := range out {
		row := make([]float64, len(names))
		for c := range names {
			row[c] = cols[c][r]
		}
		out[r] = row
	}
	return out, nil
}
