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

// Package preprocess derives per-column semantic types and cleans the
// table before plotting. A type annotation must be used with the table
// it was computed from; annotations against mutated tables are a
// caller error.
package preprocess

import (
	"math"
	"sort"

	"github.com/go-gota/gota/series"

	"github.com/glimpse-ml/glimpse/pkg/dataset"
)

// Kind is the semantic type of one column.
type Kind int

const (
	// Continuous columns are numeric with enough distinct values to
	// treat as a real-valued axis.
	Continuous Kind = iota
	// Categorical columns hold a modest number of discrete levels.
	Categorical
	// LowCardInt columns are integer-valued with very few distinct
	// values; the orchestrator reassigns them to Continuous or
	// Categorical depending on GuessOrdinal.
	LowCardInt
	// Useless columns carry no plottable signal (constant, or
	// free-text/identifier-like) and are dropped by Clean.
	Useless
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Categorical:
		return "categorical"
	case LowCardInt:
		return "low_card_int"
	default:
		return "useless"
	}
}

// Types annotates column names with their detected Kind.
type Types map[string]Kind

// ColumnsOf returns the table's columns of the given kind, preserving
// the table's column order.
func (ts Types) ColumnsOf(t *dataset.Table, kind Kind) []string {
	out := []string{}
	for _, name := range t.Names() {
		if ts[name] == kind {
			out = append(out, name)
		}
	}
	return out
}

// maxCategoricalLevels is the absolute distinct-level cap past which a
// string column is treated as free text or identifiers.
const maxCategoricalLevels = 30

// lowCardIntLevels is the distinct-value cap below which an
// integer-valued column is flagged LowCardInt.
const lowCardIntLevels = 5

// DetectTypes classifies every column of the table.
// The rules, in order:
//   - one distinct value: Useless.
//   - numeric, integer-valued, at most lowCardIntLevels distinct
//     values: LowCardInt.
//   - numeric otherwise: Continuous.
//   - string or bool with at most maxCategoricalLevels distinct values
//     (or at most one level per 5 rows): Categorical.
//   - remaining string columns: Useless.
func DetectTypes(t *dataset.Table) Types {
	out := Types{}
	for _, name := range t.Names() {
		s, err := t.Column(name)
		if err != nil {
			continue
		}
		out[name] = detectColumn(s)
	}
	return out
}

func detectColumn(s series.Series) Kind {
	records := s.Records()
	n := len(records)
	distinct := map[string]bool{}
	for _, r := range records {
		distinct[r] = true
	}
	if len(distinct) <= 1 {
		return Useless
	}

	switch s.Type() {
	case series.Float, series.Int:
		vals := s.Float()
		if isIntegerValued(vals) && distinctFloats(vals) <= lowCardIntLevels {
			return LowCardInt
		}
		return Continuous
	case series.Bool:
		return Categorical
	default:
		if len(distinct) <= maxCategoricalLevels || len(distinct)*5 <= n {
			return Categorical
		}
		return Useless
	}
}

func isIntegerValued(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}

func distinctFloats(vals []float64) int {
	seen := map[float64]bool{}
	for _, v := range vals {
		if !math.IsNaN(v) {
			seen[v] = true
		}
	}
	return len(seen)
}

// GuessOrdinal reports whether a low-cardinality integer column looks
// like an ordered scale rather than unordered category codes: integer
// valued, at least 3 distinct values, and the distinct values form a
// contiguous range.
func GuessOrdinal(vals []float64) bool {
	if !isIntegerValued(vals) {
		return false
	}
	seen := map[int]bool{}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		seen[int(v)] = true
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(seen) < 3 {
		return false
	}
	return int(hi-lo)+1 == len(seen)
}

// missingLevel is the replacement level for empty categorical cells.
const missingLevel = "missing"

// Clean drops Useless columns, normalizes missing categorical cells to
// a "missing" level and returns the cleaned table with a fresh type
// annotation. Type hints override detection for the named columns.
func Clean(t *dataset.Table, hints Types) (*dataset.Table, Types, error) {
	types := DetectTypes(t)
	for name, kind := range hints {
		if t.Has(name) {
			types[name] = kind
		}
	}

	useless := []string{}
	for _, name := range t.Names() {
		if types[name] == Useless {
			useless = append(useless, name)
		}
	}
	if len(useless) > 0 {
		cleaned, err := t.Drop(useless...)
		if err != nil {
			return nil, nil, err
		}
		t = cleaned
	}

	for _, name := range t.Names() {
		if types[name] != Categorical {
			continue
		}
		records, err := t.Strings(name)
		if err != nil {
			return nil, nil, err
		}
		changed := false
		for i, r := range records {
			if r == "" || r == "NaN" || r == "NA" {
				records[i] = missingLevel
				changed = true
			}
		}
		if changed {
			t, err = t.WithColumn(series.New(records, series.String, name))
			if err != nil {
				return nil, nil, err
			}
		}
	}

	outTypes := Types{}
	for _, name := range t.Names() {
		outTypes[name] = types[name]
	}
	return t, outTypes, nil
}

// OtherLevel is the bucket label PruneCategories groups infrequent
// levels under.
const OtherLevel = "other"

// DefaultCategoryCap bounds the distinct levels a categorical panel
// shows.
const DefaultCategoryCap = 10

// PruneCategories maps values of a high-cardinality categorical column
// onto its `cap` most frequent levels, grouping the remainder as
// OtherLevel. The result never has more than cap+1 distinct levels.
// Frequency ties keep first-appearance order.
func PruneCategories(values []string, cap int) []string {
	if cap <= 0 {
		cap = DefaultCategoryCap
	}
	counts := map[string]int{}
	order := []string{}
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) <= cap {
		return append([]string(nil), values...)
	}

	firstSeen := map[string]int{}
	for i, v := range order {
		firstSeen[v] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if counts[order[a]] != counts[order[b]] {
			return counts[order[a]] > counts[order[b]]
		}
		return firstSeen[order[a]] < firstSeen[order[b]]
	})
	keep := map[string]bool{}
	for _, v := range order[:cap] {
		keep[v] = true
	}

	out := make([]string, len(values))
	for i, v := range values {
		if keep[v] {
			out[i] = v
		} else {
			out[i] = OtherLevel
		}
	}
	return out
}
