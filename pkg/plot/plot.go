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

// Package plot orchestrates the diagnostic figure set for one dataset
// and target column. It cleans the table, infers the task from the
// target's semantic type and dispatches to the regression or
// classification branch. Figures are returned to the caller; rendering
// and file ownership stay outside this package.
//
// Error policy: configuration problems (unknown option, bad value,
// unusable target) fail the whole call; a panel family whose
// prerequisite feature kind is absent is skipped silently; a panel
// that cannot be drawn for data reasons is skipped with a warning.
package plot

import (
	"fmt"
	"io"
	"sort"

	"github.com/glimpse-ml/glimpse/pkg/dataset"
	"github.com/glimpse-ml/glimpse/pkg/figure"
	"github.com/glimpse-ml/glimpse/pkg/log"
	"github.com/glimpse-ml/glimpse/pkg/preprocess"
	"github.com/glimpse-ml/glimpse/pkg/rank"
	"github.com/glimpse-ml/glimpse/pkg/stats"
	"github.com/glimpse-ml/glimpse/pkg/tablewriter"
)

// Task is the supervised problem kind inferred from the target column.
type Task int

const (
	// Regression targets are continuous.
	Regression Task = iota
	// Classification targets are categorical or non-ordinal
	// low-cardinality integers.
	Classification
)

func (t Task) String() string {
	if t == Regression {
		return "regression"
	}
	return "classification"
}

// Plot produces the diagnostic figures for the target column of the
// table. The returned figures are ordered the way the branch emits
// them; an empty slice means every panel family was skipped.
func Plot(t *dataset.Table, target string, opts Options) ([]*figure.Figure, error) {
	cfg, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if !t.Has(target) {
		return nil, fmt.Errorf("plot: no column %q in table", target)
	}

	// A constant or identifier-like target carries no signal; keeping
	// it through Clean surfaces that as an explicit error instead of a
	// silent drop.
	cleaned, types, err := preprocess.Clean(t, nil)
	if err != nil {
		return nil, fmt.Errorf("plot: cleaning table: %v", err)
	}
	if !cleaned.Has(target) {
		return nil, fmt.Errorf("plot: target %q has no usable signal", target)
	}

	// Low-cardinality integers become continuous when they look like an
	// ordered scale, categorical otherwise.
	for _, name := range cleaned.Names() {
		if types[name] != preprocess.LowCardInt {
			continue
		}
		vals, err := cleaned.Floats(name)
		if err != nil {
			return nil, err
		}
		if name != target && preprocess.GuessOrdinal(vals) {
			types[name] = preprocess.Continuous
		} else {
			types[name] = preprocess.Categorical
		}
	}

	var task Task
	switch types[target] {
	case preprocess.Continuous:
		task = Regression
	case preprocess.Categorical:
		task = Classification
	default:
		return nil, fmt.Errorf("plot: target %q has no usable signal", target)
	}
	log.WithFields(log.Fields{
		"target": target,
		"task":   task.String(),
		"rows":   cleaned.NumRows(),
	}).Info("plotting")

	if task == Regression {
		return regressionFigures(cleaned, target, types, cfg)
	}
	return classificationFigures(cleaned, target, types, cfg)
}

// featureNames lists the columns of the given kind, excluding the
// target. The target column is never scored against itself.
func featureNames(t *dataset.Table, types preprocess.Types, kind preprocess.Kind, target string) []string {
	out := []string{}
	for _, name := range types.ColumnsOf(t, kind) {
		if name != target {
			out = append(out, name)
		}
	}
	return out
}

// imputedColumns fetches the named columns with missing values filled
// per the policy. The result is column-major: out[j] is column j.
func imputedColumns(t *dataset.Table, names []string, policy rank.ImputePolicy) ([][]float64, error) {
	out := make([][]float64, len(names))
	for j, name := range names {
		col, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		if policy == rank.ImputeMedian {
			out[j] = stats.ImputeMedian(col)
		} else {
			out[j] = stats.ImputeMean(col)
		}
	}
	return out, nil
}

// rowsFor builds a row-major matrix from the selected columns of a
// column-major one.
func rowsFor(columns [][]float64, selected []int) [][]float64 {
	if len(selected) == 0 || len(columns) == 0 {
		return nil
	}
	n := len(columns[0])
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, len(selected))
		for k, j := range selected {
			rows[i][k] = columns[j][i]
		}
	}
	return rows
}

// prunedCategories fetches a categorical column with high-cardinality
// levels grouped under the "other" bucket.
func prunedCategories(t *dataset.Table, name string, cap int) ([]string, error) {
	vals, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	return preprocess.PruneCategories(vals, cap), nil
}

func sortedLevels(values []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// writeRanking prints a score table for the selected features, best
// first. A nil writer disables the summary.
func writeRanking(w io.Writer, title string, names []string, scores []float64, order []int) {
	if w == nil || len(order) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	tw := tablewriter.NewASCIIWriter(w, 1024)
	tw.SetHeader([]string{"feature", "score"})
	for _, j := range order {
		tw.AppendRow([]string{names[j], fmt.Sprintf("%.4f", scores[j])})
	}
	if err := tw.Flush(); err != nil {
		log.WithFields(log.Fields{"error": err}).Warnf("ranking summary not written")
	}
}

// skipPanel logs a non-fatal panel failure and moves on.
func skipPanel(name string, err error) {
	log.WithFields(log.Fields{"panel": name, "error": err}).Warnf("panel skipped")
}
