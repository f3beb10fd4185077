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

package model

import (
	"sort"
)

// sortedClasses returns the union of labels in yTrue and yPred, sorted.
func sortedClasses(yTrue, yPred []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, y := range [][]string{yTrue, yPred} {
		for _, label := range y {
			if !seen[label] {
				seen[label] = true
				out = append(out, label)
			}
		}
	}
	sort.Strings(out)
	return out
}

// RecallMacro returns the unweighted mean of per-class recall. Classes
// absent from yTrue are skipped.
func RecallMacro(yTrue, yPred []string) float64 {
	hit := map[string]float64{}
	support := map[string]float64{}
	for i, label := range yTrue {
		support[label]++
		if yPred[i] == label {
			hit[label]++
		}
	}
	if len(support) == 0 {
		return 0
	}
	var sum float64
	for label, n := range support {
		sum += hit[label] / n
	}
	return sum / float64(len(support))
}

// ConfusionMatrix returns counts[i][j] = samples of true class i
// predicted as class j, with classes sorted.
func ConfusionMatrix(yTrue, yPred []string) ([][]int, []string) {
	classes := sortedClasses(yTrue, yPred)
	pos := make(map[string]int, len(classes))
	for i, c := range classes {
		pos[c] = i
	}
	m := make([][]int, len(classes))
	for i := range m {
		m[i] = make([]int, len(classes))
	}
	for i := range yTrue {
		m[pos[yTrue[i]]][pos[yPred[i]]]++
	}
	return m, classes
}

// ReportRow is one class line of a classification report.
type ReportRow struct {
	Class     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassificationReport returns per-class precision, recall, F1 and
// support, one row per class in sorted order.
func ClassificationReport(yTrue, yPred []string) []ReportRow {
	m, classes := ConfusionMatrix(yTrue, yPred)
	rows := make([]ReportRow, len(classes))
	for i, c := range classes {
		var tp, fn, fp int
		tp = m[i][i]
		for j := range classes {
			if j != i {
				fn += m[i][j]
				fp += m[j][i]
			}
		}
		var precision, recall, f1 float64
		if tp+fp > 0 {
			precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			recall = float64(tp) / float64(tp+fn)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		rows[i] = ReportRow{Class: c, Precision: precision, Recall: recall, F1: f1, Support: tp + fn}
	}
	return rows
}
