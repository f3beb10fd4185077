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

package explain

import (
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/glimpse-ml/glimpse/pkg/figure"
	"github.com/glimpse-ml/glimpse/pkg/model"
	"github.com/glimpse-ml/glimpse/pkg/tablewriter"
)

// writeEvaluation prints the classification report and the confusion
// matrix as console tables.
func writeEvaluation(w io.Writer, yTrue, yPred []string) error {
	fmt.Fprintln(w, "classification report")
	tw := tablewriter.NewASCIIWriter(w, 1024)
	tw.SetHeader([]string{"class", "precision", "recall", "f1", "support"})
	for _, row := range model.ClassificationReport(yTrue, yPred) {
		tw.AppendRow([]string{
			row.Class,
			fmt.Sprintf("%.3f", row.Precision),
			fmt.Sprintf("%.3f", row.Recall),
			fmt.Sprintf("%.3f", row.F1),
			strconv.Itoa(row.Support),
		})
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	m, classes := model.ConfusionMatrix(yTrue, yPred)
	fmt.Fprintln(w, "confusion matrix (rows: true, columns: predicted)")
	tw = tablewriter.NewASCIIWriter(w, 1024)
	tw.SetHeader(append([]string{""}, classes...))
	for i, class := range classes {
		row := []string{class}
		for j := range classes {
			row = append(row, strconv.Itoa(m[i][j]))
		}
		tw.AppendRow(row)
	}
	return tw.Flush()
}

// rocFigure plots ROC curves from the estimator's class probabilities
// on the validation data: a single curve for binary targets, one
// one-vs-rest curve per class otherwise. Estimators without
// probabilities skip the figure with a warning.
func rocFigure(est model.Estimator, X [][]float64, y []string) *figure.Figure {
	prob, ok := est.(probModel)
	if !ok {
		skipPanel("roc", fmt.Errorf("estimator has no class probabilities"))
		return nil
	}
	proba := prob.PredictProba(X)
	if proba == nil {
		skipPanel("roc", fmt.Errorf("estimator has no class probabilities"))
		return nil
	}
	classes := prob.Classes()

	curveFor := func(ci int) (figure.ROC, error) {
		scores := make([]float64, len(y))
		positive := make([]bool, len(y))
		hasPos, hasNeg := false, false
		for i := range y {
			scores[i] = proba[i][ci]
			positive[i] = y[i] == classes[ci]
			if positive[i] {
				hasPos = true
			} else {
				hasNeg = true
			}
		}
		if !hasPos || !hasNeg {
			return figure.ROC{}, fmt.Errorf("class %q is missing positives or negatives", classes[ci])
		}
		stat.SortWeightedLabeled(scores, positive, nil)
		tpr, fpr, _ := stat.ROC(nil, scores, positive, nil)
		return figure.ROC{
			Label: classes[ci],
			FPR:   fpr,
			TPR:   tpr,
			AUC:   integrate.Trapezoidal(fpr, tpr),
		}, nil
	}

	curves := []figure.ROC{}
	if len(classes) == 2 {
		// one curve suffices: the second class curve is its mirror
		c, err := curveFor(1)
		if err != nil {
			skipPanel("roc", err)
			return nil
		}
		curves = append(curves, c)
	} else {
		for ci := range classes {
			c, err := curveFor(ci)
			if err != nil {
				skipPanel("roc "+classes[ci], err)
				continue
			}
			curves = append(curves, c)
		}
	}
	if len(curves) == 0 {
		return nil
	}
	p, err := figure.ROCCurve("roc curves", curves)
	if err != nil {
		skipPanel("roc", err)
		return nil
	}
	fig := figure.New("roc curves")
	fig.Add(p)
	return fig
}
