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

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/glimpse-ml/glimpse/pkg/model"
)

// diagramNode is one rendered tree node with its layout position.
type diagramNode struct {
	x, y  float64
	label string
}

// diagramLayout walks the tree down to maxDepth, assigning leaves
// consecutive x slots and centering parents over their children.
type diagramLayout struct {
	nodes    []diagramNode
	edges    []plotter.XYs
	nextSlot float64
	names    []string
	classes  []string
}

func (l *diagramLayout) place(n *model.TreeNode, depth, maxDepth int) (x float64) {
	y := -float64(depth)
	if n.IsLeaf() || depth == maxDepth {
		x = l.nextSlot
		l.nextSlot++
		l.nodes = append(l.nodes, diagramNode{x: x, y: y, label: l.leafLabel(n, depth == maxDepth)})
		return x
	}
	lx := l.place(n.Left, depth+1, maxDepth)
	rx := l.place(n.Right, depth+1, maxDepth)
	x = (lx + rx) / 2
	l.nodes = append(l.nodes, diagramNode{x: x, y: y, label: l.splitLabel(n)})
	l.edges = append(l.edges,
		plotter.XYs{{X: x, Y: y}, {X: lx, Y: y - 1}},
		plotter.XYs{{X: x, Y: y}, {X: rx, Y: y - 1}})
	return x
}

func (l *diagramLayout) splitLabel(n *model.TreeNode) string {
	name := fmt.Sprintf("f%d", n.Feature)
	if n.Feature >= 0 && n.Feature < len(l.names) {
		name = l.names[n.Feature]
	}
	return fmt.Sprintf("%s <= %.3g", name, n.Threshold)
}

func (l *diagramLayout) leafLabel(n *model.TreeNode, truncated bool) string {
	best, bestCount := "", -1.0
	for ci, c := range n.Counts {
		if c > bestCount && ci < len(l.classes) {
			best, bestCount = l.classes[ci], c
		}
	}
	if truncated && !n.IsLeaf() {
		return fmt.Sprintf("... (%d)", n.Samples)
	}
	return fmt.Sprintf("%s (%d)", best, n.Samples)
}

// treeDiagram draws the tree structure down to maxDepth: edges as
// lines, nodes as split or leaf labels.
func treeDiagram(title string, root *model.TreeNode, names, classes []string, maxDepth int) (*gplot.Plot, error) {
	if root == nil {
		return nil, fmt.Errorf("tree diagram: empty tree")
	}
	layout := &diagramLayout{names: names, classes: classes}
	layout.place(root, 0, maxDepth)

	p := gplot.New()
	p.Title.Text = title
	for _, edge := range layout.edges {
		line, err := plotter.NewLine(edge)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(0)
		p.Add(line)
	}

	labels := plotter.XYLabels{}
	for _, n := range layout.nodes {
		labels.XYs = append(labels.XYs, plotter.XY{X: n.x, Y: n.y})
		labels.Labels = append(labels.Labels, n.label)
	}
	lbl, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].Font.Size = vg.Points(8)
	}
	p.Add(lbl)
	p.HideAxes()
	// keep labels near the borders readable
	p.X.Min, p.X.Max = -0.5, layout.nextSlot
	p.Y.Min, p.Y.Max = -float64(maxDepth)-0.5, 0.5
	return p, nil
}
