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

package preprocess

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glimpse-ml/glimpse/pkg/dataset"
)

func sampleTable(t *testing.T) *dataset.Table {
	records := [][]string{
		{"id", "height", "rating", "city", "constant"},
	}
	cities := []string{"berlin", "paris", "tokyo"}
	for i := 0; i < 60; i++ {
		records = append(records, []string{
			fmt.Sprintf("user-%d", i),
			fmt.Sprintf("%.2f", 150.0+float64(i)*0.7),
			fmt.Sprintf("%d", i%4+1),
			cities[i%3],
			"same",
		})
	}
	tbl, err := dataset.FromRecords(records)
	assert.NoError(t, err)
	return tbl
}

func TestDetectTypes(t *testing.T) {
	a := assert.New(t)
	types := DetectTypes(sampleTable(t))

	a.Equal(Useless, types["id"])       // 60 distinct strings in 60 rows
	a.Equal(Continuous, types["height"])
	a.Equal(LowCardInt, types["rating"]) // integers 1..4
	a.Equal(Categorical, types["city"])
	a.Equal(Useless, types["constant"])
}

func TestClean(t *testing.T) {
	a := assert.New(t)
	tbl, types, err := Clean(sampleTable(t), nil)
	a.NoError(err)

	a.False(tbl.Has("id"))
	a.False(tbl.Has("constant"))
	a.True(tbl.Has("height"))
	a.Equal(Categorical, types["city"])
	a.NotContains(types, "id")
}

func TestCleanHintsOverrideDetection(t *testing.T) {
	a := assert.New(t)
	tbl, types, err := Clean(sampleTable(t), Types{"rating": Categorical, "id": Categorical})
	a.NoError(err)

	a.Equal(Categorical, types["rating"])
	// The hint rescues the identifier column from being dropped.
	a.True(tbl.Has("id"))
}

func TestCleanFillsMissingCategories(t *testing.T) {
	a := assert.New(t)
	tbl, err := dataset.FromRecords([][]string{
		{"color", "x"},
		{"red", "1.5"},
		{"", "2.5"},
		{"blue", "3.5"},
		{"red", "4.5"},
		{"NA", "5.5"},
		{"blue", "6.5"},
	})
	a.NoError(err)

	cleaned, _, err := Clean(tbl, Types{"color": Categorical})
	a.NoError(err)
	vals, err := cleaned.Strings("color")
	a.NoError(err)
	a.Equal("missing", vals[1])
	a.Equal("missing", vals[4])
	a.Equal("red", vals[0])
}

func TestGuessOrdinal(t *testing.T) {
	a := assert.New(t)
	a.True(GuessOrdinal([]float64{1, 2, 3, 2, 1, 3, 2}))
	a.True(GuessOrdinal([]float64{0, 1, 2, 3, 4, 0, 2}))
	// Gap between 1 and 5 breaks contiguity.
	a.False(GuessOrdinal([]float64{1, 5, 1, 5, 3, 1, 5, 7}))
	// Two levels are not enough to call it a scale.
	a.False(GuessOrdinal([]float64{0, 1, 0, 1}))
	a.False(GuessOrdinal([]float64{1.5, 2.5, 3.5}))
}

func TestPruneCategories(t *testing.T) {
	a := assert.New(t)
	values := []string{}
	for i := 0; i < 8; i++ {
		for j := 0; j <= i; j++ {
			values = append(values, fmt.Sprintf("c%d", i))
		}
	}
	pruned := PruneCategories(values, 3)

	distinct := map[string]bool{}
	for _, v := range pruned {
		distinct[v] = true
	}
	a.Len(distinct, 4) // cap + "other"
	a.True(distinct["c7"])
	a.True(distinct["c6"])
	a.True(distinct["c5"])
	a.True(distinct[OtherLevel])
	a.False(distinct["c0"])
}

func TestPruneCategoriesUnderCap(t *testing.T) {
	a := assert.New(t)
	values := []string{"a", "b", "a", "c"}
	pruned := PruneCategories(values, 10)
	a.Equal(values, pruned)
}
