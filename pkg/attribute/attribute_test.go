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

package attribute

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictionaryValidate(t *testing.T) {
	a := assert.New(t)

	tb := Dictionary{}.
		Int("top_k", 10, "how many features to show", IntLowerBoundChecker(1, true)).
		Float("alpha", 0.5, "scatter alpha", Float64RangeChecker(0, 1, false, true)).
		String("kind", "auto", "categorical plot kind",
			StringChoicesChecker("auto", "count", "proportion", "mosaic"))

	a.NoError(tb.Validate(map[string]interface{}{"top_k": 5}))
	a.Error(tb.Validate(map[string]interface{}{"top_k": 0}))
	a.Error(tb.Validate(map[string]interface{}{"top_k": 1.5}))
	a.NoError(tb.Validate(map[string]interface{}{"alpha": 0.2}))
	a.NoError(tb.Validate(map[string]interface{}{"alpha": 1})) // int promoted to float
	a.Error(tb.Validate(map[string]interface{}{"alpha": 1.5}))
	a.NoError(tb.Validate(map[string]interface{}{"kind": "mosaic"}))
	a.Error(tb.Validate(map[string]interface{}{"kind": "pie"}))
	a.EqualError(tb.Validate(map[string]interface{}{"nope": 1}),
		fmt.Sprintf(errUnsupportedAttribute, "nope"))
}

func TestDictionaryExportDefaults(t *testing.T) {
	a := assert.New(t)

	tb := Dictionary{}.
		Int("top_k", 10, "how many features to show", nil).
		Bool("drop_outliers", true, "drop outliers before plotting", nil).
		String("kind", "auto", "categorical plot kind", nil)

	attrs := map[string]interface{}{"top_k": 3}
	tb.ExportDefaults(attrs)
	a.Equal(3, attrs["top_k"])
	a.Equal(true, attrs["drop_outliers"])
	a.Equal("auto", attrs["kind"])
}

func TestDictionaryDoc(t *testing.T) {
	a := assert.New(t)
	tb := Dictionary{}.
		Int("b_attr", 1, "second", nil).
		Int("a_attr", 1, "first", nil)
	doc := tb.Doc()
	a.True(strings.Index(doc, "a_attr") < strings.Index(doc, "b_attr"))
	a.Contains(doc, "first")
}

func TestCheckers(t *testing.T) {
	a := assert.New(t)

	c := Float64RangeChecker(0, 1, true, true)
	a.NoError(c(0))
	a.NoError(c(1))
	a.Error(c(-0.01))
	a.Error(c(1.01))

	s := StringChoicesChecker("histogram", "kde")
	a.NoError(s("kde"))
	a.Error(s("violin"))
}
