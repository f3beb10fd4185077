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

package dataset

import (
	"fmt"
	"regexp"
	"strconv"
)

var limitRegexp = regexp.MustCompile(`(?i)LIMIT\s+[0-9]+`)

// limitQuery caps query at n rows.
// If the query has no LIMIT clause, one is appended; an existing LIMIT
// larger than n is lowered to n.
func limitQuery(query string, n int) string {
	loc := limitRegexp.FindStringIndex(query)
	if loc == nil {
		return fmt.Sprintf("%s LIMIT %d", query, n)
	}
	return limitRegexp.ReplaceAllStringFunc(query, func(clause string) string {
		num, _ := strconv.Atoi(regexp.MustCompile(`[0-9]+`).FindString(clause))
		if num > n {
			num = n
		}
		return fmt.Sprintf("LIMIT %d", num)
	})
}

// FromSQL runs query against db and returns the result as a Table.
// If n == 0, return nil, err
// If n > 0, fetch n row(s) at most
// If n < 0, fetch all rows
func FromSQL(db *DB, query string, n int) (*Table, error) {
	if n == 0 {
		return nil, fmt.Errorf("cannot fetch 0 rows")
	}
	if n > 0 {
		query = limitQuery(query, n)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := [][]string{cols}
	raw := make([][]byte, len(cols))
	dest := make([]interface{}, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		rec := make([]string, len(cols))
		for i, b := range raw {
			rec[i] = string(b)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 1 {
		return nil, fmt.Errorf("query %q returned no rows", query)
	}
	return FromRecords(records)
}
