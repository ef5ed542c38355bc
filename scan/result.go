/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package scan

import (
	"io"

	"github.com/mars-lan/druid/aggregator"
	"github.com/mars-lan/druid/groupby"
	"github.com/mars-lan/druid/utils/cast"
	"github.com/mars-lan/druid/utils/table"
)

// Result is a merged grouped aggregation. Values hold the finalized
// partial form: Optional values for nullable families and int64 counts.
type Result struct {
	Dimensions []string
	Metrics    []string
	Types      []aggregator.ValueType
	Rows       []groupby.Row
}

// NewResult finalizes rows in place and labels them with spec's output
// names and types.
func NewResult(spec Spec, rows []groupby.Row) *Result {
	res := &Result{
		Dimensions: spec.Dimensions,
		Metrics:    make([]string, len(spec.Factories)),
		Types:      make([]aggregator.ValueType, len(spec.Factories)),
		Rows:       rows,
	}
	for i, f := range spec.Factories {
		res.Metrics[i] = f.Name()
		res.Types[i] = f.FinalizedType()
		for _, row := range rows {
			row.Values[i] = f.Finalize(row.Values[i])
		}
	}
	return res
}

// Records renders the result as one map per group. Absent values are nil.
func (r *Result) Records() []map[string]any {
	out := make([]map[string]any, len(r.Rows))
	for n, row := range r.Rows {
		rec := make(map[string]any, len(r.Dimensions)+len(r.Metrics))
		for i, d := range r.Dimensions {
			rec[d] = row.Dims[i]
		}
		for i, m := range r.Metrics {
			v, _ := cast.Unbox(row.Values[i])
			rec[m] = v
		}
		out[n] = rec
	}
	return out
}

// WriteTable prints the result as a text table, dimensions first.
func (r *Result) WriteTable(w io.Writer) error {
	columns := append(append([]string(nil), r.Dimensions...), r.Metrics...)
	return table.Fprint(w, columns, r.Records())
}
