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

/*
Package druid is an in-memory grouped aggregation engine modelled on the
aggregation layer of a columnar analytics database.

Rows live in immutable segments. A query names dimensions to group by and a
list of aggregators; each segment is scanned independently into partial
results, and the partials are merged in segment order.

# Core Features

• Aggregator Families - count, long/double sum, min, max and any
• Null Awareness - absent values stay distinct from a present zero
• Two Groupers - per group objects on the heap, or packed slots in one byte region
• Two Merge Modes - Combine partials directly, or re-aggregate them with combining factories
• Expressions - aggregator inputs may be expressions over row columns
• Result Cache - keyed by what a query computes, snappy compressed

# Getting Started

	engine, err := druid.New(druid.WithParallelism(4))
	if err != nil {
		panic(err)
	}

	segments := []*segment.Segment{
		segment.New("2024-01-01", []map[string]any{
			{"region": "eu", "price": 12, "qty": 3},
			{"region": "us", "price": nil, "qty": 1},
		}),
	}

	res, err := engine.RunSpec(context.Background(), []byte(`{
		"dataSource": "sales",
		"dimensions": ["region"],
		"aggregations": [
			{"type": "longAny", "name": "some_price", "fieldName": "price"},
			{"type": "doubleSum", "name": "revenue", "expression": "price * qty"},
			{"type": "count", "name": "rows"}
		]
	}`), segments)
	if err != nil {
		panic(err)
	}
	res.WriteTable(os.Stdout)

# Configuration

Engines start from types.NewConfig. Options adjust it:

	druid.New(
		druid.WithLogLevel(logger.DEBUG),
		druid.WithGrouping(types.GroupingHeap),
		druid.WithMergeMode(types.MergeReaggregate),
		druid.WithCache(4096),
	)

Or a whole document can be loaded with types.ParseConfig and passed with
WithConfig.

# Query Context

	"context": {"useCache": false, "populateCache": true, "grouping": "buffer", "mergeMode": "combine"}

Grouping and merge mode never change results. The any families depend on
segment order, which is why segment ids and their order are part of the
result cache key.
*/
package druid
