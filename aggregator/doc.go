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
Package aggregator implements the aggregate families of the engine and the
two ways each of them accumulates state.

# Core Features

• Heap Aggregation - One Aggregator object per group, read through a bound selector
• Slot Aggregation - One stateless BufferAggregator writing into caller owned slots
• Null Handling - Null rows are skipped and empty groups stay absent
• Combining - Partial results from different segments merge with Factory.Combine
• Cache Keys - Byte keys that identify a computation independent of its output name
• Registry - Factories built from declarative specs by type name

# Families

	count                                   rows seen, never null
	longSum, longMin, longMax, longAny       int64 inputs
	doubleSum, doubleMin, doubleMax, doubleAny  float64 inputs

The any families keep the first non-null value they observe. Which row that
is depends on scan order, so results are stable only for a fixed order.

# Slot Layout

Every family except count uses a nine byte slot:

	byte 0      null flag, 1 while no value has been seen
	bytes 1..8  value, little-endian int64 or IEEE-754 float64

Count uses a bare eight byte little-endian counter.

# Usage Examples

Building a factory and aggregating with it:

	f, err := NewLongAny("first_price", "price", "", nil)
	agg, err := f.Factorize(cursor)
	for ; !cursor.Done(); cursor.Advance() {
		agg.Aggregate()
	}
	v := agg.Get() // OptionalLong

From a spec:

	f, err := FromSpec(types.AggregatorSpec{Type: "doubleSum", Name: "total", Expression: "price * qty"}, macro.Default())

Merging partials:

	merged := f.Combine(partialA, partialB)

# Custom Aggregators

	Register("myType", func(spec types.AggregatorSpec, macros *macro.Table) (Factory, error) {
		return newMyFactory(spec, macros)
	})
*/
package aggregator
