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

package aggregator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mars-lan/druid/segment"
)

// runHeap feeds every row of rows to a heap aggregator built by f.
func runHeap(t *testing.T, f Factory, rows ...map[string]any) Aggregator {
	t.Helper()
	c := segment.New("test", rows).NewCursor()
	agg, err := f.Factorize(c)
	require.NoError(t, err)
	for ; !c.Done(); c.Advance() {
		agg.Aggregate()
	}
	return agg
}

// runBuffer is runHeap over a slot at pos inside a fresh region.
func runBuffer(t *testing.T, f Factory, pos int, rows ...map[string]any) (BufferAggregator, []byte) {
	t.Helper()
	c := segment.New("test", rows).NewCursor()
	agg, err := f.FactorizeBuffered(c)
	require.NoError(t, err)
	buf := make([]byte, pos+f.MaxIntermediateSize())
	agg.Init(buf, pos)
	for ; !c.Done(); c.Advance() {
		agg.Aggregate(buf, pos)
	}
	return agg, buf
}

func values(column string, vs ...any) []map[string]any {
	rows := make([]map[string]any, len(vs))
	for i, v := range vs {
		rows[i] = map[string]any{column: v}
	}
	return rows
}
