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

package cache

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-lan/druid/aggregator"
	"github.com/mars-lan/druid/groupby"
	"github.com/mars-lan/druid/types"
	"github.com/mars-lan/druid/utils/compress"
)

func TestCacheLRU(t *testing.T) {
	c := New(2)
	c.Put([]byte("a"), []byte("1"))
	c.Put([]byte("b"), []byte("2"))

	v, ok := c.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	c.Put([]byte("c"), []byte("3"))
	_, ok = c.Get([]byte("b"))
	assert.False(t, ok, "b was least recently used")
	_, ok = c.Get([]byte("a"))
	assert.True(t, ok)

	c.Put([]byte("a"), []byte("4"))
	v, _ = c.Get([]byte("a"))
	assert.Equal(t, []byte("4"), v)

	s := c.Stats()
	assert.Equal(t, uint64(3), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.Equal(t, uint64(1), s.Evictions)
	assert.Equal(t, 2, s.Entries)
}

func TestCacheCopiesInput(t *testing.T) {
	c := New(1)
	key, value := []byte("k"), []byte("v")
	c.Put(key, value)
	key[0], value[0] = 'x', 'x'

	v, ok := c.Get([]byte("k"))
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestCacheReturnsCopy(t *testing.T) {
	c := New(1)
	c.Put([]byte("k"), []byte("v"))
	v, ok := c.Get([]byte("k"))
	require.True(t, ok)
	v[0] = 'x'

	v, ok = c.Get([]byte("k"))
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestCacheConcurrent(t *testing.T) {
	c := New(16)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				k := []byte{byte(i), byte(j)}
				c.Put(k, k)
				c.Get(k)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 16, c.Len())
}

func TestRowsRoundTrip(t *testing.T) {
	rows := []groupby.Row{
		{Key: types.NewGroupKey("eu", "x"), Dims: []string{"eu", "x"}, Values: []any{
			aggregator.Present[int64](0), aggregator.Absent[float64](), int64(7)}},
		{Key: types.NewGroupKey("", "y"), Dims: []string{"", "y"}, Values: []any{
			aggregator.Absent[int64](), aggregator.Present(-1.5), int64(0)}},
	}
	data, err := EncodeRows(rows)
	require.NoError(t, err)

	decoded, err := DecodeRows(data)
	require.NoError(t, err)
	assert.Equal(t, rows, decoded)

	empty, err := EncodeRows(nil)
	require.NoError(t, err)
	decoded, err = DecodeRows(empty)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestEncodeRejectsUnknownValues(t *testing.T) {
	_, err := EncodeRows([]groupby.Row{{Values: []any{"text"}}})
	assert.Error(t, err)

	_, err = EncodeRows([]groupby.Row{{}})
	assert.Error(t, err)
}

func TestDecodeCorrupt(t *testing.T) {
	data, err := EncodeRows([]groupby.Row{{Values: []any{int64(1)}}})
	require.NoError(t, err)

	_, err = DecodeRows(data[:len(data)-1])
	assert.True(t, errors.Is(err, ErrCorrupt))

	_, err = DecodeRows([]byte("not snappy at all"))
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestDecodeRejectsOversizedCounts(t *testing.T) {
	header := func(counts ...uint64) []byte {
		var raw []byte
		for _, c := range counts {
			raw = binary.AppendUvarint(raw, c)
		}
		return compress.Encode(raw)
	}
	tests := []struct {
		name string
		data []byte
	}{
		{"rows", header(1<<62, 0, 1)},
		{"dims", header(1, 1<<62, 1)},
		{"values", header(1, 0, 1<<62)},
		{"no columns", header(1, 0, 0)},
		{"rows beyond payload", header(3, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRows(tt.data)
			assert.True(t, errors.Is(err, ErrCorrupt), "%v", err)
		})
	}
}
