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

package druid

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-lan/druid/logger"
	"github.com/mars-lan/druid/macro"
	"github.com/mars-lan/druid/types"
)

func TestOptions(t *testing.T) {
	var out bytes.Buffer
	table, err := macro.NewTable()
	require.NoError(t, err)

	e, err := New(
		WithLogger(logger.NewLogger(logger.DEBUG, &out)),
		WithParallelism(2),
		WithGrouping(types.GroupingHeap),
		WithMergeMode(types.MergeReaggregate),
		WithBufferLimits(128, 1024),
		WithCache(3),
		WithMacros(table),
	)
	require.NoError(t, err)

	cfg := e.Config()
	assert.Equal(t, 2, cfg.ScanConfig.Parallelism)
	assert.Equal(t, types.GroupingHeap, cfg.ScanConfig.Grouping)
	assert.Equal(t, types.MergeReaggregate, cfg.ScanConfig.MergeMode)
	assert.Equal(t, 128, cfg.ScanConfig.InitialBufferBytes)
	assert.Equal(t, 1024, cfg.ScanConfig.MaxBufferBytes)
	assert.Equal(t, 3, cfg.CacheConfig.MaxEntries)
	assert.Same(t, table, e.macros)
}

func TestWithConfig(t *testing.T) {
	cfg, err := types.ParseConfig([]byte("scanConfig:\n  parallelism: 3\ncacheConfig:\n  enabled: false\n"))
	require.NoError(t, err)

	e, err := New(WithDiscardLog(), WithConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, 3, e.Config().ScanConfig.Parallelism)
	_, ok := e.CacheStats()
	assert.False(t, ok)
}

func TestWithLogLevel(t *testing.T) {
	e, err := New(WithDiscardLog(), WithLogLevel(logger.WARN))
	require.NoError(t, err)
	assert.Equal(t, "WARN", e.Config().LogLevel)
}

func TestNewKeepsDefaultLoggerLevel(t *testing.T) {
	var out bytes.Buffer
	prev := logger.GetDefault()
	logger.SetDefault(logger.NewLogger(logger.DEBUG, &out))
	defer logger.SetDefault(prev)

	_, err := New(WithLogLevel(logger.ERROR))
	require.NoError(t, err)
	logger.Debug("still %s", "verbose")
	assert.Contains(t, out.String(), "still verbose")
}

func TestInvalidOptions(t *testing.T) {
	_, err := New(WithDiscardLog(), WithParallelism(0))
	assert.Error(t, err)

	_, err = New(WithDiscardLog(), WithBufferLimits(1024, 16))
	assert.Error(t, err)

	_, err = New(WithConfig(types.Config{LogLevel: "loud", ScanConfig: types.NewConfig().ScanConfig}))
	assert.Error(t, err)
}
