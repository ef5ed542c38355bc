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

package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorWalk(t *testing.T) {
	seg := New("s1", []map[string]any{
		{"host": "a", "bytes": 10},
		{"host": "b"},
	})
	require.Equal(t, 2, seg.Len())

	c := seg.NewCursor()
	bytes := c.MakeObject("bytes")
	host := c.MakeObject("host")

	require.False(t, c.Done())
	assert.Equal(t, 0, c.Offset())
	assert.Equal(t, 10, bytes.Object())
	assert.False(t, bytes.IsNull())
	assert.Equal(t, "a", host.Object())

	c.Advance()
	assert.Equal(t, 1, c.Offset())
	assert.True(t, bytes.IsNull())
	assert.Equal(t, "b", host.Object())

	c.Advance()
	assert.True(t, c.Done())
	assert.Nil(t, c.Row())
	assert.True(t, host.IsNull())

	c.Reset()
	assert.False(t, c.Done())
	assert.Equal(t, "a", host.Object())
}

func TestEmptySegment(t *testing.T) {
	c := New("empty", nil).NewCursor()
	assert.True(t, c.Done())
	assert.Nil(t, c.MakeObject("x").Object())
}
