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

package table

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	err := Fprint(&buf, []string{"region", "a"}, []map[string]any{
		{"region": "eu", "a": int64(5)},
		{"region": "us", "a": nil},
	})
	require.NoError(t, err)
	want := "" +
		"+--------+------+\n" +
		"| region | a    |\n" +
		"+--------+------+\n" +
		"| eu     | 5    |\n" +
		"| us     | null |\n" +
		"+--------+------+\n" +
		"(2 rows)\n"
	assert.Equal(t, want, buf.String())
}

func TestFprintEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, []string{"n"}, nil))
	assert.Contains(t, buf.String(), "(0 rows)")
}
