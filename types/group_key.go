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

package types

import "strings"

// keySeparator cannot appear in rendered dimension values coming from
// JSON or YAML documents.
const keySeparator = "\x00"

// EmptyGroupKey is the key of the single group of a query without
// dimensions.
var EmptyGroupKey = NewGroupKey()

// GroupKey identifies a group by its rendered dimension values.
type GroupKey string

func NewGroupKey(values ...string) GroupKey {
	return GroupKey(strings.Join(values, keySeparator))
}

// Values splits the key back into its dimension values. n is the number
// of dimensions the key was built from.
func (k GroupKey) Values(n int) []string {
	if n == 0 {
		return nil
	}
	return strings.SplitN(string(k), keySeparator, n)
}
