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
	"fmt"
)

// Number is the set of primitive types aggregate slots hold.
type Number interface {
	int64 | float64
}

// Optional is either Present(v) or Absent. Absent never compares equal to a
// present zero.
type Optional[T Number] struct {
	value   T
	present bool
}

// OptionalLong and OptionalDouble are the value types of the long and
// double families.
type (
	OptionalLong   = Optional[int64]
	OptionalDouble = Optional[float64]
)

func Present[T Number](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

func Absent[T Number]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Optional[T]) IsNull() bool {
	return !o.present
}

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if !o.present {
		return def
	}
	return o.value
}

// Unbox lets utils/cast and selectors read through the optional.
func (o Optional[T]) Unbox() (any, bool) {
	if !o.present {
		return nil, false
	}
	return o.value, true
}

func (o Optional[T]) String() string {
	if !o.present {
		return "absent"
	}
	return fmt.Sprintf("present(%v)", o.value)
}
