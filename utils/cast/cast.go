/*
 * Copyright 2024 The RuleGo Authors.
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

// Package cast coerces row and partial-aggregate values into the primitive
// types aggregators work on. Boxed values that may be absent are unwrapped
// first, so an absent box reads the same as a missing column.
package cast

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
)

// Boxed is implemented by values that may hold nothing, such as the
// optional results produced by aggregators.
type Boxed interface {
	Unbox() (any, bool)
}

// Unbox strips any Boxed wrappers. ok is false for nil and for empty boxes.
func Unbox(v any) (any, bool) {
	for {
		switch x := v.(type) {
		case nil:
			return nil, false
		case Boxed:
			inner, ok := x.Unbox()
			if !ok {
				return nil, false
			}
			v = inner
		default:
			return v, true
		}
	}
}

// IsNull reports whether v carries no value.
func IsNull(v any) bool {
	_, ok := Unbox(v)
	return !ok
}

// ToInt64E converts v to an int64. present is false when v is null.
func ToInt64E(v any) (value int64, present bool, err error) {
	raw, ok := Unbox(v)
	if !ok {
		return 0, false, nil
	}
	switch x := raw.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true, nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false, errors.Wrapf(err, "cannot convert %q to long", x.String())
		}
		return int64(f), true, nil
	case float64:
		return int64(x), true, nil
	case float32:
		return int64(x), true, nil
	}
	i, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, false, errors.Wrapf(err, "cannot convert %T to long", raw)
	}
	return i, true, nil
}

// ToFloat64E converts v to a float64. present is false when v is null.
func ToFloat64E(v any) (value float64, present bool, err error) {
	raw, ok := Unbox(v)
	if !ok {
		return 0, false, nil
	}
	if n, isNumber := raw.(json.Number); isNumber {
		f, err := n.Float64()
		if err != nil {
			return 0, false, errors.Wrapf(err, "cannot convert %q to double", n.String())
		}
		return f, true, nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, false, errors.Wrapf(err, "cannot convert %T to double", raw)
	}
	return f, true, nil
}

// ToString renders a dimension value. Null values become the empty string.
func ToString(v any) string {
	raw, ok := Unbox(v)
	if !ok {
		return ""
	}
	return cast.ToString(raw)
}
