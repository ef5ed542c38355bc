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

// Package selector defines how aggregators read the current row.
//
// A selector is bound once, when an aggregator is built, and then read on
// every Aggregate call. Values are stable for the duration of one call and
// change as the owning cursor advances.
package selector

import (
	"github.com/mars-lan/druid/macro"
	"github.com/mars-lan/druid/utils/cast"
)

// Long reads the current row as an int64.
type Long interface {
	IsNull() bool
	// Long returns 0 when IsNull is true.
	Long() int64
}

// Double reads the current row as a float64.
type Double interface {
	IsNull() bool
	// Double returns 0 when IsNull is true.
	Double() float64
}

// Object reads the raw value of the current row.
type Object interface {
	IsNull() bool
	Object() any
}

// Factory is implemented by cursors that expose rows to aggregators.
type Factory interface {
	// MakeObject returns a selector for a column of the current row.
	MakeObject(column string) Object
	// Row returns the current row. Callers must not modify it.
	Row() map[string]any
	// Offset identifies the current row; it changes on every advance.
	Offset() int
}

// MakeLong binds a long selector to either a column or a compiled
// expression. When both are set the expression wins.
func MakeLong(f Factory, column string, e *macro.Expression) Long {
	if e != nil {
		return longObject{NewExpression(f, e)}
	}
	return longObject{f.MakeObject(column)}
}

// MakeDouble is MakeLong for doubles.
func MakeDouble(f Factory, column string, e *macro.Expression) Double {
	if e != nil {
		return doubleObject{NewExpression(f, e)}
	}
	return doubleObject{f.MakeObject(column)}
}

// Values that cannot be coerced read as null, like a missing column.
type longObject struct {
	Object
}

func (s longObject) IsNull() bool {
	_, ok, err := cast.ToInt64E(s.Object.Object())
	return err != nil || !ok
}

func (s longObject) Long() int64 {
	v, ok, err := cast.ToInt64E(s.Object.Object())
	if err != nil || !ok {
		return 0
	}
	return v
}

type doubleObject struct {
	Object
}

func (s doubleObject) IsNull() bool {
	_, ok, err := cast.ToFloat64E(s.Object.Object())
	return err != nil || !ok
}

func (s doubleObject) Double() float64 {
	v, ok, err := cast.ToFloat64E(s.Object.Object())
	if err != nil || !ok {
		return 0
	}
	return v
}

// expressionSelector evaluates once per row offset.
type expressionSelector struct {
	f      Factory
	e      *macro.Expression
	offset int
	value  any
}

// NewExpression returns an Object selector over a compiled expression.
// Evaluation errors read as null.
func NewExpression(f Factory, e *macro.Expression) Object {
	return &expressionSelector{f: f, e: e, offset: -1}
}

func (s *expressionSelector) Object() any {
	if off := s.f.Offset(); off != s.offset {
		v, err := s.e.Eval(s.f.Row())
		if err != nil {
			v = nil
		}
		s.value = v
		s.offset = off
	}
	return s.value
}

func (s *expressionSelector) IsNull() bool {
	return cast.IsNull(s.Object())
}

// Constant always reads v.
type Constant struct {
	V any
}

func (c Constant) IsNull() bool { return cast.IsNull(c.V) }
func (c Constant) Object() any  { return c.V }
