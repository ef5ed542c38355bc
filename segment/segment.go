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

// Package segment provides immutable in-memory shards of rows and the
// cursor used to scan them.
package segment

import (
	"github.com/mars-lan/druid/selector"
	"github.com/mars-lan/druid/utils/cast"
)

// Segment is an immutable shard of rows. Rows must not be modified after
// the segment is created.
type Segment struct {
	ID   string
	Rows []map[string]any
}

// New creates a segment.
func New(id string, rows []map[string]any) *Segment {
	return &Segment{ID: id, Rows: rows}
}

// Len returns the number of rows.
func (s *Segment) Len() int {
	return len(s.Rows)
}

// Cursor walks a segment row by row. It implements selector.Factory.
// A Cursor is not safe for concurrent use.
type Cursor struct {
	rows []map[string]any
	pos  int
}

// NewCursor returns a cursor positioned on the first row.
func (s *Segment) NewCursor() *Cursor {
	return &Cursor{rows: s.Rows}
}

// Done reports whether the cursor has moved past the last row.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.rows)
}

// Advance moves to the next row.
func (c *Cursor) Advance() {
	c.pos++
}

// Reset rewinds to the first row.
func (c *Cursor) Reset() {
	c.pos = 0
}

// Offset implements selector.Factory.
func (c *Cursor) Offset() int {
	return c.pos
}

// Row implements selector.Factory. It returns nil when Done.
func (c *Cursor) Row() map[string]any {
	if c.Done() {
		return nil
	}
	return c.rows[c.pos]
}

// MakeObject implements selector.Factory.
func (c *Cursor) MakeObject(column string) selector.Object {
	return columnSelector{c: c, column: column}
}

type columnSelector struct {
	c      *Cursor
	column string
}

func (s columnSelector) Object() any {
	row := s.c.Row()
	if row == nil {
		return nil
	}
	return row[s.column]
}

func (s columnSelector) IsNull() bool {
	return cast.IsNull(s.Object())
}
