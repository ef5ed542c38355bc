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

// Package table renders rows as a plain text table.
package table

import (
	"fmt"
	"io"
	"strings"
)

// minWidth is the narrowest column printed
const minWidth = 4

// Fprint writes rows with the given column order. Missing and nil values
// print as "null".
func Fprint(w io.Writer, columns []string, rows []map[string]any) error {
	cells := make([][]string, len(rows))
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = max(len(col), minWidth)
	}
	for r, row := range rows {
		cells[r] = make([]string, len(columns))
		for i, col := range columns {
			s := "null"
			if v, ok := row[col]; ok && v != nil {
				s = fmt.Sprintf("%v", v)
			}
			cells[r][i] = s
			widths[i] = max(widths[i], len(s))
		}
	}

	var sb strings.Builder
	writeBorder(&sb, widths)
	writeLine(&sb, widths, columns)
	writeBorder(&sb, widths)
	for _, line := range cells {
		writeLine(&sb, widths, line)
	}
	writeBorder(&sb, widths)
	fmt.Fprintf(&sb, "(%d rows)\n", len(rows))
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeBorder(sb *strings.Builder, widths []int) {
	sb.WriteByte('+')
	for _, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteByte('+')
	}
	sb.WriteByte('\n')
}

func writeLine(sb *strings.Builder, widths []int, values []string) {
	sb.WriteByte('|')
	for i, v := range values {
		fmt.Fprintf(sb, " %-*s |", widths[i], v)
	}
	sb.WriteByte('\n')
}
