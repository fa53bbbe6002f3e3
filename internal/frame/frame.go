// Package frame provides an ordered-column table used as the result
// type for all res2df extractions. Cells are dynamically typed: nil
// marks a missing value, and dates are time.Time values rendered as
// ISO dates on output.
package frame

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Frame errors.
var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrShapeMismatch = errors.New("row length does not match column count")
)

// Frame is a table with a fixed column order and dynamically typed
// cells.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New creates an empty frame with the given column order.
func New(columns ...string) *Frame {
	f := &Frame{
		index: make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		f.index[col] = len(f.columns)
		f.columns = append(f.columns, col)
	}

	return f
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)

	return out
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]

	return ok
}

// AddColumn appends a column. Existing rows get nil cells.
func (f *Frame) AddColumn(name string) {
	if f.HasColumn(name) {
		return
	}

	f.index[name] = len(f.columns)
	f.columns = append(f.columns, name)

	for i := range f.rows {
		f.rows[i] = append(f.rows[i], nil)
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Empty reports whether the frame has no rows.
func (f *Frame) Empty() bool {
	return len(f.rows) == 0
}

// Append adds a row given positionally. The row must match the column
// count.
func (f *Frame) Append(values ...any) error {
	if len(values) != len(f.columns) {
		return fmt.Errorf("%w: got %d, want %d", ErrShapeMismatch, len(values), len(f.columns))
	}

	row := make([]any, len(values))
	copy(row, values)
	f.rows = append(f.rows, row)

	return nil
}

// AppendMap adds a row from a column-to-value map. Columns absent
// from the map become nil, keys not matching a column are an error.
func (f *Frame) AppendMap(values map[string]any) error {
	row := make([]any, len(f.columns))

	for name, value := range values {
		idx, ok := f.index[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}

		row[idx] = value
	}

	f.rows = append(f.rows, row)

	return nil
}

// Value returns the cell at the given row and column.
func (f *Frame) Value(row int, column string) any {
	idx, ok := f.index[column]
	if !ok || row < 0 || row >= len(f.rows) {
		return nil
	}

	return f.rows[row][idx]
}

// SetValue overwrites a cell. Unknown columns are ignored.
func (f *Frame) SetValue(row int, column string, value any) {
	idx, ok := f.index[column]
	if !ok || row < 0 || row >= len(f.rows) {
		return
	}

	f.rows[row][idx] = value
}

// Row returns a copy of the row as a column-to-value map.
func (f *Frame) Row(row int) map[string]any {
	if row < 0 || row >= len(f.rows) {
		return nil
	}

	out := make(map[string]any, len(f.columns))
	for i, col := range f.columns {
		out[col] = f.rows[row][i]
	}

	return out
}

// SortBy stably sorts rows by the given columns. Nil cells sort
// first.
func (f *Frame) SortBy(columns ...string) {
	idxs := make([]int, 0, len(columns))

	for _, col := range columns {
		if idx, ok := f.index[col]; ok {
			idxs = append(idxs, idx)
		}
	}

	sort.SliceStable(f.rows, func(a, b int) bool {
		for _, idx := range idxs {
			cmp := compareCells(f.rows[a][idx], f.rows[b][idx])
			if cmp != 0 {
				return cmp < 0
			}
		}

		return false
	})
}

// UniqueValues returns the distinct values of a column in first-seen
// order.
func (f *Frame) UniqueValues(column string) []any {
	idx, ok := f.index[column]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)

	var out []any

	for _, row := range f.rows {
		key := FormatCell(row[idx])
		if !seen[key] {
			seen[key] = true
			out = append(out, row[idx])
		}
	}

	return out
}

// compareCells orders two cells. Numbers compare numerically, dates
// chronologically, everything else by formatted string.
func compareCells(a, b any) int {
	if a == nil && b == nil {
		return 0
	}

	if a == nil {
		return -1
	}

	if b == nil {
		return 1
	}

	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)

	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	at, aTime := a.(time.Time)
	bt, bTime := b.(time.Time)

	if aTime && bTime {
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}

	as := FormatCell(a)
	bs := FormatCell(b)

	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
