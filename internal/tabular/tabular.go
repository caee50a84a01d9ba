// Package tabular loads uploaded dataset files (CSV, JSON, XLSX) into a
// column/row structure and writes them back out in any supported export
// format.
package tabular

import (
	"fmt"
	"strings"
)

// Table is an in-memory tabular dataset: an ordered column list plus one
// map per row. Cell values are strings as read from the file; numeric
// interpretation happens downstream.
type Table struct {
	Columns []string
	Rows    []map[string]interface{}
}

// RowCount returns the number of data rows (the header is not a row).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the non-null values of one column in row order.
func (t *Table) Column(name string) []interface{} {
	values := make([]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v, ok := row[name]; ok && v != nil {
			values = append(values, v)
		}
	}
	return values
}

// Head returns a copy of the table truncated to at most limit rows.
func (t *Table) Head(limit int) *Table {
	if limit < 0 || limit >= len(t.Rows) {
		return t
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:limit]}
}

// NormalizeExtension lowercases an extension and strips its leading dot,
// so ".CSV", ".csv" and "csv" all map to "csv".
func NormalizeExtension(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}

// ErrUnsupportedFormat is returned for file types the parser does not read.
type ErrUnsupportedFormat struct {
	Format string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Format)
}
