package database

import (
	"fmt"
	"time"
)

// NullDisplay is how a SQL NULL is shown in previews.
const NullDisplay = "NULL"

// Column describes one result column.
type Column struct {
	Name     string
	DataType string
}

// ResultSet holds the fully materialized result of a query.
// Every row has len(Columns) values, ordered like Columns.
type ResultSet struct {
	Columns  []Column
	Rows     [][]any
	RowCount int
	Duration time.Duration
}

// ColumnNames returns the column labels in result order.
func (r *ResultSet) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// Head returns a result holding the first n rows, or all rows when there are fewer.
// The returned rows share storage with r.
func (r *ResultSet) Head(n int) *ResultSet {
	if n < 0 {
		n = 0
	}
	if n > len(r.Rows) {
		n = len(r.Rows)
	}
	return &ResultSet{
		Columns:  r.Columns,
		Rows:     r.Rows[:n],
		RowCount: n,
		Duration: r.Duration,
	}
}

// StringRow formats row i for display.
func (r *ResultSet) StringRow(i int) []string {
	row := r.Rows[i]
	out := make([]string, len(row))
	for j, v := range row {
		out[j] = FormatValue(v)
	}
	return out
}

// FormatValue renders a single driver value as text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return NullDisplay
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
