package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/joacominatel/datafetch/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customers(n int) *database.ResultSet {
	rs := &database.ResultSet{
		Columns: []database.Column{{Name: "id", DataType: "INT8"}, {Name: "name", DataType: "TEXT"}},
	}
	for i := 1; i <= n; i++ {
		rs.Rows = append(rs.Rows, []any{int64(i), fmt.Sprintf("customer-%02d", i)})
	}
	rs.RowCount = n
	return rs
}

// tableLines returns the non-empty output lines.
func tableLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func TestPreview_LimitsRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, customers(12), PreviewRows))

	out := buf.String()
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "name")
	for i := 1; i <= 5; i++ {
		assert.Contains(t, out, fmt.Sprintf("customer-%02d", i))
	}
	assert.NotContains(t, out, "customer-06")

	// top border, header, header rule, 5 rows, bottom border
	assert.Len(t, tableLines(out), 9)
	assert.NotContains(t, out, "\x1b[", "no escape codes when not writing to a terminal")
}

func TestPreview_FewerRowsThanLimit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, customers(3), PreviewRows))

	lines := tableLines(buf.String())
	assert.Len(t, lines, 7)

	header := lines[1]
	assert.Less(t, strings.Index(header, "id"), strings.Index(header, "name"), "column order is stable")

	for i, want := range []string{"customer-01", "customer-02", "customer-03"} {
		assert.Contains(t, lines[3+i], want, "rows keep natural order")
	}
}

func TestPreview_EmptyResultShowsHeaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, customers(0), PreviewRows))

	lines := tableLines(buf.String())
	require.NotEmpty(t, lines)
	assert.Contains(t, buf.String(), "id")
	assert.Contains(t, buf.String(), "name")
	assert.NotContains(t, buf.String(), "customer-")
}

func TestPreview_Null(t *testing.T) {
	rs := &database.ResultSet{
		Columns: []database.Column{{Name: "id"}, {Name: "email"}},
		Rows:    [][]any{{int64(1), nil}},
	}

	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, rs, PreviewRows))
	assert.Contains(t, buf.String(), database.NullDisplay)
}
