package results

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joacominatel/datafetch/internal/database"
)

var (
	defaultWriteClipboard = clipboard.WriteAll
	// writeClipboard is swapped out in tests.
	writeClipboard = defaultWriteClipboard
)

func (m Model) currentRow() ([]any, bool) {
	if m.cursorY < 0 || m.cursorY >= len(m.result.Rows) {
		return nil, false
	}
	return m.result.Rows[m.cursorY], true
}

func (m Model) copyRowJSONCmd() tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return notify("No row to copy")
	}
	text := rowToJSON(m.result.ColumnNames(), row)
	return copyCmd(text, "Copied row as JSON")
}

func (m Model) copyRowCSVCmd() tea.Cmd {
	if _, ok := m.currentRow(); !ok {
		return notify("No row to copy")
	}
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(m.result.ColumnNames())
	_ = w.Write(m.cells[m.cursorY])
	w.Flush()
	return copyCmd(b.String(), "Copied row as CSV")
}

func copyCmd(text, done string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return StatusNotifyMsg{Message: "Copy failed: " + err.Error()}
		}
		return StatusNotifyMsg{Message: done}
	}
}

func notify(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusNotifyMsg{Message: msg}
	}
}

// rowToJSON preserves column order unlike map marshaling
func rowToJSON(columns []string, row []any) string {
	var b strings.Builder
	b.WriteString("{")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		k, _ := json.Marshal(col)
		b.Write(k)
		b.WriteString(": ")
		var v any
		if i < len(row) {
			v = row[i]
		}
		b.Write(jsonValue(v))
	}
	b.WriteString("}")
	return b.String()
}

func jsonValue(v any) []byte {
	switch val := v.(type) {
	case nil:
		return []byte("null")
	case []byte:
		v = string(val)
	case time.Time:
		v = val.Format(time.RFC3339Nano)
	}
	out, err := json.Marshal(v)
	if err != nil {
		out, _ = json.Marshal(database.FormatValue(v))
	}
	return out
}
