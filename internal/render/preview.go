// Package render formats result sets for terminal output.
package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joacominatel/datafetch/internal/database"
	"github.com/joacominatel/datafetch/internal/theme"
)

// PreviewRows is how many rows a preview shows.
const PreviewRows = 5

// Preview writes the column headers and the first n rows of rs to w.
// Colors are only emitted when w is a terminal.
func Preview(w io.Writer, rs *database.ResultSet, n int) error {
	r := lipgloss.NewRenderer(w)
	_, err := fmt.Fprintln(w, Table(r, rs.Head(n)))
	return err
}

// Table renders every row of rs as a bordered table.
func Table(r *lipgloss.Renderer, rs *database.ResultSet) string {
	headerStyle := r.NewStyle().Bold(true).Foreground(theme.ColorPrimary).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	nullStyle := cellStyle.Foreground(theme.ColorMuted)

	rows := make([][]string, len(rs.Rows))
	for i := range rs.Rows {
		rows[i] = rs.StringRow(i)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(theme.ColorBorder)).
		Headers(rs.ColumnNames()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(rs.Rows) && col < len(rs.Rows[row]) && rs.Rows[row][col] == nil:
				return nullStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}
