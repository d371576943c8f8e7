package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/datafetch/internal/database"
	"github.com/joacominatel/datafetch/internal/theme"
)

const (
	maxColWidth = 40
	// title, header and separator lines above the rows
	chromeHeight = 3
)

// Model is the scrollable view over a materialized result set.
type Model struct {
	result    *database.ResultSet
	cells     [][]string
	keys      KeyMap
	width     int
	height    int
	cursorY   int
	scrollY   int
	colOffset int
	colWidths []int
}

// New creates a results model over rs.
func New(rs *database.ResultSet, keys KeyMap) Model {
	m := Model{result: rs, keys: keys}
	m.cells = make([][]string, len(rs.Rows))
	for i := range rs.Rows {
		m.cells[i] = rs.StringRow(i)
	}
	m.calculateColumnWidths()
	return m
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.ensureVisible()
}

// Cursor returns the selected row index.
func (m Model) Cursor() int {
	return m.cursorY
}

// RowCount returns the number of rows in the result.
func (m Model) RowCount() int {
	return len(m.cells)
}

func (m *Model) calculateColumnWidths() {
	if len(m.result.Columns) == 0 {
		m.colWidths = nil
		return
	}

	m.colWidths = make([]int, len(m.result.Columns))

	// Use display width (not byte length) for accurate measurement
	for i, col := range m.result.Columns {
		m.colWidths[i] = lipgloss.Width(col.Name)
	}

	for _, row := range m.cells {
		for i, cell := range row {
			w := lipgloss.Width(cell)
			if i < len(m.colWidths) && w > m.colWidths[i] {
				m.colWidths[i] = w
			}
		}
	}

	for i := range m.colWidths {
		if m.colWidths[i] < 1 {
			m.colWidths[i] = 1
		}
		if m.colWidths[i] > maxColWidth {
			m.colWidths[i] = maxColWidth
		}
	}
}

func (m Model) visibleRows() int {
	v := m.height - chromeHeight
	if v < 1 {
		v = 1
	}
	return v
}

func (m *Model) ensureVisible() {
	last := len(m.cells) - 1
	if m.cursorY > last {
		m.cursorY = last
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.cursorY < m.scrollY {
		m.scrollY = m.cursorY
	}
	if v := m.visibleRows(); m.cursorY >= m.scrollY+v {
		m.scrollY = m.cursorY - v + 1
	}
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation and copy keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursorY--
	case key.Matches(keyMsg, m.keys.Down):
		m.cursorY++
	case key.Matches(keyMsg, m.keys.PageUp):
		m.cursorY -= m.visibleRows()
	case key.Matches(keyMsg, m.keys.PageDown):
		m.cursorY += m.visibleRows()
	case key.Matches(keyMsg, m.keys.Top):
		m.cursorY = 0
	case key.Matches(keyMsg, m.keys.Bottom):
		m.cursorY = len(m.cells) - 1
	case key.Matches(keyMsg, m.keys.Left):
		if m.colOffset > 0 {
			m.colOffset--
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.colOffset < len(m.colWidths)-1 {
			m.colOffset++
		}
	case key.Matches(keyMsg, m.keys.CopyJSON):
		return m, m.copyRowJSONCmd()
	case key.Matches(keyMsg, m.keys.CopyCSV):
		return m, m.copyRowCSVCmd()
	}

	m.ensureVisible()
	return m, nil
}

// View renders the results pane.
func (m Model) View() string {
	stats := fmt.Sprintf("%d row(s) | %s",
		len(m.cells),
		m.result.Duration.Round(1000).String(),
	)
	header := theme.StyleTitle.Render("Results") + "  " + theme.StyleMuted.Render(stats)

	if len(m.result.Columns) == 0 {
		return header + "\n" + theme.StyleMuted.Render("  Query returned no columns")
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.renderRow(m.result.ColumnNames(), lipgloss.NewStyle().Bold(true).Foreground(theme.ColorPrimary)))
	b.WriteString("\n")
	b.WriteString(m.renderSeparator())

	if len(m.cells) == 0 {
		b.WriteString("\n")
		b.WriteString(theme.StyleMuted.Render("  (no rows)"))
		return b.String()
	}

	end := m.scrollY + m.visibleRows()
	if end > len(m.cells) {
		end = len(m.cells)
	}
	for i := m.scrollY; i < end; i++ {
		b.WriteString("\n")
		style := lipgloss.NewStyle()
		if i == m.cursorY {
			style = theme.StyleCursor
		}
		b.WriteString(m.renderRow(m.cells[i], style))
	}

	return b.String()
}

func (m Model) renderRow(cells []string, style lipgloss.Style) string {
	var parts []string
	for i := m.colOffset; i < len(cells); i++ {
		width := 10
		if i < len(m.colWidths) {
			width = m.colWidths[i]
		}
		parts = append(parts, style.Render(fit(cells[i], width)))
	}
	return "  " + strings.Join(parts, " │ ")
}

func (m Model) renderSeparator() string {
	var parts []string
	for i := m.colOffset; i < len(m.colWidths); i++ {
		parts = append(parts, strings.Repeat("─", m.colWidths[i]))
	}
	return "  " + lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(strings.Join(parts, "─┼─"))
}

// fit truncates or pads s to exactly width display cells.
func fit(s string, width int) string {
	if width < 1 {
		width = 1
	}
	if lipgloss.Width(s) > width {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes)) >= width {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "…"
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
