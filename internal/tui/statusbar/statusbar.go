package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/datafetch/internal/theme"
)

// Model is the status bar component.
type Model struct {
	width    int
	database string
	row      int
	total    int
	message  string
	hints    string
}

// New creates a new status bar model for the named database.
func New(database string) Model {
	return Model{database: database}
}

// SetWidth updates the component width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetPosition updates the row indicator. row is 1-based.
func (m *Model) SetPosition(row, total int) {
	m.row = row
	m.total = total
}

// SetMessage sets a temporary status message.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// SetHints sets the keybinding hints shown when there is no message.
func (m *Model) SetHints(hints string) {
	m.hints = hints
}

// View renders the status bar.
func (m Model) View() string {
	style := theme.StyleStatusBar.Width(m.width)

	// Result indicator; the connection is already closed while browsing.
	left := lipgloss.NewStyle().
		Foreground(theme.ColorSuccess).
		Render("●") + " " + m.database
	if m.total > 0 {
		left += theme.StyleMuted.Render(fmt.Sprintf("  row %d/%d", m.row, m.total))
	}

	right := m.hints
	if m.message != "" {
		right = m.message
	}

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4 // borders + spacing
	if padding < 1 {
		padding = 1
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
