// Package tui implements the interactive viewer over a fetched result set.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/datafetch/internal/database"
	"github.com/joacominatel/datafetch/internal/theme"
	"github.com/joacominatel/datafetch/internal/tui/results"
	"github.com/joacominatel/datafetch/internal/tui/statusbar"
)

// Model is the top-level bubbletea model: a results pane over a status bar.
type Model struct {
	results   results.Model
	statusbar statusbar.Model
	help      help.Model
	keys      KeyMap
	width     int
	height    int
}

// NewModel creates the viewer for rs fetched from the named database.
func NewModel(rs *database.ResultSet, dbName string) Model {
	keys := DefaultKeyMap()
	m := Model{
		results:   results.New(rs, keys.KeyMap),
		statusbar: statusbar.New(dbName),
		help:      help.New(),
		keys:      keys,
	}
	m.syncStatus()
	return m
}

// Browse runs the viewer full screen until the user quits.
func Browse(rs *database.ResultSet, dbName string) error {
	p := tea.NewProgram(NewModel(rs, dbName), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case results.StatusNotifyMsg:
		m.statusbar.SetMessage(msg.Message)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		}

		m.statusbar.SetMessage("")
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		m.syncStatus()
		return m, cmd
	}

	return m, nil
}

func (m *Model) syncStatus() {
	if m.results.RowCount() == 0 {
		m.statusbar.SetPosition(0, 0)
	} else {
		m.statusbar.SetPosition(m.results.Cursor()+1, m.results.RowCount())
	}
	m.statusbar.SetHints(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	statusHeight := 1
	helpHeight := 0
	if m.help.ShowAll {
		helpHeight = lipgloss.Height(m.help.FullHelpView(m.keys.FullHelp()))
	}

	// borders take two lines and two columns
	m.results.SetSize(m.width-2, m.height-statusHeight-helpHeight-2)
	m.help.Width = m.width
	m.statusbar.SetWidth(m.width)
}

// View renders the viewer.
func (m Model) View() string {
	var helpView string
	paneHeight := m.height - 3
	if m.help.ShowAll {
		helpView = m.help.FullHelpView(m.keys.FullHelp())
		paneHeight -= lipgloss.Height(helpView)
	}

	parts := []string{
		theme.StyleBorder.
			Width(max(m.width-2, 0)).
			Height(max(paneHeight, 0)).
			Render(m.results.View()),
	}
	if helpView != "" {
		parts = append(parts, helpView)
	}
	parts = append(parts, m.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
