package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frame-arcade/internal/registry"
	"github.com/vovakirdan/frame-arcade/internal/scores"
)

// SelectGameMsg asks the parent model to start a game.
type SelectGameMsg struct {
	GameID string
}

// ShowScoresMsg asks the parent model to open the scoreboard.
type ShowScoresMsg struct{}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	notice    string // One-line message, e.g. a game that failed to start
	quitting  bool
}

// NewMenuModel lists every registered game with its best score.
func NewMenuModel(bridge *scores.Bridge, width, height int) MenuModel {
	games := registry.List()
	bests := bridge.Bests(registry.IDs())

	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Best: bests[g.ID]})
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			id := m.items[m.cursor].GameID
			m.notice = ""
			return m, func() tea.Msg { return SelectGameMsg{GameID: id} }
		}

	case MenuActionScoreboard:
		return m, func() tea.Msg { return ShowScoresMsg{} }
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  A R C A D E  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := centerText(fmt.Sprintf("  %-24s best %6d", item.Title, item.Best), m.width)
		if i == m.cursor {
			line = selectedStyle.Render(centerText(fmt.Sprintf("> %-24s best %6d", item.Title, item.Best), m.width))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(centerText(m.notice, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(centerText("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit", m.width)))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the game under the cursor.
func (m MenuModel) Selected() (MenuItem, bool) {
	if len(m.items) == 0 {
		return MenuItem{}, false
	}
	return m.items[m.cursor], true
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
