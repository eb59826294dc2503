package tui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frame-arcade/internal/registry"
	"github.com/vovakirdan/frame-arcade/internal/scores"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreRow is one game's best score.
type ScoreRow struct {
	GameID string
	Title  string
	Best   int
}

// ScoreboardModel shows the best score of every registered game.
type ScoreboardModel struct {
	rows       []ScoreRow
	persistent bool
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
}

// LoadScoreRows returns every registered game's best, highest first. Games
// with the same best are ordered by title.
func LoadScoreRows(bridge *scores.Bridge) []ScoreRow {
	games := registry.List()
	bests := bridge.Bests(registry.IDs())

	rows := make([]ScoreRow, 0, len(games))
	for _, g := range games {
		rows = append(rows, ScoreRow{GameID: g.ID, Title: g.Title, Best: bests[g.ID]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Best != rows[j].Best {
			return rows[i].Best > rows[j].Best
		}
		return rows[i].Title < rows[j].Title
	})
	return rows
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(bridge *scores.Bridge, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		rows:       LoadScoreRows(bridge),
		persistent: bridge.Persistent(),
		keys:       DefaultScoreboardKeyMap(),
		help:       h,
		width:      width,
		height:     height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates the table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Game", Width: 24},
		{Title: "Best", Width: 10},
	}

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rank := "#" + strconv.Itoa(i+1)
		if r.Best == 0 {
			rank = "-"
		}
		rows[i] = table.Row{rank, r.Title, strconv.Itoa(r.Best)}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			return m, back
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	if len(m.rows) == 0 {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
		b.WriteString(box.Render(empty.Render("No games registered.")))
	} else {
		b.WriteString(box.Render(m.table.View()))
	}
	b.WriteString("\n")

	if !m.persistent {
		b.WriteString(errorStyle.Render("Scores are kept in memory only and will be lost on exit."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Rows returns the rows shown, highest first.
func (m ScoreboardModel) Rows() []ScoreRow {
	return m.rows
}
