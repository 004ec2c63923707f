package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-puzzle/internal/storage"
)

// Runs view layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show level list sidebar
	sidebarWidth       = 22  // Width of level list sidebar
	maxRuns            = 100 // Max runs to load per level
	overviewPage       = "All levels"
)

// RunsKeyMap defines the key bindings for the runs view.
type RunsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.PrevPage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/right", "next level"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/left", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel shows the run history: an overview of every level followed
// by one page of recent attempts per level.
type RunsModel struct {
	pages       []string // overviewPage, then level ids
	page        int
	store       *storage.Store
	tickRate    int
	table       table.Model
	rows        []table.Row
	help        help.Model
	keys        RunsKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
	loadErr     error
}

// NewRunsModel creates the runs view. levelIDs seeds the page list;
// levels with stored runs are added after them.
func NewRunsModel(store *storage.Store, levelIDs []string, width, height, tickRate int) RunsModel {
	pages := append([]string{overviewPage}, levelIDs...)
	if store != nil {
		if played, err := store.PlayedLevels(); err == nil {
			seen := make(map[string]bool, len(pages))
			for _, p := range pages {
				seen[p] = true
			}
			for _, id := range played {
				if !seen[id] {
					pages = append(pages, id)
				}
			}
		}
	}

	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		pages:       pages,
		store:       store,
		tickRate:    max(tickRate, 1),
		help:        h,
		keys:        DefaultRunsKeyMap(),
		theme:       DefaultTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

func (m *RunsModel) columns() []table.Column {
	if m.page == 0 {
		return []table.Column{
			{Title: "Level", Width: 18},
			{Title: "Tries", Width: 6},
			{Title: "Wins", Width: 5},
			{Title: "Deaths", Width: 7},
			{Title: "Best", Width: 5},
			{Title: "Avg", Width: 6},
		}
	}
	return []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Player", Width: 10},
		{Title: "Outcome", Width: 10},
		{Title: "Moves", Width: 6},
		{Title: "Undos", Width: 6},
		{Title: "Time", Width: 7},
	}
}

// createTable creates a new table for the current page.
func (m *RunsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the rows of the current page.
func (m *RunsModel) load() {
	m.rows = nil
	m.loadErr = nil
	if m.store != nil {
		if m.page == 0 {
			m.rows, m.loadErr = m.overviewRows()
		} else {
			m.rows, m.loadErr = m.levelRows(m.pages[m.page])
		}
	}
	m.table = m.createTable()
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *RunsModel) overviewRows() ([]table.Row, error) {
	var rows []table.Row
	for _, id := range m.pages[1:] {
		st, err := m.store.LevelStats(id)
		if err != nil {
			return nil, err
		}
		if st.Attempts == 0 {
			continue
		}
		best := "-"
		if st.BestMoves > 0 {
			best = fmt.Sprintf("%d", st.BestMoves)
		}
		rows = append(rows, table.Row{
			id,
			fmt.Sprintf("%d", st.Attempts),
			fmt.Sprintf("%d", st.Wins),
			fmt.Sprintf("%d", st.Deaths),
			best,
			fmt.Sprintf("%.1f", st.AvgMoves),
		})
	}
	return rows, nil
}

func (m *RunsModel) levelRows(levelID string) ([]table.Row, error) {
	runs, err := m.store.RecentRuns(levelID, maxRuns)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Player,
			string(r.Outcome),
			fmt.Sprintf("%d", r.Moves),
			fmt.Sprintf("%d", r.Undos),
			fmt.Sprintf("%.1fs", float64(r.Ticks)/float64(m.tickRate)),
		}
	}
	return rows, nil
}

// Init initializes the runs model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs view.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPage):
			m.page = (m.page + 1) % len(m.pages)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevPage):
			m.page = (m.page - 1 + len(m.pages)) % len(m.pages)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs view.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("RUNS - %s", m.pages[m.page])
	b.WriteString(m.theme.Title.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Controls.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with a level list sidebar.
func (m RunsModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.pages {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.page {
			cursor = "> "
			style = m.theme.ItemActive
		}
		name := p
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	side := m.theme.Border.Width(sidebarWidth).Render(sidebar.String())
	content := m.theme.Border.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", content)
}

// renderNarrowLayout shows only the current page name with arrows.
func (m RunsModel) renderNarrowLayout() string {
	var b strings.Builder
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.pages[m.page]), m.width))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Border.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m RunsModel) renderTableContent() string {
	empty := m.theme.Description.Italic(true).Padding(2, 4)
	switch {
	case m.store == nil:
		return empty.Render("Run history is disabled.")
	case m.loadErr != nil:
		return empty.Render(fmt.Sprintf("Could not load runs:\n%v", m.loadErr))
	case len(m.rows) == 0:
		return empty.Render("No runs recorded yet.\nSolve a level to set a record!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the level picker.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// Rows returns the rows of the current page.
func (m RunsModel) Rows() []table.Row {
	return m.rows
}

// RunRuns runs the history screen.
// Returns true if user wants to go back to the level picker, false if quitting.
func RunRuns(store *storage.Store, levelIDs []string, width, height, tickRate int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewRunsModel(store, levelIDs, width, height, tickRate),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
