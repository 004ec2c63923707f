package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-puzzle/internal/core"
	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/storage"
)

// MenuModel is the level picker.
type MenuModel struct {
	levels       []levels.Level
	best         map[string]int // fewest winning moves per level id
	cursor       int
	scrollOffset int
	width        int
	height       int
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	theme        Theme
	selected     string
	openRuns     bool
	quitting     bool
}

// NewMenuModel creates a level picker over pack. The store, if any,
// provides the best result shown next to each solved level.
func NewMenuModel(pack []levels.Level, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	best := make(map[string]int)
	if store != nil {
		for _, l := range pack {
			if run, err := store.BestRun(l.ID); err == nil && run != nil {
				best[l.ID] = run.Moves
			}
		}
	}

	return MenuModel{
		levels:    pack,
		best:      best,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     DefaultTheme(),
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
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
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
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.levels) > 0 {
			m.selected = m.levels[m.cursor].ID
			return m, tea.Quit
		}

	case MenuActionRuns:
		m.openRuns = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("S N A K E   P U Z Z L E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Description.Render("Select a level"), m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(m.theme.Description.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.levels))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		l := m.levels[i]
		cursor := "  "
		style := m.theme.ItemNormal
		result := ""
		if moves, ok := m.best[l.ID]; ok {
			style = m.theme.ItemSolved
			result = fmt.Sprintf("  best %d", moves)
		}
		if i == m.cursor {
			cursor = "> "
			style = m.theme.ItemActive
		}
		line := style.Render(fmt.Sprintf("%s%2d. %s%s", cursor, i+1, l.Name, result))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if end < len(m.levels) {
		b.WriteString(centerText(m.theme.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	if hint := m.hint(); hint != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Description.Render(hint), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Runs  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// hint returns the metadata hint of the level under the cursor.
func (m MenuModel) hint() string {
	if len(m.levels) == 0 {
		return ""
	}
	return m.levels[m.cursor].Metadata["hint"]
}

// Selected returns the chosen level id, or "" if none was chosen.
func (m MenuModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRuns returns true if user requested the run history.
func (m MenuModel) WantsRuns() bool {
	return m.openRuns
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID   string
	Config    core.RuntimeConfig
	WantsRuns bool
	Quit      bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(pack []levels.Level, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(pack, store, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsRuns():
		result.WantsRuns = true
	case m.Selected() != "":
		result.LevelID = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
