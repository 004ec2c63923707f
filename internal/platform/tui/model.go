package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-puzzle/internal/core"
	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/registry"
	"github.com/vovakirdan/snake-puzzle/internal/storage"
)

// statusTicks is how long a status line stays on screen.
const statusTicks = 180

// Optional game capabilities used by the frontend.
type (
	resizer interface {
		Resize(w, h int)
	}
	abandoner interface {
		Abandon() []core.RunResult
	}
	levelUpdater interface {
		UpdateLevel(l levels.Level) error
	}
)

// Options configures a game model.
type Options struct {
	Store   *storage.Store
	Player  string
	Changes <-chan levels.Change // level edits to hot-reload, may be nil
	Logger  *log.Logger
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	board      Palette
	status     string
	statusLeft int
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		board:      DefaultTheme().Board,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitForChange(m.opts.Changes))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case LevelChangedMsg:
		return m.handleLevelChange(levels.Change(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.leave()
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize keeps the game state and only updates the screen size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.saveRuns(result.Finished)

	if m.statusLeft > 0 {
		m.statusLeft--
		if m.statusLeft == 0 {
			m.status = ""
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) handleLevelChange(c levels.Change) (tea.Model, tea.Cmd) {
	next := waitForChange(m.opts.Changes)
	name := filepath.Base(c.Path)

	switch {
	case c.Err != nil:
		m.setStatus(fmt.Sprintf("%s: %v", name, c.Err))
	case c.Removed:
		m.setStatus(name + " removed")
	default:
		u, ok := m.game.(levelUpdater)
		if !ok {
			return m, next
		}
		if err := u.UpdateLevel(c.Level); err != nil {
			m.setStatus(fmt.Sprintf("%s: %v", name, err))
			break
		}
		m.setStatus("reloaded " + c.Level.ID)
	}
	return m, next
}

func (m *Model) setStatus(s string) {
	m.opts.Logger.Info("level change", "status", s)
	m.status = s
	m.statusLeft = statusTicks
}

// leave records the running attempt as abandoned.
func (m *Model) leave() {
	if a, ok := m.game.(abandoner); ok {
		m.saveRuns(a.Abandon())
	}
}

func (m *Model) saveRuns(runs []core.RunResult) {
	if m.opts.Store == nil {
		return
	}
	for _, r := range runs {
		if _, err := m.opts.Store.SaveRun(m.opts.Player, r); err != nil {
			m.opts.Logger.Warn("could not save run", "level", r.LevelID, "error", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snakepuzzle", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.gameState.LevelID, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "error", err)
		return
	}
	m.setStatus("saved " + path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" {
		m.screen.DrawHLine(0, m.screen.Height()-1, m.screen.Width(), ' ', core.ColorDefault)
		m.screen.DrawTextColored(1, m.screen.Height()-1, m.status, core.ColorBrightYellow)
	}
	return m.board.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays the game until the player quits or goes back.
// It returns true when the player asked to go back to the level picker.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (back bool, err error) {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
