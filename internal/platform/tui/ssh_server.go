package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/snake-puzzle/internal/config"
	"github.com/vovakirdan/snake-puzzle/internal/core"
	"github.com/vovakirdan/snake-puzzle/internal/games/snakepuzzle"
	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snakepuzzle/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves the puzzle to SSH clients via Wish.
// Every session plays its own copy of the level pack.
type SSHServer struct {
	config SSHServerConfig
	puzzle config.PuzzleConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu   sync.RWMutex
	pack []levels.Level
}

// NewSSHServer creates a new SSH server. The store may be nil.
func NewSSHServer(cfg SSHServerConfig, puzzle config.PuzzleConfig, pack []levels.Level, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if len(pack) == 0 {
		return nil, snakepuzzle.ErrEmptyPack
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snakepuzzle-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	srv := &SSHServer{
		config: cfg,
		puzzle: puzzle,
		store:  store,
		logger: logger,
		pack:   slices.Clone(pack),
	}

	hostKeyPath := config.ExpandHome(cfg.HostKeyPath)
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".snakepuzzle", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// UpdateLevel replaces or adds a level for sessions started afterwards.
func (s *SSHServer) UpdateLevel(l levels.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pack {
		if s.pack[i].ID == l.ID {
			s.pack[i] = l
			return
		}
	}
	s.pack = append(s.pack, l)
}

// Pack returns a copy of the current level pack.
func (s *SSHServer) Pack() []levels.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.pack)
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(SessionDeps{
		Pack:   s.Pack(),
		Puzzle: s.puzzle,
		Store:  s.store,
		Logger: s.logger.With("user", sshSession.User()),
	}, cfg, sshSession.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// Serve runs the SSH server until ctx is cancelled.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down SSH server")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionDeps is what a session needs to build its game.
type SessionDeps struct {
	Pack   []levels.Level
	Puzzle config.PuzzleConfig
	Store  *storage.Store
	Logger *log.Logger
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewRuns
)

// SessionModel manages the full session flow: picker -> game -> picker,
// with the run history reachable from the picker.
type SessionModel struct {
	deps     SessionDeps
	config   core.RuntimeConfig
	username string
	view     sessionView
	menu     MenuModel
	game     *Model
	runs     *RunsModel
	err      error
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		deps:     deps,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(deps.Pack, deps.Store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewRuns:
		return m.updateRuns(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in the level picker.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRuns():
		ids := make([]string, len(m.deps.Pack))
		for i, l := range m.deps.Pack {
			ids[i] = l.ID
		}
		runs := NewRunsModel(m.deps.Store, ids, m.config.ScreenW, m.config.ScreenH, m.config.TickRate)
		m.runs = &runs
		m.view = viewRuns
		return m, m.runs.Init()

	case m.menu.Selected() != "":
		game, err := snakepuzzle.New(m.deps.Pack, m.deps.Puzzle, m.deps.Logger)
		if err == nil {
			err = game.SelectLevel(m.menu.Selected())
		}
		if err != nil {
			m.err = err
			m.menu = NewMenuModel(m.deps.Pack, m.deps.Store, m.config)
			return m, nil
		}
		m.err = nil
		gameModel := NewModel(game, m.config, Options{
			Store:  m.deps.Store,
			Player: m.username,
			Logger: m.deps.Logger,
		})
		m.game = &gameModel
		m.view = viewGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates while playing.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateRuns handles updates in the run history.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runs.Update(msg)
	if runsModel, ok := newModel.(RunsModel); ok {
		m.runs = &runsModel
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.runs.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.game = nil
	m.runs = nil
	m.menu = NewMenuModel(m.deps.Pack, m.deps.Store, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewRuns:
		return m.runs.View()
	}
	if m.err != nil {
		return m.menu.View() + "\n" + centerText(m.menu.theme.Status.Render(m.err.Error()), m.config.ScreenW)
	}
	return m.menu.View()
}
