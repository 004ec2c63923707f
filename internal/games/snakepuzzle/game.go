// Package snakepuzzle adapts the puzzle session to the platform game
// interface: input mapping, level progression and rendering.
package snakepuzzle

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-puzzle/internal/config"
	"github.com/vovakirdan/snake-puzzle/internal/core"
	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
	"github.com/vovakirdan/snake-puzzle/internal/registry"
)

// GameID is the registry identifier.
const GameID = "snakepuzzle"

// Game implements registry.Game for the snake puzzle. It is the level
// controller of its session: it advances on a win and restarts on a death.
type Game struct {
	cfg    config.PuzzleConfig
	logger *log.Logger

	pack    []levels.Level
	index   int
	session *puzzle.Session

	tick           uint64
	levelStartTick uint64
	screenW        int
	screenH        int

	paused       bool
	tooSmall     bool
	levelCleared bool
	clearTicks   int
	allCleared   bool

	finished []core.RunResult
}

func init() {
	registry.Register(registry.GameInfo{ID: GameID, Title: "Snake Puzzle"}, func(opts registry.Options) (registry.Game, error) {
		return NewFromOptions(opts)
	})
}

// ErrEmptyPack is returned when no level could be loaded.
var ErrEmptyPack = errors.New("snakepuzzle: level pack is empty")

// NewFromOptions loads config and levels as described by opts.
func NewFromOptions(opts registry.Options) (*Game, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	pace, err := config.ParsePace(opts.Pace)
	if err != nil {
		return nil, err
	}
	config.ApplyPace(&cfg, pace)

	dir := opts.LevelsDir
	if dir == "" {
		dir = cfg.Levels.Dir
	}
	loader := levels.Open(config.ExpandHome(dir))
	loader.ExitOpen = cfg.Rules.ExitOpen
	if opts.Logger != nil {
		loader.Logger = opts.Logger
	}
	pack, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}

	g, err := New(pack, cfg, opts.Logger)
	if err != nil {
		return nil, err
	}
	if opts.StartLevel != "" {
		if err := g.SelectLevel(opts.StartLevel); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// New creates a game over an already loaded pack.
func New(pack []levels.Level, cfg config.PuzzleConfig, logger *log.Logger) (*Game, error) {
	if len(pack) == 0 {
		return nil, ErrEmptyPack
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		cfg:     cfg,
		logger:  logger,
		pack:    slices.Clone(pack),
		screenW: 80,
		screenH: 24,
	}
	g.session = puzzle.NewSession(
		puzzle.WithLogger(logger.With("game", GameID)),
		puzzle.WithConfig(cfg.Session()),
		puzzle.WithController(g),
	)
	if err := g.loadLevel(0); err != nil {
		return nil, err
	}
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake Puzzle"
}

// Reset restarts the current level and applies the screen size.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.allCleared = false
	g.finished = nil
	if err := g.loadLevel(g.index); err != nil {
		g.logger.Error("reset failed", "level", g.pack[g.index].ID, "err", err)
	}
}

// Resize updates the screen size without touching game state.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.updateTooSmall()
}

// SelectLevel jumps to the level with the given id.
func (g *Game) SelectLevel(id string) error {
	for i, lvl := range g.pack {
		if lvl.ID == id {
			g.allCleared = false
			return g.loadLevel(i)
		}
	}
	return fmt.Errorf("level %s: %w", id, puzzle.ErrNoLevel)
}

// UpdateLevel replaces a level of the pack, reloading it when it is the one
// being played. Unknown ids are appended.
func (g *Game) UpdateLevel(l levels.Level) error {
	for i := range g.pack {
		if g.pack[i].ID != l.ID {
			continue
		}
		g.pack[i] = l
		if i == g.index && !g.allCleared {
			g.logger.Info("reloading edited level", "id", l.ID)
			return g.loadLevel(i)
		}
		return nil
	}
	g.pack = append(g.pack, l)
	return nil
}

// Levels returns the pack in play order.
func (g *Game) Levels() []levels.Level {
	return g.pack
}

// Session exposes the running puzzle session.
func (g *Game) Session() *puzzle.Session {
	return g.session
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.finished = nil

	if in.Has(core.ActionPause) && !g.allCleared {
		g.paused = !g.paused
	}

	switch {
	case g.allCleared:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.allCleared = false
			g.restartAt(0)
		}
		return g.result()
	case g.paused || g.tooSmall:
		return g.result()
	case g.levelCleared:
		g.clearTicks++
		if g.clearTicks >= max(g.cfg.Timing.RestartDelayTicks, 1) {
			g.advance()
		}
		return g.result()
	}

	if in.Has(core.ActionRestart) {
		g.abandon()
		g.restartAt(g.index)
		return g.result()
	}

	if in.Has(core.ActionUndo) {
		g.session.Undo()
	} else if d, ok := directionOf(in); ok {
		g.session.Move(d)
	}
	g.session.Tick()

	return g.result()
}

// OnWin records the run and starts the level-clear pause.
func (g *Game) OnWin() {
	g.record(core.OutcomeWin)
	g.levelCleared = true
	g.clearTicks = 0
}

// OnDeath records the run and restarts the level.
func (g *Game) OnDeath() {
	outcome := core.OutcomeDeath
	if g.session.Face() == puzzle.FaceFruitFell {
		outcome = core.OutcomeFruitFell
	}
	g.record(outcome)
	g.restartAt(g.index)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		LevelID:  g.pack[g.index].ID,
		Moves:    g.session.Moves(),
		Undos:    g.session.Undos(),
		Won:      g.allCleared,
		GameOver: g.allCleared,
		Paused:   g.paused,
	}
}

// Abandon records the current attempt as abandoned if any move was made.
// Frontends call it when the player leaves mid-level.
func (g *Game) Abandon() []core.RunResult {
	g.finished = nil
	g.abandon()
	return g.finished
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Finished: g.finished}
}

func (g *Game) abandon() {
	if g.levelCleared || g.allCleared || g.session.Moves() == 0 {
		return
	}
	switch g.session.State() {
	case puzzle.StateDead, puzzle.StateWon:
		return
	}
	g.record(core.OutcomeAbandon)
}

func (g *Game) record(outcome core.Outcome) {
	r := core.RunResult{
		LevelID: g.pack[g.index].ID,
		Outcome: outcome,
		Moves:   g.session.Moves(),
		Undos:   g.session.Undos(),
		Ticks:   int(g.tick - g.levelStartTick),
	}
	g.logger.Info("level attempt finished", "level", r.LevelID, "outcome", r.Outcome, "moves", r.Moves, "undos", r.Undos)
	g.finished = append(g.finished, r)
}

func (g *Game) advance() {
	next := g.index + 1
	if next >= len(g.pack) {
		g.levelCleared = false
		g.allCleared = true
		g.logger.Info("all levels cleared", "levels", len(g.pack))
		return
	}
	g.restartAt(next)
}

func (g *Game) restartAt(i int) {
	if err := g.loadLevel(i); err != nil {
		g.logger.Error("level load failed", "level", g.pack[i].ID, "err", err)
	}
}

func (g *Game) loadLevel(i int) error {
	if err := g.session.Reload(g.pack[i].Level); err != nil {
		return err
	}
	g.index = i
	g.levelCleared = false
	g.clearTicks = 0
	g.levelStartTick = g.tick
	g.updateTooSmall()
	return nil
}

// directionOf maps the first direction action of the frame to a direction.
func directionOf(in core.InputFrame) (puzzle.Dir, bool) {
	switch {
	case in.Has(core.ActionUp):
		return puzzle.Up, true
	case in.Has(core.ActionDown):
		return puzzle.Down, true
	case in.Has(core.ActionLeft):
		return puzzle.Left, true
	case in.Has(core.ActionRight):
		return puzzle.Right, true
	}
	return puzzle.Dir{}, false
}
