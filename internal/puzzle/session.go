package puzzle

import (
	"fmt"
	"io"
	"iter"

	"github.com/charmbracelet/log"
)

// Session owns everything that lives for one loaded level: the grid, the
// snake, the undo history, the input lock, the timers and the resolver.
// A Session is not safe for concurrent use.
type Session struct {
	logger     *log.Logger
	controller Controller
	cfg        Config

	level    Level
	loaded   bool
	grid     *Grid
	snake    *Snake
	history  *History
	lock     *InputLock
	timers   *Scheduler
	resolver *Resolver
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithController sets the receiver of win and death notifications.
func WithController(c Controller) Option {
	return func(s *Session) {
		if c != nil {
			s.controller = c
		}
	}
}

// WithConfig overrides timing and rule options.
func WithConfig(c Config) Option {
	return func(s *Session) {
		s.cfg = c
	}
}

// NewSession creates a session with no level loaded.
func NewSession(opts ...Option) *Session {
	s := &Session{
		logger:     log.New(io.Discard),
		controller: ControllerFuncs{},
		cfg:        DefaultConfig(),
		history:    NewHistory(),
		lock:       &InputLock{},
		timers:     NewScheduler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetController replaces the controller. It applies to the next Reload.
func (s *Session) SetController(c Controller) {
	if c == nil {
		c = ControllerFuncs{}
	}
	s.controller = c
	if s.resolver != nil {
		s.resolver.controller = c
	}
}

// Reload discards all level-scoped state and rebuilds it from l.
// On a validation error the previous state is left untouched.
func (s *Session) Reload(l Level) error {
	grid, err := NewGrid(l)
	if err != nil {
		s.logger.Warn("level rejected", "id", l.ID, "err", err)
		return fmt.Errorf("reload %q: %w", l.ID, err)
	}
	if s.resolver != nil {
		s.resolver.shutdown()
	}
	s.timers.Reset()
	s.history.Clear()
	s.lock.Unlock()

	s.level = l
	s.loaded = true
	s.grid = grid
	s.snake = NewSnake(l.Start, l.StartFacing())
	s.resolver = newResolver(s.grid, s.snake, s.history, s.lock, s.timers, s.controller, s.logger, s.cfg)
	s.resolver.exitOpen = l.ExitOpen

	s.logger.Info("level loaded", "id", l.ID, "size", fmt.Sprintf("%dx%d", l.Width, l.Height), "start", l.Start)
	return nil
}

// Restart reloads the current level.
func (s *Session) Restart() error {
	if !s.loaded {
		return ErrNoLevel
	}
	return s.Reload(s.level)
}

// Loaded reports whether a level has been loaded.
func (s *Session) Loaded() bool {
	return s.loaded
}

// Move forwards one direction command to the resolver.
func (s *Session) Move(d Dir) MoveResult {
	if s.resolver == nil {
		return MoveResult{Outcome: OutcomeBlocked, Reason: ErrNoLevel}
	}
	return s.resolver.Move(d)
}

// Undo rolls back the last committed move.
func (s *Session) Undo() bool {
	if s.resolver == nil {
		return false
	}
	return s.resolver.Undo()
}

// Tick advances the simulation by one tick.
func (s *Session) Tick() {
	if s.resolver == nil {
		return
	}
	s.resolver.Tick()
}

// Settle ticks until the session accepts input, has won or has died, up to
// limit ticks. It returns the number of ticks spent. A pending OnDeath is
// left to later ticks.
func (s *Session) Settle(limit int) int {
	n := 0
	for ; n < limit; n++ {
		switch s.State() {
		case StateIdle, StateWon, StateDead:
			return n
		}
		s.Tick()
	}
	return n
}

// State returns the resolver state.
func (s *Session) State() State {
	if s.resolver == nil {
		return StateIdle
	}
	return s.resolver.State()
}

// Face returns the cosmetic head expression.
func (s *Session) Face() Face {
	if s.resolver == nil {
		return FaceNormal
	}
	return s.resolver.Face()
}

// InputLocked reports whether new input would be rejected.
func (s *Session) InputLocked() bool {
	return s.lock.Locked()
}

// HeadPosition returns the head cell.
func (s *Session) HeadPosition() Pos {
	if s.snake == nil {
		return Pos{}
	}
	return s.snake.Head()
}

// Shape yields the snake segments from head to tail.
func (s *Session) Shape() iter.Seq[Pos] {
	if s.snake == nil {
		return func(func(Pos) bool) {}
	}
	return s.snake.Shape()
}

// Segments returns a copy of the snake segments, head first.
func (s *Session) Segments() []Pos {
	if s.snake == nil {
		return nil
	}
	return s.snake.Segments()
}

// Facing returns the snake facing direction.
func (s *Session) Facing() Dir {
	if s.snake == nil {
		return Right
	}
	return s.snake.Facing()
}

// PendingGrowth reports whether the next advance keeps the tail.
func (s *Session) PendingGrowth() bool {
	return s.snake != nil && s.snake.PendingGrowth()
}

// Propelled reports whether a dash is in progress.
func (s *Session) Propelled() bool {
	return s.snake != nil && s.snake.Propelled()
}

// TileObjectAt returns the object at p, or ObjectNone out of bounds.
func (s *Session) TileObjectAt(p Pos) Object {
	if s.grid == nil {
		return ObjectNone
	}
	return s.grid.ObjectAt(p)
}

// GroundAt returns the ground at p. Out-of-bounds cells read as pits.
func (s *Session) GroundAt(p Pos) Ground {
	if s.grid == nil {
		return GroundPit
	}
	return s.grid.GroundAt(p)
}

// ExitOpen reports whether stepping on an exit wins the level.
func (s *Session) ExitOpen() bool {
	return s.resolver != nil && s.resolver.exitOpen
}

// SetExitOpen opens or closes the exit for the current level.
func (s *Session) SetExitOpen(open bool) {
	if s.resolver != nil {
		s.resolver.exitOpen = open
	}
}

// Level returns the currently loaded level description.
func (s *Session) Level() Level {
	return s.level
}

// Width returns the grid width.
func (s *Session) Width() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.Width()
}

// Height returns the grid height.
func (s *Session) Height() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.Height()
}

// Remaining returns the number of fruit still on the grid.
func (s *Session) Remaining() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.Count(ObjectBanana) + s.grid.Count(ObjectSpicy)
}

// Moves returns the number of committed moves since the last reload.
func (s *Session) Moves() int {
	if s.resolver == nil {
		return 0
	}
	return s.resolver.moves
}

// Undos returns the number of undone moves since the last reload.
func (s *Session) Undos() int {
	if s.resolver == nil {
		return 0
	}
	return s.resolver.undos
}

// HistoryLen returns the number of moves that can be undone.
func (s *Session) HistoryLen() int {
	return s.history.Len()
}

// Ticks returns the number of ticks since the session was created.
func (s *Session) Ticks() uint64 {
	return s.timers.Now()
}
