package puzzle

import "github.com/charmbracelet/log"

// State is the resolver state. Only StateIdle accepts input.
type State uint8

const (
	StateIdle State = iota
	StateMoving
	StatePropelling
	StateUndoing
	StateWon
	StateDead
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StatePropelling:
		return "propelling"
	case StateUndoing:
		return "undoing"
	case StateWon:
		return "won"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Controller receives level outcomes. It owns progression and decides
// whether to reload the session.
type Controller interface {
	OnWin()
	OnDeath()
}

// ControllerFuncs adapts plain functions to Controller. Nil funcs are skipped.
type ControllerFuncs struct {
	Win   func()
	Death func()
}

// OnWin calls Win.
func (c ControllerFuncs) OnWin() {
	if c.Win != nil {
		c.Win()
	}
}

// OnDeath calls Death.
func (c ControllerFuncs) OnDeath() {
	if c.Death != nil {
		c.Death()
	}
}

// InputLock is the flag the input adapter checks before forwarding commands.
type InputLock struct {
	locked bool
}

// Lock blocks new input.
func (l *InputLock) Lock() {
	l.locked = true
}

// Unlock accepts new input.
func (l *InputLock) Unlock() {
	l.locked = false
}

// Locked reports whether input is blocked.
func (l *InputLock) Locked() bool {
	return l.locked
}

// MoveResult describes how one input direction was resolved.
// Reason is nil for accepted input and one of ErrBusy, ErrInvalidInput,
// ErrOutOfBounds or ErrBlocked for rejected input.
type MoveResult struct {
	Outcome Outcome
	Effect  Effect
	Target  Pos
	Head    Pos
	Reason  error
}

// Accepted reports whether the input changed the game state.
func (m MoveResult) Accepted() bool {
	return m.Reason == nil
}

// Resolver turns direction commands into grid and snake mutations.
// All logical state changes happen synchronously inside Move, Undo and Tick.
type Resolver struct {
	grid       *Grid
	snake      *Snake
	history    *History
	lock       *InputLock
	timers     *Scheduler
	propulsion *Propulsion
	controller Controller
	logger     *log.Logger
	cfg        Config

	state     State
	countdown int
	exitOpen  bool
	face      Face
	faceTimer TimerID
	moves     int
	undos     int
	notify    []func()
}

func newResolver(g *Grid, s *Snake, h *History, lock *InputLock, timers *Scheduler, c Controller, logger *log.Logger, cfg Config) *Resolver {
	r := &Resolver{
		grid:       g,
		snake:      s,
		history:    h,
		lock:       lock,
		timers:     timers,
		propulsion: NewPropulsion(g, s),
		controller: c,
		logger:     logger,
		cfg:        cfg,
	}
	r.setState(StateIdle)
	return r
}

// State returns the current resolver state.
func (r *Resolver) State() State {
	return r.state
}

// Face returns the cosmetic head expression.
func (r *Resolver) Face() Face {
	return r.face
}

// Move resolves one input direction.
func (r *Resolver) Move(d Dir) MoveResult {
	defer r.flush()

	head := r.snake.Head()
	if r.state != StateIdle || r.lock.Locked() {
		return r.reject(d, head, ErrBusy)
	}
	if !d.IsUnit() || d == r.snake.Facing().Reverse() {
		return r.reject(d, head, ErrInvalidInput)
	}

	r.snake.SetFacing(d)
	ctx := ReadContext(r.grid, r.snake, d, r.exitOpen)
	if !r.grid.InBounds(ctx.Target) {
		return r.reject(d, ctx.Target, ErrOutOfBounds)
	}

	dec := Decide(ctx)
	res := MoveResult{Outcome: dec.Outcome, Effect: dec.Effect, Target: ctx.Target}

	switch dec.Outcome {
	case OutcomeBlocked:
		return r.reject(d, ctx.Target, ErrBlocked)

	case OutcomeFruitFell:
		r.logger.Info("fruit fell", "fruit", ctx.At.Object, "from", ctx.Target, "dir", d)
		r.die(FaceFruitFell)

	case OutcomeConsumeInPlace:
		r.record(TileDelta{Pos: ctx.Target, Object: ctx.At.Object})
		r.grid.ClearObject(ctx.Target)
		r.moves++
		r.logger.Debug("fruit eaten", "fruit", ctx.At.Object, "at", ctx.Target, "effect", dec.Effect)
		switch dec.Effect {
		case EffectGrow:
			r.snake.GrowNextStep()
			r.setFace(FaceEating, true)
		case EffectPropel:
			r.setFace(FacePropelled, true)
			r.startPropulsion()
		}

	case OutcomePushFruit:
		r.record(
			TileDelta{Pos: ctx.Target, Object: ctx.At.Object},
			TileDelta{Pos: dec.PushTo, Object: ctx.Beyond.Object},
		)
		r.grid.MoveObject(ctx.Target, dec.PushTo)
		r.commit(ctx.Target)

	case OutcomeSimpleMove, OutcomeWin, OutcomeFall:
		r.record()
		r.commit(ctx.Target)
		switch {
		case dec.Outcome == OutcomeWin:
			r.checkExit()
		case dec.Outcome == OutcomeFall:
			r.logger.Info("snake fell", "at", ctx.Target)
			r.die(FaceDead)
		}
	}

	res.Head = r.snake.Head()
	return res
}

// Undo rolls back the most recent committed move.
// Returns false when the resolver is busy or the history is empty.
func (r *Resolver) Undo() bool {
	if r.state != StateIdle {
		r.logger.Debug("undo rejected", "state", r.state)
		return false
	}
	snap, ok := r.history.Pop()
	if !ok {
		return false
	}

	r.setState(StateUndoing)
	r.snake.RestoreFrom(snap)
	if r.cfg.UndoRestoresTiles {
		for i := len(snap.Tiles) - 1; i >= 0; i-- {
			r.grid.SetObject(snap.Tiles[i].Pos, snap.Tiles[i].Object)
		}
	}
	r.undos++
	r.setFace(FaceNormal, false)
	r.setState(StateIdle)
	r.logger.Debug("undo", "head", snap.Head, "remaining", r.history.Len())
	return true
}

// Tick advances timers, the move lockout and any running dash by one tick.
func (r *Resolver) Tick() {
	defer r.flush()

	r.timers.Tick()
	switch r.state {
	case StateMoving:
		r.countdown--
		if r.countdown <= 0 {
			r.setState(StateIdle)
		}
	case StatePropelling:
		if _, done := r.propulsion.Tick(); done {
			r.finishPropulsion()
		}
	}
}

// shutdown cancels the running dash and pending notifications.
func (r *Resolver) shutdown() {
	r.propulsion.Cancel()
	r.notify = nil
}

func (r *Resolver) reject(d Dir, at Pos, reason error) MoveResult {
	r.logger.Debug("move rejected", "reason", reason, "dir", d, "target", at, "state", r.state)
	return MoveResult{Outcome: OutcomeBlocked, Target: at, Head: r.snake.Head(), Reason: reason}
}

// record pushes the pre-move snapshot with the tile cells the move changes.
func (r *Resolver) record(tiles ...TileDelta) {
	snap := r.snake.Snapshot()
	snap.Tiles = tiles
	r.history.Push(snap)
}

func (r *Resolver) commit(target Pos) {
	r.snake.Advance(target)
	r.moves++
	if r.cfg.Timing.MoveTicks > 0 {
		r.countdown = r.cfg.Timing.MoveTicks
		r.setState(StateMoving)
		return
	}
	r.setState(StateIdle)
}

func (r *Resolver) startPropulsion() {
	d := r.snake.Facing()
	if r.cfg.PropelRecoil {
		d = d.Reverse()
	}
	r.propulsion.Start(d, r.cfg.Timing.PropelStartTicks, r.cfg.Timing.PropelTicks)
	r.setState(StatePropelling)
	r.logger.Debug("propulsion started", "dir", d, "head", r.snake.Head())
}

func (r *Resolver) finishPropulsion() {
	r.logger.Debug("propulsion stopped", "steps", r.propulsion.Steps(), "head", r.snake.Head())
	r.setState(StateIdle)
	if r.checkExit() {
		return
	}
	for p := range r.snake.Shape() {
		if r.grid.IsSupported(p) {
			return
		}
	}
	r.logger.Info("snake fell after dash", "head", r.snake.Head())
	r.die(FaceDead)
}

// checkExit wins the level when the head stands on an open exit.
func (r *Resolver) checkExit() bool {
	head := r.snake.Head()
	if !r.exitOpen || r.grid.ObjectAt(head) != ObjectExit {
		return false
	}
	r.setState(StateWon)
	r.setFace(FaceWin, false)
	r.logger.Info("level complete", "moves", r.moves, "undos", r.undos)
	r.notify = append(r.notify, r.controller.OnWin)
	return true
}

func (r *Resolver) die(face Face) {
	r.propulsion.Cancel()
	r.setState(StateDead)
	r.setFace(face, false)
	r.timers.After(r.cfg.Timing.RestartDelayTicks, func() {
		r.notify = append(r.notify, r.controller.OnDeath)
	})
}

func (r *Resolver) setFace(f Face, revert bool) {
	if r.faceTimer != 0 {
		r.timers.Cancel(r.faceTimer)
		r.faceTimer = 0
	}
	r.face = f
	if revert && r.cfg.Timing.FaceResetTicks > 0 {
		r.faceTimer = r.timers.After(r.cfg.Timing.FaceResetTicks, func() {
			r.faceTimer = 0
			r.face = FaceNormal
		})
	}
}

func (r *Resolver) setState(s State) {
	r.state = s
	if s == StateIdle {
		r.lock.Unlock()
	} else {
		r.lock.Lock()
	}
}

// flush delivers controller notifications after the step has settled.
func (r *Resolver) flush() {
	pending := r.notify
	r.notify = nil
	for _, fn := range pending {
		fn()
	}
}
