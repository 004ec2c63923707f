package puzzle

// Outcome is the result class of resolving one input direction.
type Outcome uint8

const (
	OutcomeBlocked Outcome = iota
	OutcomeSimpleMove
	OutcomeConsumeInPlace
	OutcomePushFruit
	OutcomeWin
	OutcomeFruitFell
	OutcomeFall
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeBlocked:
		return "blocked"
	case OutcomeSimpleMove:
		return "simple_move"
	case OutcomeConsumeInPlace:
		return "consume_in_place"
	case OutcomePushFruit:
		return "push_fruit"
	case OutcomeWin:
		return "win"
	case OutcomeFruitFell:
		return "fruit_fell"
	case OutcomeFall:
		return "fall"
	default:
		return "unknown"
	}
}

// Effect is what consuming a fruit does to the snake.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectGrow
	EffectPropel
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectGrow:
		return "grow"
	case EffectPropel:
		return "propel"
	default:
		return "none"
	}
}

// EffectOf maps a fruit to its consumption effect.
func EffectOf(o Object) Effect {
	switch o {
	case ObjectBanana:
		return EffectGrow
	case ObjectSpicy:
		return EffectPropel
	default:
		return EffectNone
	}
}

// Cell is the content of one grid cell as seen by the rules.
type Cell struct {
	InBounds bool
	Ground   Ground
	Object   Object
	Snake    bool // occupied by a segment that stays put this step
}

// IsWall reports whether the cell is a permanent wall.
func (c Cell) IsWall() bool {
	return c.InBounds && (c.Ground == GroundWall || c.Object == ObjectWall)
}

// PushContext is the target cell plus the cell beyond it in the direction of travel.
type PushContext struct {
	Dir      Dir
	Target   Pos
	At       Cell
	Beyond   Cell
	ExitOpen bool
}

// PushPos returns the cell a fruit at the target would be pushed to.
func (c PushContext) PushPos() Pos {
	return c.Target.Add(c.Dir)
}

// Decision is the effect the rules assign to a push context.
type Decision struct {
	Outcome Outcome
	Effect  Effect
	PushTo  Pos
}

// ReadContext collects the push context for moving the snake head one step in d.
func ReadContext(g *Grid, s *Snake, d Dir, exitOpen bool) PushContext {
	target := s.Head().Add(d)
	push := target.Add(d)
	return PushContext{
		Dir:      d,
		Target:   target,
		At:       readCell(g, s, target),
		Beyond:   readCell(g, s, push),
		ExitOpen: exitOpen,
	}
}

func readCell(g *Grid, s *Snake, p Pos) Cell {
	if !g.InBounds(p) {
		return Cell{}
	}
	return Cell{
		InBounds: true,
		Ground:   g.GroundAt(p),
		Object:   g.ObjectAt(p),
		Snake:    s.Blocks(p),
	}
}

// Decide maps a push context to its effect. It is a pure function.
//
// A fruit at the target is pushed one cell on: off the grid or into a pit it
// falls (a losing outcome), against a wall it is eaten where it stands, onto
// free ground it moves, and onto anything else the push fails.
func Decide(ctx PushContext) Decision {
	at := ctx.At
	switch {
	case !at.InBounds:
		return Decision{Outcome: OutcomeBlocked}
	case at.IsWall():
		return Decision{Outcome: OutcomeBlocked}
	case at.Snake:
		return Decision{Outcome: OutcomeBlocked}
	case at.Object.IsFruit():
		return decidePush(ctx)
	case at.Ground == GroundPit:
		return Decision{Outcome: OutcomeFall}
	case at.Object == ObjectExit && ctx.ExitOpen:
		return Decision{Outcome: OutcomeWin}
	default:
		return Decision{Outcome: OutcomeSimpleMove}
	}
}

func decidePush(ctx PushContext) Decision {
	beyond := ctx.Beyond
	effect := EffectOf(ctx.At.Object)
	switch {
	case !beyond.InBounds:
		return Decision{Outcome: OutcomeFruitFell, Effect: effect}
	case beyond.IsWall():
		return Decision{Outcome: OutcomeConsumeInPlace, Effect: effect}
	case beyond.Snake, beyond.Object != ObjectNone:
		return Decision{Outcome: OutcomeBlocked}
	case beyond.Ground == GroundPit:
		return Decision{Outcome: OutcomeFruitFell, Effect: effect}
	default:
		return Decision{Outcome: OutcomePushFruit, Effect: effect, PushTo: ctx.PushPos()}
	}
}
