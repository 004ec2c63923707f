package snakepuzzle

import "github.com/vovakirdan/snake-puzzle/internal/puzzle"

// GameStateType is the coarse phase of the game.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateBusy         GameStateType = "busy"
	StateDead         GameStateType = "dead"
	StateLevelCleared GameStateType = "level_cleared"
	StateAllCleared   GameStateType = "all_cleared"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism tests and replay checks.
type Snapshot struct {
	Tick      uint64
	Level     int // 1-indexed
	LevelID   string
	Moves     int
	Undos     int
	Remaining int
	Head      puzzle.Pos
	SnakeLen  int
	Facing    puzzle.Dir
	Face      puzzle.Face
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.allCleared:
		state = StateAllCleared
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	case g.session.State() == puzzle.StateDead:
		state = StateDead
	case g.session.State() != puzzle.StateIdle:
		state = StateBusy
	}

	return Snapshot{
		Tick:      g.tick,
		Level:     g.index + 1,
		LevelID:   g.pack[g.index].ID,
		Moves:     g.session.Moves(),
		Undos:     g.session.Undos(),
		Remaining: g.session.Remaining(),
		Head:      g.session.HeadPosition(),
		SnakeLen:  len(g.session.Segments()),
		Facing:    g.session.Facing(),
		Face:      g.session.Face(),
		State:     state,
	}
}
