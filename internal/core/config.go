package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the status a game reports to the platform after each step.
type GameState struct {
	LevelID  string
	Moves    int
	Undos    int
	Won      bool // every level of the pack is cleared
	GameOver bool // the game has ended and waits for restart or exit
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Finished lists level attempts that ended during this step.
	Finished []RunResult
}

// Outcome is how a level attempt ended.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeDeath     Outcome = "death"
	OutcomeFruitFell Outcome = "fruit_fell"
	OutcomeAbandon   Outcome = "abandon"
)

// RunResult records one finished level attempt.
type RunResult struct {
	LevelID  string
	Outcome  Outcome
	Moves    int
	Undos    int
	Ticks    int
	Finished time.Time
}
