package puzzle

// Timing holds the durations of timed phases, in simulation ticks.
type Timing struct {
	MoveTicks         int // input lockout after a committed move
	PropelStartTicks  int // delay before the first dash step
	PropelTicks       int // ticks between dash steps
	RestartDelayTicks int // delay between death and the OnDeath notification
	FaceResetTicks    int // 0 keeps cosmetic faces until the next change
}

// DefaultTiming returns timings tuned for a 60 Hz tick.
func DefaultTiming() Timing {
	return Timing{
		MoveTicks:         9,
		PropelStartTicks:  6,
		PropelTicks:       9,
		RestartDelayTicks: 90,
		FaceResetTicks:    120,
	}
}

// InstantTiming returns timings for headless use: moves settle at once and
// every delayed phase takes a single tick.
func InstantTiming() Timing {
	return Timing{PropelTicks: 1, RestartDelayTicks: 1}
}

// Config tunes a Session.
type Config struct {
	Timing Timing

	// PropelRecoil dashes opposite to the facing direction instead of along it.
	PropelRecoil bool
	// UndoRestoresTiles puts eaten or pushed fruit back on undo.
	UndoRestoresTiles bool
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Timing:            DefaultTiming(),
		UndoRestoresTiles: true,
	}
}
