package config

import (
	_ "embed"
)

//go:embed defaults/puzzle.yaml
var defaultPuzzleYAML []byte

// DefaultPuzzleConfig returns the hardcoded configuration used when no file
// and no embedded default can be read. Ticks assume 60 per second.
func DefaultPuzzleConfig() PuzzleConfig {
	return PuzzleConfig{
		Timing: TimingConfig{
			MoveTicks:         9,
			PropelTicks:       9,
			PropelStartTicks:  6,
			RestartDelayTicks: 90,
			FaceResetTicks:    120,
		},
		Rules: RulesConfig{
			ExitOpen:          true,
			UndoRestoresTiles: true,
		},
		Storage: StorageConfig{
			DBPath: "~/.snakepuzzle/runs.db",
		},
		Server: ServerConfig{
			SSHAddr:     ":23234",
			HTTPAddr:    ":8080",
			HostKeyPath: ".ssh/snakepuzzle_ed25519",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPuzzleYAML
}
