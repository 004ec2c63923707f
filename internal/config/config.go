// Package config provides YAML-based puzzle configuration loading and
// pace presets.
package config

import (
	"fmt"

	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
)

// PuzzleConfig contains all configuration for the snake puzzle.
type PuzzleConfig struct {
	Timing  TimingConfig  `yaml:"timing"`
	Rules   RulesConfig   `yaml:"rules"`
	Levels  LevelsConfig  `yaml:"levels"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// TimingConfig defines phase durations in simulation ticks.
type TimingConfig struct {
	MoveTicks         int `yaml:"move_ticks"`
	PropelTicks       int `yaml:"propel_ticks"`
	PropelStartTicks  int `yaml:"propel_start_ticks"`
	RestartDelayTicks int `yaml:"restart_delay_ticks"`
	FaceResetTicks    int `yaml:"face_reset_ticks"`
}

// RulesConfig toggles rule variants.
type RulesConfig struct {
	ExitOpen          bool `yaml:"exit_open"`           // default for levels without exit_open
	PropelRecoil      bool `yaml:"propel_recoil"`       // dash against the facing direction
	UndoRestoresTiles bool `yaml:"undo_restores_tiles"` // undo puts eaten and pushed fruit back
}

// LevelsConfig selects the level pack.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // empty uses the built-in pack
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig holds listen addresses for remote play.
type ServerConfig struct {
	SSHAddr     string `yaml:"ssh_addr"`
	HTTPAddr    string `yaml:"http_addr"`
	HostKeyPath string `yaml:"host_key_path"`
}

// Session converts the config into puzzle session settings.
func (c PuzzleConfig) Session() puzzle.Config {
	return puzzle.Config{
		Timing: puzzle.Timing{
			MoveTicks:         c.Timing.MoveTicks,
			PropelStartTicks:  c.Timing.PropelStartTicks,
			PropelTicks:       c.Timing.PropelTicks,
			RestartDelayTicks: c.Timing.RestartDelayTicks,
			FaceResetTicks:    c.Timing.FaceResetTicks,
		},
		PropelRecoil:      c.Rules.PropelRecoil,
		UndoRestoresTiles: c.Rules.UndoRestoresTiles,
	}
}

// Validate rejects negative durations.
func (c PuzzleConfig) Validate() error {
	fields := []struct {
		name string
		v    int
	}{
		{"timing.move_ticks", c.Timing.MoveTicks},
		{"timing.propel_ticks", c.Timing.PropelTicks},
		{"timing.propel_start_ticks", c.Timing.PropelStartTicks},
		{"timing.restart_delay_ticks", c.Timing.RestartDelayTicks},
		{"timing.face_reset_ticks", c.Timing.FaceResetTicks},
	}
	for _, f := range fields {
		if f.v < 0 {
			return fmt.Errorf("config: %s must not be negative, got %d", f.name, f.v)
		}
	}
	return nil
}
