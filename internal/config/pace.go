package config

import (
	"fmt"
	"math"
)

// PacePreset is a named timing profile.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceFast    PacePreset = "fast"
	PaceInstant PacePreset = "instant"
)

// Paces lists the presets in display order.
var Paces = []PacePreset{PaceRelaxed, PaceNormal, PaceFast, PaceInstant}

// ParsePace validates a preset name. Empty means normal.
func ParsePace(s string) (PacePreset, error) {
	if s == "" {
		return PaceNormal, nil
	}
	for _, p := range Paces {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown pace %q", s)
}

// speedFor returns the tick multiplier of a preset.
func speedFor(preset PacePreset) float64 {
	switch preset {
	case PaceRelaxed:
		return 1.5
	case PaceFast:
		return 0.5
	case PaceInstant:
		return 0
	default:
		return 1
	}
}

// ApplyPace scales every timing field by the preset multiplier.
// The instant preset settles moves immediately and keeps the dash and
// restart at one tick per phase.
func ApplyPace(cfg *PuzzleConfig, preset PacePreset) {
	m := speedFor(preset)
	t := &cfg.Timing
	t.MoveTicks = scaleTicks(t.MoveTicks, m, 0)
	t.PropelStartTicks = scaleTicks(t.PropelStartTicks, m, 0)
	t.PropelTicks = scaleTicks(t.PropelTicks, m, 1)
	t.RestartDelayTicks = scaleTicks(t.RestartDelayTicks, m, 1)
	t.FaceResetTicks = scaleTicks(t.FaceResetTicks, m, 0)
}

func scaleTicks(ticks int, m float64, floor int) int {
	return max(int(math.Round(float64(ticks)*m)), floor)
}
