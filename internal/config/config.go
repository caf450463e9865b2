// Package config provides YAML-based run configuration loading and the
// named presets for the dodge simulator.
package config

import (
	"fmt"

	"github.com/vovakirdan/dodgesim/internal/sim"
)

// SimConfig is the on-disk form of a run configuration.
type SimConfig struct {
	Frames     int     `yaml:"frames"`
	Obstacles  int     `yaml:"obstacles"`
	JumpHeight float64 `yaml:"jump_height"`
	JumpProb   float64 `yaml:"jump_probability"`
	Workers    int     `yaml:"workers"`  // Parallel executor goroutines, 0 = GOMAXPROCS
	Seed       int64   `yaml:"seed"`     // 0 = time-based
	Sections   bool    `yaml:"sections"` // Overlap counting and reporting within a frame
}

// ToSim returns the simulation parameters. Validation is left to
// sim.NewLoop so invalid files fail the same way as invalid flags.
func (c SimConfig) ToSim() sim.Config {
	return sim.Config{
		Frames:     c.Frames,
		Obstacles:  c.Obstacles,
		JumpHeight: c.JumpHeight,
		JumpProb:   c.JumpProb,
	}
}

// Preset names a jump behavior.
type Preset string

const (
	PresetReference Preset = "reference"
	PresetCautious  Preset = "cautious"
	PresetReckless  Preset = "reckless"
	PresetGrounded  Preset = "grounded"
)

// Presets lists every known preset in display order.
func Presets() []Preset {
	return []Preset{PresetReference, PresetCautious, PresetReckless, PresetGrounded}
}

// JumpProbForPreset returns the jump probability for a preset.
func JumpProbForPreset(p Preset) (float64, bool) {
	switch p {
	case PresetReference:
		return 0.25, true
	case PresetCautious:
		return 0.6, true
	case PresetReckless:
		return 0.05, true
	case PresetGrounded:
		return 0.0, true
	default:
		return 0, false
	}
}

// ApplyPreset overrides the jump probability of cfg. Unknown presets are
// rejected so typos don't silently run the defaults.
func ApplyPreset(cfg *SimConfig, name string) error {
	if name == "" {
		return nil
	}
	prob, ok := JumpProbForPreset(Preset(name))
	if !ok {
		return fmt.Errorf("config: unknown preset %q", name)
	}
	cfg.JumpProb = prob
	return nil
}
