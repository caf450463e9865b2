package config

import (
	_ "embed"

	"github.com/vovakirdan/dodgesim/internal/sim"
)

//go:embed defaults/sim.yaml
var defaultSimYAML []byte

// DefaultSimConfig returns the hard-coded reference configuration.
func DefaultSimConfig() SimConfig {
	ref := sim.DefaultConfig()
	return SimConfig{
		Frames:     ref.Frames,
		Obstacles:  ref.Obstacles,
		JumpHeight: ref.JumpHeight,
		JumpProb:   ref.JumpProb,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSimYAML
}
