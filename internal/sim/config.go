package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is returned when a Config cannot be run.
var ErrInvalidConfiguration = errors.New("sim: invalid configuration")

// Config holds the scalar parameters of a run. It is immutable once a Loop
// has been built from it.
type Config struct {
	Frames     int     // Number of frames to simulate
	Obstacles  int     // Number of obstacles in the initial layout
	JumpHeight float64 // Player height on frames where it jumps
	JumpProb   float64 // Probability of jumping on any given frame, in [0, 1]
}

// DefaultConfig returns the reference run parameters.
func DefaultConfig() Config {
	return Config{
		Frames:     300,
		Obstacles:  5,
		JumpHeight: 1.2,
		JumpProb:   0.25,
	}
}

// Validate checks the configuration and returns an error wrapping
// ErrInvalidConfiguration for the first violation found.
func (c Config) Validate() error {
	if c.Frames < 0 {
		return fmt.Errorf("%w: frame count %d is negative", ErrInvalidConfiguration, c.Frames)
	}
	if c.Obstacles < 0 {
		return fmt.Errorf("%w: obstacle count %d is negative", ErrInvalidConfiguration, c.Obstacles)
	}
	if math.IsNaN(c.JumpProb) || c.JumpProb < 0 || c.JumpProb > 1 {
		return fmt.Errorf("%w: jump probability %v outside [0, 1]", ErrInvalidConfiguration, c.JumpProb)
	}
	if math.IsNaN(c.JumpHeight) || math.IsInf(c.JumpHeight, 0) {
		return fmt.Errorf("%w: jump height %v is not finite", ErrInvalidConfiguration, c.JumpHeight)
	}
	return nil
}
