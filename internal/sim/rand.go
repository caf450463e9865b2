package sim

import (
	"math/rand"
	"time"
)

// RandSource supplies the per-frame jump decision. Float64 must return a
// value in [0, 1).
type RandSource interface {
	Float64() float64
}

// ResolveSeed turns the "0 means random" convention into a concrete seed.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// NewRand returns a RandSource seeded with ResolveSeed(seed).
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(ResolveSeed(seed)))
}
