// Package sim implements the fixed-timestep dodge simulation: a single
// player standing at a fixed x while a set of obstacles slides along one
// axis. Each frame advances every obstacle, counts the obstacles overlapping
// a grounded player and hands the frame to an observer. The per-frame work
// is expressed through an Executor so the same loop can run sequentially or
// fanned out across goroutines.
package sim

import "github.com/vovakirdan/dodgesim/internal/core"

// Simulation constants.
const (
	FPS            = 60
	FixedDT        = 1.0 / FPS // Seconds per frame
	PlayerX        = 5.0       // Player horizontal position, constant for a run
	AirborneY      = 1.0       // Player at or above this height cannot collide
	OverlapRange   = 1.0       // Max horizontal distance (inclusive) counted as a hit
	CollisionLimit = 5         // Total collisions separating Survives from Dies
	NoObstacleX    = -999.0    // Reported obstacle-0 position when there are none
)

// Obstacle is a 1-D object moving at constant velocity.
type Obstacle struct {
	X float64 // Horizontal position
	V float64 // Velocity in units per second
}

// Player is the avoiding entity. Y is chosen per frame, never integrated.
type Player struct {
	X float64
	Y float64
}

// Airborne reports whether the player is clear of every obstacle this frame.
func (p Player) Airborne() bool {
	return p.Y >= AirborneY
}

// NewPlayer returns a grounded player at PlayerX.
func NewPlayer() Player {
	return Player{X: PlayerX}
}

// NewObstacles builds the initial layout: obstacle i starts at 10*i with
// velocity -5-i.
func NewObstacles(n int) []Obstacle {
	if n <= 0 {
		return []Obstacle{}
	}
	obs := make([]Obstacle, n)
	for i := range obs {
		obs[i] = Obstacle{
			X: float64(i) * 10,
			V: -5 - float64(i),
		}
	}
	return obs
}

// OverlapX reports whether two horizontal positions are within OverlapRange.
// The interval is closed: a distance of exactly OverlapRange overlaps.
func OverlapX(ax, bx float64) bool {
	return core.AbsF(ax-bx) <= OverlapRange
}
