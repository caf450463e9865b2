package sim

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/dodgesim/internal/core"
)

// Executor performs the two data-parallel parts of a frame. Implementations
// must give identical results for identical inputs.
type Executor interface {
	// Name identifies the executor in reports and storage.
	Name() string

	// Advance moves every obstacle by V*dt in place.
	Advance(obs []Obstacle, dt float64)

	// Count returns how many obstacles overlap the player. It must not
	// modify obs.
	Count(obs []Obstacle, p Player) int
}

// advanceSpan is the elementwise body shared by every executor.
func advanceSpan(obs []Obstacle, dt float64) {
	for i := range obs {
		obs[i].X += obs[i].V * dt
	}
}

// countSpan counts overlaps in obs without the airborne short-circuit.
func countSpan(obs []Obstacle, px float64) int {
	n := 0
	for i := range obs {
		if OverlapX(px, obs[i].X) {
			n++
		}
	}
	return n
}

// Sequential runs each frame on the calling goroutine.
type Sequential struct{}

// Name implements Executor.
func (Sequential) Name() string { return "sequential" }

// Advance implements Executor.
func (Sequential) Advance(obs []Obstacle, dt float64) {
	advanceSpan(obs, dt)
}

// Count implements Executor.
func (Sequential) Count(obs []Obstacle, p Player) int {
	if p.Airborne() {
		return 0
	}
	return countSpan(obs, p.X)
}

// Parallel splits the obstacle range into contiguous chunks and processes
// each chunk on its own goroutine, joining before it returns.
type Parallel struct {
	Workers int // Number of chunks; <= 0 means GOMAXPROCS
}

// NewParallel returns a Parallel executor with the given worker count.
func NewParallel(workers int) Parallel {
	return Parallel{Workers: workers}
}

// Name implements Executor.
func (Parallel) Name() string { return "parallel" }

func (p Parallel) workers() int {
	if p.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return p.Workers
}

// Advance implements Executor. Chunks are disjoint so workers never share
// an obstacle.
func (p Parallel) Advance(obs []Obstacle, dt float64) {
	var g errgroup.Group
	for _, sp := range core.Chunks(len(obs), p.workers()) {
		chunk := obs[sp.Lo:sp.Hi]
		g.Go(func() error {
			advanceSpan(chunk, dt)
			return nil
		})
	}
	_ = g.Wait()
}

// Count implements Executor. Each worker writes its own partial count and
// the partials are summed after the join.
func (p Parallel) Count(obs []Obstacle, pl Player) int {
	if pl.Airborne() {
		return 0
	}

	spans := core.Chunks(len(obs), p.workers())
	partials := make([]int, len(spans))

	var g errgroup.Group
	for i, sp := range spans {
		chunk := obs[sp.Lo:sp.Hi]
		g.Go(func() error {
			partials[i] = countSpan(chunk, pl.X)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, n := range partials {
		total += n
	}
	return total
}
