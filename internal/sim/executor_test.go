package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func executors() []Executor {
	return []Executor{
		Sequential{},
		NewParallel(1),
		NewParallel(3),
		NewParallel(8),
		NewParallel(0),
	}
}

func TestOverlapX_Boundary(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want bool
	}{
		{"same position", 5, 5, true},
		{"exactly one to the right", 5, 6, true},
		{"exactly one to the left", 5, 4, true},
		{"just past one", 5, math.Nextafter(6, 7), false},
		{"just past one on the left", 5, math.Nextafter(4, 3), false},
		{"far away", 5, 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverlapX(tt.a, tt.b))
			assert.Equal(t, tt.want, OverlapX(tt.b, tt.a), "overlap should be symmetric")
		})
	}
}

func TestNewObstacles_Layout(t *testing.T) {
	obs := NewObstacles(5)

	assert.Len(t, obs, 5)
	for i, o := range obs {
		assert.Equal(t, float64(10*i), o.X, "obstacle %d position", i)
		assert.Equal(t, -5-float64(i), o.V, "obstacle %d velocity", i)
	}
	assert.Empty(t, NewObstacles(0))
}

func TestAdvance_Linear(t *testing.T) {
	const dt = 0.25

	for _, e := range executors() {
		t.Run(e.Name(), func(t *testing.T) {
			before := randomObstacles(rand.New(rand.NewSource(7)), 37)
			obs := append([]Obstacle(nil), before...)

			e.Advance(obs, dt)

			for i := range obs {
				assert.InDelta(t, before[i].X+before[i].V*dt, obs[i].X, 1e-12, "obstacle %d", i)
				assert.Equal(t, before[i].V, obs[i].V, "velocity must not change")
			}
		})
	}
}

func TestAdvance_Empty(t *testing.T) {
	for _, e := range executors() {
		assert.NotPanics(t, func() { e.Advance(nil, FixedDT) }, e.Name())
	}
}

func TestCount_AirborneShortCircuit(t *testing.T) {
	onTop := []Obstacle{{X: 5}, {X: 5.5}, {X: 4.2}}
	heights := []float64{1.0, 1.2, 50}

	for _, e := range executors() {
		for _, y := range heights {
			p := Player{X: PlayerX, Y: y}
			assert.Zero(t, e.Count(onTop, p), "%s at y=%v", e.Name(), y)
			assert.Zero(t, e.Count(nil, p), "%s empty at y=%v", e.Name(), y)
		}
	}
}

func TestCount_Grounded(t *testing.T) {
	obs := []Obstacle{{X: 5}, {X: 6}, {X: 4}, {X: 6.01}, {X: -20}, {X: 5.3}}
	p := Player{X: PlayerX, Y: 0.99}

	for _, e := range executors() {
		assert.Equal(t, 4, e.Count(obs, p), e.Name())
		assert.Zero(t, e.Count(nil, p), e.Name())
	}
}

func TestCount_InvariantToOrderAndPartitioning(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	obs := randomObstacles(rng, 500)
	p := NewPlayer()

	want := Sequential{}.Count(obs, p)
	assert.Positive(t, want, "fixture should produce some overlaps")

	for round := 0; round < 10; round++ {
		shuffled := append([]Obstacle(nil), obs...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for workers := 1; workers <= 16; workers++ {
			assert.Equal(t, want, NewParallel(workers).Count(shuffled, p), "round %d workers %d", round, workers)
		}
		assert.Equal(t, want, Sequential{}.Count(shuffled, p))
	}
}

func TestCount_DoesNotMutate(t *testing.T) {
	obs := randomObstacles(rand.New(rand.NewSource(3)), 64)
	snapshot := append([]Obstacle(nil), obs...)

	for _, e := range executors() {
		e.Count(obs, NewPlayer())
	}
	assert.Equal(t, snapshot, obs)
}

// randomObstacles scatters obstacles around the player so a fair share overlap.
func randomObstacles(rng *rand.Rand, n int) []Obstacle {
	obs := make([]Obstacle, n)
	for i := range obs {
		obs[i] = Obstacle{
			X: PlayerX + (rng.Float64()*2-1)*4,
			V: -rng.Float64() * 10,
		}
	}
	return obs
}
