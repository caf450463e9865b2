package sim

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrFinished is returned by Step once every frame has been simulated.
var ErrFinished = errors.New("sim: run finished")

// State is the lifecycle stage of a Loop.
type State int

const (
	NotStarted State = iota
	Running
	Finished
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Option customizes a Loop.
type Option func(*Loop)

// WithExecutor selects how per-frame work is executed.
func WithExecutor(e Executor) Option {
	return func(l *Loop) {
		if e != nil {
			l.exec = e
		}
	}
}

// WithSeed seeds the default random source. 0 picks a time-based seed.
func WithSeed(seed int64) Option {
	return func(l *Loop) {
		l.seed = ResolveSeed(seed)
		l.rng = NewRand(l.seed)
	}
}

// WithRand replaces the random source entirely.
func WithRand(r RandSource) Option {
	return func(l *Loop) {
		if r != nil {
			l.rng = r
		}
	}
}

// WithObserver sets the per-frame observer.
func WithObserver(o Observer) Option {
	return func(l *Loop) {
		if o != nil {
			l.observer = o
		}
	}
}

// WithObstacles replaces the default layout. The slice is copied and the
// obstacle count follows its length.
func WithObstacles(obs []Obstacle) Option {
	return func(l *Loop) {
		l.obstacles = append([]Obstacle(nil), obs...)
		l.cfg.Obstacles = len(l.obstacles)
	}
}

// WithSections runs collision counting and observation concurrently once
// the obstacles have been advanced.
func WithSections(enabled bool) Option {
	return func(l *Loop) {
		l.sections = enabled
	}
}

// Loop owns the player and obstacle state of one run and drives it frame
// by frame. A Loop is not safe for concurrent use.
type Loop struct {
	cfg       Config
	exec      Executor
	rng       RandSource
	seed      int64
	observer  Observer
	sections  bool
	player    Player
	obstacles []Obstacle

	state   State
	frame   int // Next frame to simulate
	total   int // Collisions so far
	started time.Time
	elapsed time.Duration
}

// NewLoop validates cfg and builds a loop ready to run. Invalid
// configurations are rejected before any frame executes.
func NewLoop(cfg Config, opts ...Option) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := ResolveSeed(0)
	l := &Loop{
		cfg:       cfg,
		exec:      Sequential{},
		seed:      seed,
		rng:       NewRand(seed),
		observer:  Discard,
		player:    NewPlayer(),
		obstacles: NewObstacles(cfg.Obstacles),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Step simulates one frame and returns its collision count. After the last
// frame the loop is finished and further calls return ErrFinished.
func (l *Loop) Step() (int, error) {
	if l.state == Finished {
		return 0, ErrFinished
	}
	if l.state == NotStarted {
		l.start()
	}
	if l.frame >= l.cfg.Frames {
		l.finish()
		return 0, ErrFinished
	}

	hits := l.simulateFrame()
	l.total += hits
	l.frame++

	if l.frame == l.cfg.Frames {
		l.finish()
	}
	return hits, nil
}

// Run simulates every remaining frame. Cancellation is checked between
// frames; a cancelled run returns the partial result and ctx.Err().
func (l *Loop) Run(ctx context.Context) (Result, error) {
	if l.state == NotStarted {
		l.start()
	}
	for l.state == Running {
		if err := ctx.Err(); err != nil {
			return l.Result(), err
		}
		if _, err := l.Step(); err != nil && !errors.Is(err, ErrFinished) {
			return l.Result(), err
		}
	}
	return l.Result(), nil
}

// simulateFrame draws the jump, advances obstacles, then counts collisions
// against the advanced positions.
func (l *Loop) simulateFrame() int {
	if l.rng.Float64() < l.cfg.JumpProb {
		l.player.Y = l.cfg.JumpHeight
	} else {
		l.player.Y = 0
	}

	l.exec.Advance(l.obstacles, FixedDT)

	if !l.sections {
		hits := l.exec.Count(l.obstacles, l.player)
		l.observer.Observe(l.frame, l.player, l.obstacles)
		return hits
	}

	// Both sections only read state, so they can overlap.
	var hits int
	frame, player := l.frame, l.player
	var g errgroup.Group
	g.Go(func() error {
		hits = l.exec.Count(l.obstacles, player)
		return nil
	})
	g.Go(func() error {
		l.observer.Observe(frame, player, l.obstacles)
		return nil
	})
	_ = g.Wait()
	return hits
}

func (l *Loop) start() {
	l.state = Running
	l.started = time.Now()
}

func (l *Loop) finish() {
	l.state = Finished
	l.elapsed = time.Since(l.started)
}

// Result returns the run summary. Before the loop finishes it reflects the
// frames simulated so far.
func (l *Loop) Result() Result {
	elapsed := l.elapsed
	if l.state == Running {
		elapsed = time.Since(l.started)
	}
	return Result{
		TotalCollisions: l.total,
		Outcome:         Classify(l.total),
		Frames:          l.frame,
		Elapsed:         elapsed,
	}
}

// State returns the lifecycle stage.
func (l *Loop) State() State { return l.state }

// Frame returns the index of the next frame to simulate.
func (l *Loop) Frame() int { return l.frame }

// Config returns the run configuration.
func (l *Loop) Config() Config { return l.cfg }

// Seed returns the seed of the default random source. It is meaningless
// when WithRand supplied the source.
func (l *Loop) Seed() int64 { return l.seed }

// Sections reports whether counting and observation overlap within a frame.
func (l *Loop) Sections() bool { return l.sections }

// Executor returns the executor driving the loop.
func (l *Loop) Executor() Executor { return l.exec }

// Player returns the player as of the last simulated frame.
func (l *Loop) Player() Player { return l.player }

// Obstacles returns a copy of the current obstacle layout.
func (l *Loop) Obstacles() []Obstacle {
	return append([]Obstacle(nil), l.obstacles...)
}
