// Package report turns simulation frames and results into human-readable
// output: per-frame lines, structured log records and the final summary.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dodgesim/internal/sim"
)

// obstacleZeroX returns the position of obstacle 0 or the sentinel.
func obstacleZeroX(obs []sim.Obstacle) float64 {
	if len(obs) == 0 {
		return sim.NoObstacleX
	}
	return obs[0].X
}

// FrameLine formats one frame the way the console report prints it.
func FrameLine(frame int, p sim.Player, obs []sim.Obstacle) string {
	return fmt.Sprintf("frame=%d  player.y=%.2f  obs0.x=% .2f", frame, p.Y, obstacleZeroX(obs))
}

// WriterObserver prints a FrameLine per frame. Write errors are kept, not
// returned, since the simulation does not depend on its reporter.
type WriterObserver struct {
	w   io.Writer
	err error
}

// NewWriterObserver returns an observer writing to w.
func NewWriterObserver(w io.Writer) *WriterObserver {
	return &WriterObserver{w: w}
}

// Observe implements sim.Observer.
func (o *WriterObserver) Observe(frame int, p sim.Player, obs []sim.Obstacle) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintln(o.w, FrameLine(frame, p, obs))
}

// Err returns the first write error, if any.
func (o *WriterObserver) Err() error {
	return o.err
}

// LogObserver emits a debug record per frame.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver returns an observer logging through logger.
func NewLogObserver(logger *log.Logger) LogObserver {
	return LogObserver{logger: logger}
}

// Observe implements sim.Observer.
func (o LogObserver) Observe(frame int, p sim.Player, obs []sim.Obstacle) {
	o.logger.Debug("frame",
		"frame", frame,
		"player_y", p.Y,
		"airborne", p.Airborne(),
		"obs0_x", obstacleZeroX(obs),
	)
}
