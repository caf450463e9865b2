package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dodgesim/internal/sim"
)

func TestFrameLine(t *testing.T) {
	tests := []struct {
		name     string
		frame    int
		y        float64
		obs      []sim.Obstacle
		expected string
	}{
		{
			name:     "negative obstacle",
			frame:    0,
			y:        1.2,
			obs:      []sim.Obstacle{{X: -5.0 / 60, V: -5}},
			expected: "frame=0  player.y=1.20  obs0.x=-0.08",
		},
		{
			name:     "positive obstacle gets a sign space",
			frame:    17,
			y:        0,
			obs:      []sim.Obstacle{{X: 10}},
			expected: "frame=17  player.y=0.00  obs0.x= 10.00",
		},
		{
			name:     "no obstacles",
			frame:    3,
			y:        0,
			obs:      nil,
			expected: "frame=3  player.y=0.00  obs0.x=-999.00",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FrameLine(tc.frame, sim.Player{X: sim.PlayerX, Y: tc.y}, tc.obs)
			if got != tc.expected {
				t.Errorf("FrameLine() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestWriterObserver(t *testing.T) {
	var buf bytes.Buffer
	o := NewWriterObserver(&buf)

	o.Observe(0, sim.NewPlayer(), []sim.Obstacle{{X: 1}})
	o.Observe(1, sim.NewPlayer(), []sim.Obstacle{{X: 2}})

	if o.Err() != nil {
		t.Fatalf("Err() = %v", o.Err())
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "frame=1 ") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestWriterObserverInLoop(t *testing.T) {
	var buf bytes.Buffer
	l, err := sim.NewLoop(sim.Config{Frames: 4, Obstacles: 0, JumpHeight: 1.2}, sim.WithObserver(NewWriterObserver(&buf)))
	if err != nil {
		t.Fatalf("NewLoop() failed: %v", err)
	}
	for {
		if _, err := l.Step(); err != nil {
			break
		}
	}

	if got := strings.Count(buf.String(), "obs0.x=-999.00"); got != 4 {
		t.Errorf("expected 4 sentinel lines, got %d", got)
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	NewLogObserver(logger).Observe(9, sim.Player{X: sim.PlayerX, Y: 1.2}, nil)

	out := buf.String()
	for _, want := range []string{"frame=9", "airborne=true", "obs0_x=-999"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestSummary(t *testing.T) {
	res := sim.Result{TotalCollisions: 6, Outcome: sim.Dies, Frames: 300, Elapsed: 1234567 * time.Nanosecond}

	out := Summary("parallel", res)
	for _, want := range []string{"parallel", "Colisiones totales: 6", "RESULTADO: MUERE", "1.235 ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary() missing %q in:\n%s", want, out)
		}
	}
}

func TestComparison(t *testing.T) {
	seq := sim.Result{TotalCollisions: 3, Outcome: sim.Survives, Elapsed: 4 * time.Millisecond}
	par := sim.Result{TotalCollisions: 3, Outcome: sim.Survives, Elapsed: 2 * time.Millisecond}

	out := Comparison(seq, par)
	for _, want := range []string{"Results agree: yes", "Speedup: 2.00x", "RESULTADO: SOBREVIVE"} {
		if !strings.Contains(out, want) {
			t.Errorf("Comparison() missing %q in:\n%s", want, out)
		}
	}

	par.TotalCollisions = 4
	if !strings.Contains(Comparison(seq, par), "Results agree: NO") {
		t.Error("Comparison() should flag disagreeing totals")
	}
}

func TestMillis(t *testing.T) {
	if got := Millis(1500 * time.Microsecond); got != "1.500 ms" {
		t.Errorf("Millis() = %q", got)
	}
}
