package sim

import (
	"fmt"
	"time"
)

// Outcome is the final verdict of a run.
type Outcome int

const (
	Survives Outcome = iota // Fewer than CollisionLimit collisions
	Dies                    // More than CollisionLimit collisions
	Limit                   // Exactly CollisionLimit collisions
)

// Classify maps a collision total onto an Outcome.
func Classify(total int) Outcome {
	switch {
	case total < CollisionLimit:
		return Survives
	case total > CollisionLimit:
		return Dies
	default:
		return Limit
	}
}

// String returns the canonical name used in logs and storage.
func (o Outcome) String() string {
	switch o {
	case Survives:
		return "SURVIVES"
	case Dies:
		return "DIES"
	case Limit:
		return "LIMIT"
	default:
		return "UNKNOWN"
	}
}

// Verdict returns the wording printed in the final report.
func (o Outcome) Verdict() string {
	switch o {
	case Survives:
		return "SOBREVIVE"
	case Dies:
		return "MUERE"
	case Limit:
		return fmt.Sprintf("LIMITE (%d colisiones)", CollisionLimit)
	default:
		return "?"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "SURVIVES":
		return Survives, nil
	case "DIES":
		return Dies, nil
	case "LIMIT":
		return Limit, nil
	default:
		return 0, fmt.Errorf("sim: unknown outcome %q", s)
	}
}

// Result summarizes a run.
type Result struct {
	TotalCollisions int
	Outcome         Outcome
	Frames          int           // Frames actually simulated
	Elapsed         time.Duration // Wall-clock time spent in the frame loop
}
