// Package core provides small shared helpers for the simulator: numeric
// utilities, index-range partitioning and a rune buffer for the live view.
// It has no external dependencies so the simulation stays pure and testable.
package core

// Span is a half-open index range [Lo, Hi).
type Span struct {
	Lo, Hi int
}

// Len returns the number of indices covered by the span.
func (s Span) Len() int {
	return s.Hi - s.Lo
}

// Chunks splits [0, n) into at most parts contiguous, disjoint spans whose
// lengths differ by at most one. Empty spans are never returned.
func Chunks(n, parts int) []Span {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	spans := make([]Span, 0, parts)
	size, extra := n/parts, n%parts
	lo := 0
	for i := 0; i < parts; i++ {
		hi := lo + size
		if i < extra {
			hi++
		}
		spans = append(spans, Span{Lo: lo, Hi: hi})
		lo = hi
	}
	return spans
}

// AbsF returns the absolute value of a float64.
func AbsF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
