// Package rng implements the seeded pseudo-random stream that drives all
// network generation and simulation stepping. Every draw anywhere in the
// engine comes from a Stream; reaching for any other random source breaks
// reproducibility and is treated as a bug.
package rng

// Linear congruential constants (Numerical Recipes). The recurrence is
//
//	state = (state*1664525 + 1013904223) mod 2^32
//
// and outputs state / 2^32, giving floats in [0, 1).
const (
	multiplier = 1664525
	increment  = 1013904223
)

// Stream is a deterministic random stream. Two Streams built from the same
// seed produce identical sequences under identical call patterns.
type Stream struct {
	state uint32
}

// New returns a Stream seeded with the low 32 bits of seed.
func New(seed int64) *Stream {
	return &Stream{state: uint32(seed)}
}

// Uint32 advances the stream and returns the raw generator state.
func (s *Stream) Uint32() uint32 {
	s.state = s.state*multiplier + increment // wraps mod 2^32
	return s.state
}

// Float64 advances the stream and returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.Uint32()) / (1 << 32)
}

// Range returns a value in [lo, hi).
func (s *Stream) Range(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Intn returns an integer in [0, n). n <= 0 returns 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Float64() * float64(n))
}

// IntRange returns an integer in [lo, hi] inclusive.
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}

// Chance returns true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.Float64() < p
}
