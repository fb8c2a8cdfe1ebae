// Package randutil supplies the per-worker random stream the simulator
// draws from: a seeded linear congruential generator for reproducible runs,
// and a nondeterministic stream backed by math/rand/v2 otherwise. Both
// share the same concrete Stream type — deliberately not an interface or a
// closure — so the per-draw call on the simulator's hot path is a direct
// method call the compiler can inline, not a dynamic dispatch.
package randutil

import "math/rand/v2"

// lcgMultiplier and lcgIncrement define the seeded stream's recurrence:
// s <- s*multiplier + increment (mod 2^64), output (s>>32)/2^32. This exact
// recurrence is required for bitwise-reproducible simulation runs; it must
// not be swapped for a "better" generator.
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// workerSeedStride is added to the base seed once per worker index so that
// concurrent workers draw from independent, non-overlapping seeded streams
// derived deterministically from a single simulation seed.
const workerSeedStride = 1_000_000_000

// Stream is a single-worker random source. The zero value is not usable;
// construct one with Seeded or NonDeterministic.
type Stream struct {
	seeded bool
	state  uint64
	src    *rand.Rand
}

// Seeded returns a deterministic Stream for the given worker, derived from
// seed by adding workerIdx*1e9 before the first draw. Two Streams built
// from the same (seed, workerIdx) always produce identical sequences.
func Seeded(seed int64, workerIdx int) Stream {
	s := uint64(seed) + uint64(workerIdx)*workerSeedStride
	return Stream{seeded: true, state: s}
}

// NonDeterministic returns a Stream backed by a fresh, unseeded math/rand/v2
// generator. Each worker gets its own independent stream; no two calls
// return a Stream sharing state.
func NonDeterministic() Stream {
	return Stream{seeded: false, src: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Next returns a uniform float64 in [0,1).
func (s *Stream) Next() float64 {
	if s.seeded {
		s.state = s.state*lcgMultiplier + lcgIncrement
		return float64(s.state>>32) / float64(uint64(1)<<32)
	}
	return s.src.Float64()
}
