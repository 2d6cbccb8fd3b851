package econ

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// Source is the randomness injected into the engine.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntRange returns a uniform integer in [min, max].
	IntRange(min, max int) int
}

// pcgSource is the production Source.
type pcgSource struct {
	rng *rand.Rand
}

// NewSource returns a PCG-backed Source. Seed 0 seeds from the clock.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Non-cryptographic PRNG is intentional for reproducible simulation.
	// #nosec G404
	return &pcgSource{rng: rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))}
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

func (s *pcgSource) Float64() float64 {
	return s.rng.Float64()
}

func (s *pcgSource) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min+1)
}

// Sequence is a Source replaying fixed draws, for tests and replays.
// Draws cycle when exhausted; an empty queue always draws 0. Integer draws
// are clamped into the requested range.
type Sequence struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

// Float64 returns the next scripted float.
func (s *Sequence) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

// IntRange returns the next scripted int clamped to [min, max].
func (s *Sequence) IntRange(min, max int) int {
	v := 0
	if len(s.Ints) > 0 {
		v = s.Ints[s.ii%len(s.Ints)]
		s.ii++
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
