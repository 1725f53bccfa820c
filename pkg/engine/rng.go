package engine

import (
	"math/rand"
	"time"
)

// Rand is the randomness capability injected into the engine. Separating the
// draws from the resolution keeps every transition reproducible under a
// fixed seed.
type Rand interface {
	// Float64 returns a draw in [0.0, 1.0).
	Float64() float64
	// Intn returns a draw in [0, n).
	Intn(n int) int
}

// NewRand returns a time-seeded source for production use.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededRand returns a deterministic source for tests.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// chance performs one Bernoulli trial with probability p.
func (e *Engine) chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return e.rng.Float64() < p
}

// pick returns a uniformly chosen element of a non-empty list.
func pick[T any](rng Rand, list []T) T {
	return list[rng.Intn(len(list))]
}
