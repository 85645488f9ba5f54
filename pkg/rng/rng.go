package rng

import (
	"math/rand/v2"
	"time"
)

// Source is the only source of randomness used while building a game.
// *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// New returns a deterministic source for the given seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandom returns a source seeded from the current time.
func NewRandom() *rand.Rand {
	return New(uint64(time.Now().UnixNano()))
}
