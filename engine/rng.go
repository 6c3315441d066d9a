package engine

import "math/rand"

// RNG is the engine's deterministic randomness source. One seeded RNG
// feeds both rare-outcome draws and script dice, so a seed reproduces a
// whole session.
type RNG struct {
	src *rand.Rand
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(seed))}
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	return r.src.Intn(sides) + 1
}

// Chance returns a random integer in [0, 100), the draw used against
// rare-outcome percentages.
func (r *RNG) Chance() int {
	return r.src.Intn(100)
}
