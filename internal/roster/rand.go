package roster

import "math/rand/v2"

// Rand supplies the randomness used for candidate selection. *rand.Rand from
// math/rand/v2 satisfies the interface, which lets tests inject a seeded
// source for deterministic assignment.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type systemRand struct{}

func (systemRand) IntN(n int) int { return rand.IntN(n) }

func (systemRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// SystemRand returns a Rand backed by the shared math/rand/v2 generator.
func SystemRand() Rand { return systemRand{} }
