package game

import (
	"math"
	"math/rand/v2"

	"lukechampine.com/frand"
)

// NewSource returns a deterministic source for measurements. Two ensembles
// built with the same seed measure identically.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// seededSource draws a fresh seed from the system CSPRNG and returns it with its source.
func seededSource() (uint64, rand.Source) {
	seed := frand.Uint64n(math.MaxUint64)
	return seed, NewSource(seed)
}
