package problemgen

import (
	"math/rand/v2"
	"time"
)

// RandomSource yields uniform integers in [0, n). n must be positive.
type RandomSource interface {
	IntN(n int) int
}

// NewSource returns a PCG-backed source. A zero seed is replaced by the
// current time, so only non-zero seeds are reproducible.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed))
}
