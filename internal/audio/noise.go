package audio

import (
	"math/rand/v2"
)

// NoiseBuffer returns n samples drawn uniformly from [-1, 1).
func NoiseBuffer(n int, rng *rand.Rand) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}
	return buf
}
