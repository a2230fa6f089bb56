package embedding

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
)

// PseudoVector derives a deterministic unit-length vector from text, for
// environments without a configured provider. The SHA-256 digest of the text
// (reduced mod 2^32) seeds a PRNG, dims samples are drawn from a Gaussian
// with mean 0 and standard deviation 0.1, and the result is L2-normalized.
// The same text always produces the same vector.
func PseudoVector(text string, dims int) []float32 {
	if dims <= 0 {
		dims = DefaultDimensions
	}

	digest := sha256.Sum256([]byte(text))
	seed := binary.BigEndian.Uint32(digest[len(digest)-4:])
	rng := rand.New(rand.NewSource(int64(seed)))

	samples := make([]float64, dims)
	var sumSquares float64
	for i := range samples {
		samples[i] = rng.NormFloat64() * 0.1
		sumSquares += samples[i] * samples[i]
	}

	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		norm = 1
	}

	vec := make([]float32, dims)
	for i, v := range samples {
		vec[i] = float32(v / norm)
	}
	return vec
}
