package common

import "math/rand"

// Random is the source of every probabilistic decision in the simulation.
// Implementations must be deterministic for a given seed.
type Random interface {
	// Double returns a value uniformly distributed in [min, max).
	Double(min, max float64) float64
	// Uint returns an integer uniformly distributed in [min, max].
	Uint(min, max int) int
	// Gaussian returns a standard normal value.
	Gaussian() float64
}

// RandSource adapts *rand.Rand to Random.
type RandSource struct {
	rng *rand.Rand
}

// NewRandom wraps rng. A nil rng gets a fixed seed so runs stay reproducible.
func NewRandom(rng *rand.Rand) *RandSource {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &RandSource{rng: rng}
}

func (r *RandSource) Double(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.rng.Float64()*(max-min)
}

func (r *RandSource) Uint(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}

func (r *RandSource) Gaussian() float64 {
	return r.rng.NormFloat64()
}
