package common

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandSource_Ranges(t *testing.T) {
	r := NewRandom(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		d := r.Double(-2, 3)
		assert.GreaterOrEqual(t, d, -2.0)
		assert.Less(t, d, 3.0)

		u := r.Uint(3, 8)
		assert.GreaterOrEqual(t, u, 3)
		assert.LessOrEqual(t, u, 8)
	}
}

func TestRandSource_DegenerateRanges(t *testing.T) {
	r := NewRandom(nil)

	assert.Equal(t, 0.5, r.Double(0.5, 0.5))
	assert.Equal(t, 4, r.Uint(4, 4))
	assert.Equal(t, 9, r.Uint(9, 2))
}

func TestRandSource_Deterministic(t *testing.T) {
	a := NewRandom(rand.New(rand.NewSource(7)))
	b := NewRandom(rand.New(rand.NewSource(7)))

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Double(0, 1), b.Double(0, 1))
		assert.Equal(t, a.Gaussian(), b.Gaussian())
	}
}
