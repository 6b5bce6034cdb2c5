package testutil

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ScriptedRandom replays fixed fractions in [0,1). Each call consumes the
// next fraction and scales it to the requested range; once the script runs
// out the last fraction repeats. Gaussian returns the fraction shifted to be
// centred on zero.
type ScriptedRandom struct {
	fractions []float64
	next      int
	Calls     int
}

// NewScriptedRandom returns a source replaying fractions. With no fractions
// it always answers 0.
func NewScriptedRandom(fractions ...float64) *ScriptedRandom {
	return &ScriptedRandom{fractions: fractions}
}

func (s *ScriptedRandom) fraction() float64 {
	s.Calls++
	if len(s.fractions) == 0 {
		return 0
	}
	f := s.fractions[min(s.next, len(s.fractions)-1)]
	if s.next < len(s.fractions) {
		s.next++
	}
	return f
}

func (s *ScriptedRandom) Double(lo, hi float64) float64 {
	return lo + s.fraction()*(hi-lo)
}

func (s *ScriptedRandom) Uint(lo, hi int) int {
	if hi <= lo {
		s.fraction()
		return lo
	}
	v := lo + int(s.fraction()*float64(hi-lo+1))
	return min(v, hi)
}

func (s *ScriptedRandom) Gaussian() float64 {
	return s.fraction() - 0.5
}
