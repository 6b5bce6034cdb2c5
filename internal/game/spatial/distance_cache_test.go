package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceCache_SortedByDistance(t *testing.T) {
	c := NewDistanceCache(5)

	offsets := c.Offsets()
	require.NotEmpty(t, offsets)
	assert.Equal(t, Offset{0, 0, 0}, offsets[0])
	for i := 1; i < len(offsets); i++ {
		assert.LessOrEqual(t, offsets[i-1].D2, offsets[i].D2)
	}
}

func TestDistanceCache_Within(t *testing.T) {
	c := NewDistanceCache(2)

	tests := []struct {
		name     string
		radius   int
		expected int
	}{
		{"Zero", 0, 1},
		{"One", 1, 5},
		{"Two", 2, 13},
		{"Negative", -4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, c.Within(tt.radius), tt.expected)
		})
	}
}

func TestDistanceCache_GrowsMonotonically(t *testing.T) {
	c := NewDistanceCache(1)
	small := append([]Offset(nil), c.Within(1)...)

	c.Ensure(6)
	assert.Equal(t, 6, c.Radius())
	assert.Equal(t, small, c.Within(1), "growing keeps the smaller prefix stable")

	c.Ensure(3)
	assert.Equal(t, 6, c.Radius(), "cache never shrinks")

	assert.Len(t, c.Within(8), len(c.Offsets()))
	assert.Equal(t, 8, c.Radius())
}
