package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinate_FromIndex(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		width    int
		expected Coordinate
	}{
		{"TopLeft", 0, 10, Coordinate{0, 0}},
		{"TopRight", 9, 10, Coordinate{9, 0}},
		{"SecondRow", 10, 10, Coordinate{0, 1}},
		{"SmallGrid", 7, 4, Coordinate{3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromIndex(tt.index, tt.width))
		})
	}
}

func TestCoordinate_Distances(t *testing.T) {
	a := NewCoordinate(1, 1)
	b := NewCoordinate(4, 5)

	assert.Equal(t, 7, a.Manhattan(b))
	assert.Equal(t, 25, a.DistanceSquared(b))
	assert.Equal(t, a.DistanceSquared(b), b.DistanceSquared(a))
}

func TestCoordinate_Adjacency(t *testing.T) {
	c := NewCoordinate(2, 2)

	tests := []struct {
		name     string
		other    Coordinate
		adjacent bool
		diagonal bool
	}{
		{"North", Coordinate{2, 1}, true, false},
		{"East", Coordinate{3, 2}, true, false},
		{"Diagonal", Coordinate{3, 3}, false, true},
		{"Self", Coordinate{2, 2}, false, false},
		{"TwoAway", Coordinate{4, 2}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.adjacent, c.IsAdjacentTo(tt.other))
			assert.Equal(t, tt.diagonal, c.IsDiagonalTo(tt.other))
		})
	}
}

func TestCoordinate_ValidNeighbors(t *testing.T) {
	corner := NewCoordinate(0, 0).ValidNeighbors(3, 3)
	assert.ElementsMatch(t, []Coordinate{{1, 0}, {0, 1}}, corner)

	center := NewCoordinate(1, 1).ValidNeighbors(3, 3)
	assert.Len(t, center, 4)
	assert.Equal(t, Coordinate{1, 0}, center[0], "north comes first")
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "(3,-1)", NewCoordinate(3, -1).String())
}
