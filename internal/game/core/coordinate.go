package core

import "fmt"

// Coordinate is an integer tile position. It doubles as a stable handle to a
// tile because tiles never move.
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a grid index using row-major ordering
func FromIndex(idx, width int) Coordinate {
	return Coordinate{X: idx % width, Y: idx / width}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// Manhattan returns |dx| + |dy|.
func (c Coordinate) Manhattan(other Coordinate) int {
	return absInt(c.X-other.X) + absInt(c.Y-other.Y)
}

// DistanceSquared returns dx^2 + dy^2.
func (c Coordinate) DistanceSquared(other Coordinate) int {
	dx, dy := c.X-other.X, c.Y-other.Y
	return dx*dx + dy*dy
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	dx, dy := absInt(c.X-other.X), absInt(c.Y-other.Y)
	return dx+dy == 1
}

// IsDiagonalTo checks if other is one step away on both axes.
func (c Coordinate) IsDiagonalTo(other Coordinate) bool {
	return absInt(c.X-other.X) == 1 && absInt(c.Y-other.Y) == 1
}

// Neighbors returns the four orthogonal neighbors of this coordinate
func (c Coordinate) Neighbors() [4]Coordinate {
	return [4]Coordinate{
		{X: c.X, Y: c.Y - 1}, // North
		{X: c.X + 1, Y: c.Y}, // East
		{X: c.X, Y: c.Y + 1}, // South
		{X: c.X - 1, Y: c.Y}, // West
	}
}

// ValidNeighbors returns only the neighbors that are within the given bounds
func (c Coordinate) ValidNeighbors(width, height int) []Coordinate {
	valid := make([]Coordinate, 0, 4)
	for _, n := range c.Neighbors() {
		if n.IsValid(width, height) {
			valid = append(valid, n)
		}
	}
	return valid
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
