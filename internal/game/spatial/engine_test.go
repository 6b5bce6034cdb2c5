package spatial

import (
	"math"
	"testing"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coords(tiles []*core.Tile) []core.Coordinate {
	out := make([]core.Coordinate, len(tiles))
	for i, t := range tiles {
		out[i] = t.Coordinate()
	}
	return out
}

func TestEngine_RectangularRegion(t *testing.T) {
	e := NewEngine(core.NewGrid(5, 5))

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		expected       int
	}{
		{"Inside", 1, 1, 2, 3, 6},
		{"SwappedCorners", 2, 3, 1, 1, 6},
		{"SingleTile", 4, 4, 4, 4, 1},
		{"ClippedAtEdge", -2, -2, 1, 1, 4},
		{"FullyOutside", 6, 6, 9, 9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := e.RectangularRegion(tt.x1, tt.y1, tt.x2, tt.y2)
			assert.Len(t, tiles, tt.expected)
		})
	}
}

func TestEngine_CircularRegion(t *testing.T) {
	e := NewEngine(core.NewGrid(9, 9))

	region := e.CircularRegion(4, 4, 2)
	require.Len(t, region, 13)
	assert.Equal(t, core.Coordinate{X: 4, Y: 4}, region[0].Coordinate(), "closest first")
	for _, tile := range region {
		dx, dy := tile.X-4, tile.Y-4
		assert.LessOrEqual(t, dx*dx+dy*dy, 4)
	}

	assert.Len(t, e.CircularRegion(4, 4, 0), 1)
	assert.Len(t, e.CircularRegion(4, 4, -3), 1)
	assert.Empty(t, e.CircularRegion(-1, 4, 3))
	assert.Len(t, e.CircularRegion(0, 0, 1), 3, "clipped at the corner")
}

func TestEngine_CircularRegionGrowsCache(t *testing.T) {
	e := NewEngine(core.NewGrid(60, 60))

	region := e.CircularRegion(30, 30, DefaultCacheRadius+4)
	assert.Equal(t, DefaultCacheRadius+4, e.cache.Radius())
	assert.NotEmpty(t, region)
}

func TestEngine_TilesBorderedByRegion(t *testing.T) {
	e := NewEngine(core.NewGrid(5, 5))

	region := e.RectangularRegion(1, 1, 2, 2)
	border := e.TilesBorderedByRegion(region)

	assert.Len(t, border, 8)
	inside := map[core.Coordinate]bool{}
	for _, tile := range region {
		inside[tile.Coordinate()] = true
	}
	seen := map[core.Coordinate]bool{}
	for _, tile := range border {
		c := tile.Coordinate()
		assert.False(t, inside[c], "border tile %v lies inside the region", c)
		assert.False(t, seen[c], "border tile %v listed twice", c)
		seen[c] = true
	}

	assert.Empty(t, e.TilesBorderedByRegion(nil))
}

func TestEngine_TilesBetween(t *testing.T) {
	e := NewEngine(core.NewGrid(10, 10))

	tests := []struct {
		name     string
		x1, y1   int
		x2, y2   int
		expected []core.Coordinate
	}{
		{"Horizontal", 1, 1, 4, 1, []core.Coordinate{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1}}},
		{"Diagonal", 0, 0, 2, 2, []core.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}},
		{"Reverse", 3, 0, 0, 0, []core.Coordinate{{X: 3, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}},
		{"Point", 5, 5, 5, 5, []core.Coordinate{{X: 5, Y: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coords(e.TilesBetween(tt.x1, tt.y1, tt.x2, tt.y2)))
		})
	}
}

func TestEngine_TilesBetweenSteep(t *testing.T) {
	e := NewEngine(core.NewGrid(10, 10))

	line := e.TilesBetween(1, 0, 3, 7)
	require.NotEmpty(t, line)
	assert.Equal(t, core.Coordinate{X: 1, Y: 0}, line[0].Coordinate())
	assert.Equal(t, core.Coordinate{X: 3, Y: 7}, line[len(line)-1].Coordinate())
	assert.Len(t, line, 8, "one tile per row on a steep line")
}

func TestEngine_TilesBetweenClipsOutOfBounds(t *testing.T) {
	e := NewEngine(core.NewGrid(3, 3))

	line := e.TilesBetween(-2, 1, 2, 1)
	assert.Equal(t, []core.Coordinate{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, coords(line))
}

func TestCrowDistance(t *testing.T) {
	g := core.NewGrid(5, 5)
	assert.InDelta(t, 5.0, CrowDistance(g.Tile(0, 0), g.Tile(3, 4)), 1e-9)
	assert.InDelta(t, math.Sqrt2, CrowDistance(g.Tile(1, 1), g.Tile(2, 2)), 1e-9)
	assert.Equal(t, 0.0, CrowDistance(g.Tile(2, 2), g.Tile(2, 2)))
}
