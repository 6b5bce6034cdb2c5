package pathfind

import (
	"testing"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertContiguous(t *testing.T, path []*core.Tile, pass core.Passability) {
	t.Helper()
	for i, tile := range path {
		assert.True(t, pass.Allows(tile), "step %d %v is not passable", i, tile.Coordinate())
		if i > 0 {
			assert.True(t, path[i-1].Coordinate().IsAdjacentTo(tile.Coordinate()),
				"steps %v -> %v are not adjacent", path[i-1].Coordinate(), tile.Coordinate())
		}
	}
}

func TestPath_Straight(t *testing.T) {
	g := testutil.GridFromASCII(
		".....",
	)
	p := New(g)

	path := p.Path(g.Tile(0, 0), g.Tile(4, 0), core.PassGround)
	require.Len(t, path, 5)
	assert.Equal(t, g.Tile(0, 0), path[0])
	assert.Equal(t, g.Tile(4, 0), path[4])
	assertContiguous(t, path, core.PassGround)
}

func TestPath_AroundWall(t *testing.T) {
	g := testutil.GridFromASCII(
		".....",
		".###.",
		".#.#.",
		".....",
	)
	p := New(g)

	path := p.Path(g.Tile(0, 0), g.Tile(2, 2), core.PassGround)
	require.NotEmpty(t, path)
	assert.Len(t, path, 7, "shortest route goes round the left and bottom")
	assertContiguous(t, path, core.PassGround)
}

func TestPath_Unreachable(t *testing.T) {
	g := testutil.GridFromASCII(
		"..#..",
		"..#..",
	)
	p := New(g)

	a, b := g.Tile(0, 0), g.Tile(4, 1)
	assert.Empty(t, p.Path(a, b, core.PassGround))
	assert.False(t, p.PathExists(a, b, core.PassGround))
}

func TestPath_ImpassableEndpoints(t *testing.T) {
	g := testutil.GridFromASCII(
		".#.",
	)
	p := New(g)

	assert.Empty(t, p.Path(g.Tile(0, 0), g.Tile(1, 0), core.PassGround))
	assert.Empty(t, p.Path(g.Tile(1, 0), g.Tile(2, 0), core.PassGround))
	assert.Empty(t, p.PathXY(0, 0, 7, 0, core.PassGround))
	assert.Empty(t, p.Path(nil, g.Tile(0, 0), core.PassGround))
}

func TestPath_SameTile(t *testing.T) {
	g := testutil.GridFromASCII("..")
	p := New(g)

	path := p.Path(g.Tile(1, 0), g.Tile(1, 0), core.PassGround)
	assert.Equal(t, []*core.Tile{g.Tile(1, 0)}, path)
	assert.True(t, p.PathExists(g.Tile(1, 0), g.Tile(1, 0), core.PassGround))
}

func TestPath_PassabilityClasses(t *testing.T) {
	g := testutil.GridFromASCII(
		"..~~..",
	)
	p := New(g)

	a, b := g.Tile(0, 0), g.Tile(5, 0)
	assert.False(t, p.PathExists(a, b, core.PassGround))
	assert.True(t, p.PathExists(a, b, core.PassFlying))
	assert.Len(t, p.Path(a, b, core.PassFlying), 6)
}

func TestPath_Deterministic(t *testing.T) {
	g := testutil.GridFromASCII(
		"......",
		"......",
		"......",
		"......",
	)
	p := New(g)

	first := p.PathXY(0, 0, 5, 3, core.PassGround)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.PathXY(0, 0, 5, 3, core.PassGround))
	}
}

func TestPathExists_MatchesPath(t *testing.T) {
	g := testutil.GridFromASCII(
		"..#...",
		"..#.#.",
		"....#.",
		"##.R#.",
	)
	p := New(g)

	for i := range g.T {
		for j := range g.T {
			a, b := &g.T[i], &g.T[j]
			exists := p.PathExists(a, b, core.PassGround)
			path := p.Path(a, b, core.PassGround)
			assert.Equal(t, exists, len(path) > 0, "%v -> %v", a.Coordinate(), b.Coordinate())
		}
	}
}

func TestPathExists_TracksGridChanges(t *testing.T) {
	g := testutil.GridFromASCII(
		".#.",
	)
	p := New(g)
	a, b := g.Tile(0, 0), g.Tile(2, 0)

	require.False(t, p.PathExists(a, b, core.PassGround))

	g.Tile(1, 0).DigOut(1)
	assert.True(t, p.PathExists(a, b, core.PassGround))
	assert.Len(t, p.Path(a, b, core.PassGround), 3)
}

func TestCutCorners(t *testing.T) {
	g := testutil.GridFromASCII(
		"...",
		"...",
		"...",
	)
	p := New(g)

	path := []*core.Tile{g.Tile(0, 0), g.Tile(1, 0), g.Tile(1, 1), g.Tile(2, 1), g.Tile(2, 2)}
	cut := p.CutCorners(path, core.PassGround)

	assert.Less(t, len(cut), len(path))
	assert.Equal(t, path[0], cut[0])
	assert.Equal(t, path[len(path)-1], cut[len(cut)-1])
}

func TestCutCorners_KeepsCornersNextToWalls(t *testing.T) {
	g := testutil.GridFromASCII(
		"..",
		"#.",
	)
	p := New(g)

	path := []*core.Tile{g.Tile(0, 0), g.Tile(1, 0), g.Tile(1, 1)}
	assert.Equal(t, path, p.CutCorners(path, core.PassGround))
}

func TestCutCorners_ShortPaths(t *testing.T) {
	g := testutil.GridFromASCII("..")
	p := New(g)

	assert.Empty(t, p.CutCorners(nil, core.PassGround))
	two := []*core.Tile{g.Tile(0, 0), g.Tile(1, 0)}
	assert.Equal(t, two, p.CutCorners(two, core.PassGround))
}
