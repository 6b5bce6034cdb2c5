package core

// Grid is a fixed W x H array of tiles stored row-major. Tiles are allocated
// once and never move, so *Tile handles stay valid for the grid's lifetime.
type Grid struct {
	W, H int
	T    []Tile // length = W*H (row-major)

	version uint64
}

// NewGrid allocates a solid grid: every tile is full dirt, unclaimed and
// outside any room. Neighbour links are precomputed and symmetric.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{W: w, H: h, T: make([]Tile, w*h)}
	for i := range g.T {
		t := &g.T[i]
		t.X, t.Y = g.XY(i)
		t.Type = TileDirt
		t.Fullness = 1
		t.Owner = Unclaimed
		t.Room = NoRoom
		t.grid = g
	}
	for i := range g.T {
		t := &g.T[i]
		for _, c := range t.Coordinate().ValidNeighbors(w, h) {
			t.neighbors[t.numNeighbors] = &g.T[g.Idx(c.X, c.Y)]
			t.numNeighbors++
		}
	}
	return g
}

func (g *Grid) Idx(x, y int) int      { return y*g.W + x }
func (g *Grid) XY(idx int) (int, int) { return idx % g.W, idx / g.W }

// InBounds checks if coordinates are within grid boundaries
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Tile returns the tile at (x, y), or nil outside the grid.
func (g *Grid) Tile(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.T[g.Idx(x, y)]
}

// TileAt is Tile for a coordinate.
func (g *Grid) TileAt(c Coordinate) *Tile { return g.Tile(c.X, c.Y) }

// IndexOf returns the row-major index of a tile belonging to this grid.
func (g *Grid) IndexOf(t *Tile) int { return g.Idx(t.X, t.Y) }

// Neighbors returns the in-bounds 4-neighbours of t.
func (g *Grid) Neighbors(t *Tile) []*Tile {
	if t == nil {
		return nil
	}
	return t.Neighbors()
}

// Version changes whenever a tile's walkability class changes, so caches
// keyed on it survive claiming and partial digging.
func (g *Grid) Version() uint64 { return g.version }

// Invalidate bumps the version after bulk edits made directly on T.
func (g *Grid) Invalidate() { g.version++ }

// CountClaimed returns the number of fully claimed floor tiles per owner.
func (g *Grid) CountClaimed() map[int]int {
	counts := make(map[int]int)
	for i := range g.T {
		t := &g.T[i]
		if t.Owner != Unclaimed && t.ClaimProgress >= 1 {
			counts[t.Owner]++
		}
	}
	return counts
}
