package spatial

import (
	"math"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/zyedidia/generic/mapset"
)

// DefaultCacheRadius covers the sight radius of every stock species.
const DefaultCacheRadius = 16

// Engine answers geometric questions over a grid. Nothing it returns is
// occlusion aware: a visible tile is any tile inside the sight circle.
type Engine struct {
	grid  *core.Grid
	cache *DistanceCache
}

func NewEngine(grid *core.Grid) *Engine {
	return &Engine{grid: grid, cache: NewDistanceCache(DefaultCacheRadius)}
}

func (e *Engine) Grid() *core.Grid { return e.grid }

// RectangularRegion returns every in-bounds tile in the inclusive box spanned
// by the two corners, row by row.
func (e *Engine) RectangularRegion(x1, y1, x2, y2 int) []*core.Tile {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	x1, y1 = max(x1, 0), max(y1, 0)
	x2, y2 = min(x2, e.grid.W-1), min(y2, e.grid.H-1)
	if x1 > x2 || y1 > y2 {
		return nil
	}

	tiles := make([]*core.Tile, 0, (x2-x1+1)*(y2-y1+1))
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			tiles = append(tiles, e.grid.Tile(x, y))
		}
	}
	return tiles
}

// CircularRegion returns the in-bounds tiles within radius of (x, y), closest
// first. An out-of-bounds centre yields nothing.
func (e *Engine) CircularRegion(x, y, radius int) []*core.Tile {
	if !e.grid.InBounds(x, y) {
		return nil
	}
	offsets := e.cache.Within(radius)
	tiles := make([]*core.Tile, 0, len(offsets))
	for _, o := range offsets {
		if t := e.grid.Tile(x+o.DX, y+o.DY); t != nil {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// VisibleTiles is what a creature at (x, y) with the given sight radius sees.
func (e *Engine) VisibleTiles(x, y, sightRadius int) []*core.Tile {
	return e.CircularRegion(x, y, sightRadius)
}

// TilesBorderedByRegion returns the tiles adjacent to region but not in it,
// each once, in discovery order.
func (e *Engine) TilesBorderedByRegion(region []*core.Tile) []*core.Tile {
	inside := mapset.New[int]()
	for _, t := range region {
		inside.Put(e.grid.IndexOf(t))
	}

	seen := mapset.New[int]()
	var border []*core.Tile
	for _, t := range region {
		for _, n := range t.Neighbors() {
			idx := e.grid.IndexOf(n)
			if inside.Has(idx) || seen.Has(idx) {
				continue
			}
			seen.Put(idx)
			border = append(border, n)
		}
	}
	return border
}

// TilesBetween walks a Bresenham line from (x1, y1) to (x2, y2), both ends
// included, keeping only in-bounds tiles.
func (e *Engine) TilesBetween(x1, y1, x2, y2 int) []*core.Tile {
	dx := absInt(x2 - x1)
	dy := -absInt(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	var tiles []*core.Tile
	x, y := x1, y1
	err := dx + dy
	for {
		if t := e.grid.Tile(x, y); t != nil {
			tiles = append(tiles, t)
		}
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return tiles
}

// CrowDistance is the straight-line distance between two tiles.
func CrowDistance(a, b *core.Tile) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
