package pathfind

import (
	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
)

// components labels the connected regions of a grid for one passability
// class. Label 0 means the tile is not passable for that class.
type components struct {
	version uint64
	labels  []int32
}

// Pathfinder plans routes over a grid. Reachability answers come from a
// connected-component labelling per passability class, rebuilt lazily when
// the grid's version moves.
type Pathfinder struct {
	grid  *core.Grid
	cache map[core.Passability]*components
}

func New(grid *core.Grid) *Pathfinder {
	return &Pathfinder{grid: grid, cache: make(map[core.Passability]*components)}
}

// PathExists reports whether Path(a, b, pass) would be non-empty.
func (p *Pathfinder) PathExists(a, b *core.Tile, pass core.Passability) bool {
	if a == nil || b == nil || !pass.Allows(a) || !pass.Allows(b) {
		return false
	}
	if a == b {
		return true
	}
	labels := p.labelsFor(pass)
	return labels[p.grid.IndexOf(a)] == labels[p.grid.IndexOf(b)]
}

func (p *Pathfinder) labelsFor(pass core.Passability) []int32 {
	c, ok := p.cache[pass]
	if ok && c.version == p.grid.Version() {
		return c.labels
	}
	if !ok {
		c = &components{}
		p.cache[pass] = c
	}
	c.labels = p.label(pass, c.labels)
	c.version = p.grid.Version()
	return c.labels
}

func (p *Pathfinder) label(pass core.Passability, labels []int32) []int32 {
	g := p.grid
	if cap(labels) < len(g.T) {
		labels = make([]int32, len(g.T))
	} else {
		labels = labels[:len(g.T)]
		for i := range labels {
			labels[i] = 0
		}
	}

	var next int32
	stack := make([]int, 0, 64)
	for i := range g.T {
		if labels[i] != 0 || !pass.Allows(&g.T[i]) {
			continue
		}
		next++
		labels[i] = next
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, n := range g.T[cur].Neighbors() {
				nIdx := g.IndexOf(n)
				if labels[nIdx] != 0 || !pass.Allows(n) {
					continue
				}
				labels[nIdx] = next
				stack = append(stack, nIdx)
			}
		}
	}
	return labels
}

// CutCorners drops a waypoint b sitting between a and c when a and c are
// diagonal neighbours and both tiles flanking the diagonal are passable. The
// endpoints never change and the result is never longer than the input.
func (p *Pathfinder) CutCorners(path []*core.Tile, pass core.Passability) []*core.Tile {
	if len(path) < 3 {
		return append([]*core.Tile(nil), path...)
	}

	out := make([]*core.Tile, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		a := out[len(out)-1]
		c := path[i+1]
		if a.Coordinate().IsDiagonalTo(c.Coordinate()) &&
			pass.Allows(p.grid.Tile(a.X, c.Y)) &&
			pass.Allows(p.grid.Tile(c.X, a.Y)) {
			continue
		}
		out = append(out, path[i])
	}
	return append(out, path[len(path)-1])
}
