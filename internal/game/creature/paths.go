package creature

import (
	"sort"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/zyedidia/generic/mapset"
)

// openSides collects the distinct passable neighbours of targets.
func openSides(targets []*core.Tile, pass core.Passability) []*core.Tile {
	seen := mapset.New[core.Coordinate]()
	var sides []*core.Tile
	for _, t := range targets {
		for _, n := range t.Neighbors() {
			if !pass.Allows(n) || seen.Has(n.Coordinate()) {
				continue
			}
			seen.Put(n.Coordinate())
			sides = append(sides, n)
		}
	}
	return sides
}

// pickShortPath plans a route from `from` to every goal and returns one of
// the ShortPathCandidates shortest at random, or nil.
func (p *Planner) pickShortPath(c *Creature, from *core.Tile, goals []*core.Tile) []*core.Tile {
	pass := c.Pass()
	var paths [][]*core.Tile
	for _, g := range goals {
		if !p.paths.PathExists(from, g, pass) {
			continue
		}
		if path := p.paths.Path(from, g, pass); len(path) >= 2 {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	sort.SliceStable(paths, func(i, j int) bool { return len(paths[i]) < len(paths[j]) })
	n := min(len(paths), p.tuning.ShortPathCandidates)
	return paths[p.rnd.Uint(0, n-1)]
}
