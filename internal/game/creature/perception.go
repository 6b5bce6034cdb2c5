package creature

import (
	"sort"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
)

// updatePerception refreshes what c can see, which of it is reachable and
// which enemies are within weapon range.
func (p *Planner) updatePerception(c *Creature) {
	tile := p.tileOf(c)
	pass := c.Pass()

	c.visibleTiles = p.space.VisibleTiles(tile.X, tile.Y, c.Def.SightRadius)
	c.markedTiles = c.markedTiles[:0]
	c.visibleEnemies = c.visibleEnemies[:0]
	c.visibleAllies = c.visibleAllies[:0]

	for _, t := range c.visibleTiles {
		if t.IsMarkedBy(c.Owner) && p.hasReachableSide(tile, t, pass) {
			c.markedTiles = append(c.markedTiles, t)
		}
		for _, id := range t.Occupants() {
			if id == c.ID {
				continue
			}
			other, ok := p.world.Creature(id)
			if !ok || !other.OnMap {
				continue
			}
			if other.Owner == c.Owner {
				c.visibleAllies = append(c.visibleAllies, other)
			} else {
				c.visibleEnemies = append(c.visibleEnemies, other)
			}
		}
	}

	c.reachableEnemies = p.reachable(c.reachableEnemies[:0], tile, c.visibleEnemies, pass)
	c.reachableAllies = p.reachable(c.reachableAllies[:0], tile, c.visibleAllies, pass)

	here := c.Coordinate()
	r := c.MaxRange()
	r2 := r * r
	c.enemiesInRange = c.enemiesInRange[:0]
	c.livingEnemiesInRange = c.livingEnemiesInRange[:0]
	for _, e := range c.visibleEnemies {
		if float64(here.DistanceSquared(e.Coordinate())) < r2 {
			c.enemiesInRange = append(c.enemiesInRange, e)
		}
	}
	sort.SliceStable(c.enemiesInRange, func(i, j int) bool {
		di := here.DistanceSquared(c.enemiesInRange[i].Coordinate())
		dj := here.DistanceSquared(c.enemiesInRange[j].Coordinate())
		if di != dj {
			return di < dj
		}
		return c.enemiesInRange[i].ID < c.enemiesInRange[j].ID
	})
	for _, e := range c.enemiesInRange {
		if e.Alive() {
			c.livingEnemiesInRange = append(c.livingEnemiesInRange, e)
		}
	}
}

func (p *Planner) reachable(dst []*Creature, from *core.Tile, others []*Creature, pass core.Passability) []*Creature {
	for _, o := range others {
		if p.paths.PathExists(from, p.tileOf(o), pass) {
			dst = append(dst, o)
		}
	}
	return dst
}

// hasReachableSide reports whether some neighbour of target can be reached
// from `from`, so a creature could stand next to it and work on it.
func (p *Planner) hasReachableSide(from, target *core.Tile, pass core.Passability) bool {
	for _, n := range target.Neighbors() {
		if p.paths.PathExists(from, n, pass) {
			return true
		}
	}
	return false
}
