package creature

import (
	"math"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
)

// setWalkPath replaces the walk queue with path minus its starting tile. It
// refuses paths shorter than minLen.
func (p *Planner) setWalkPath(c *Creature, path []*core.Tile, minLen int) bool {
	if len(path) < minLen || len(path) < 2 {
		return false
	}
	c.clearDestinations()
	for _, t := range path[1:] {
		c.addDestination(t.Coordinate())
	}
	p.setAnimation(c, AnimWalk, true)
	return true
}

// walkToPath sets the walk queue from path and pushes WalkToTile. It reports
// false, leaving the stack alone, when the path is too short to walk.
func (p *Planner) walkToPath(c *Creature, path []*core.Tile) bool {
	path = p.paths.CutCorners(path, c.Pass())
	if !p.setWalkPath(c, path, 2) {
		return false
	}
	p.push(c, WalkTo(path[len(path)-1].Coordinate()))
	return true
}

// advanceWalk moves c toward the centres of its queued destinations, up to
// MoveSpeed tiles this tick.
func (p *Planner) advanceWalk(c *Creature) {
	if len(c.walkQueue) == 0 {
		return
	}
	budget := c.MoveSpeed
	for budget > 1e-9 && len(c.walkQueue) > 0 {
		dest := c.walkQueue[0]
		tx, ty := float64(dest.X)+0.5, float64(dest.Y)+0.5
		dx, dy := tx-c.X, ty-c.Y
		d := math.Hypot(dx, dy)
		if d <= budget {
			p.setPosition(c, tx, ty)
			budget -= d
			c.walkQueue = c.walkQueue[1:]
			continue
		}
		p.setPosition(c, c.X+dx/d*budget, c.Y+dy/d*budget)
		budget = 0
	}
	p.publishMove(c)
	if len(c.walkQueue) == 0 {
		p.setAnimation(c, AnimIdle, true)
	}
}

// setPosition moves c and keeps tile occupancy in step.
func (p *Planner) setPosition(c *Creature, x, y float64) {
	before := p.tileOf(c)
	c.X, c.Y = x, y
	after := p.tileOf(c)
	if before == after {
		return
	}
	if before != nil {
		before.RemoveOccupant(c.ID)
	}
	if after != nil {
		after.AddOccupant(c.ID)
	}
}

// Place puts c on the grid at the centre of (x, y).
func (p *Planner) Place(c *Creature, x, y int) bool {
	t := p.grid.Tile(x, y)
	if t == nil {
		return false
	}
	if old := p.tileOf(c); old != nil && c.OnMap {
		old.RemoveOccupant(c.ID)
	}
	c.X, c.Y = float64(x)+0.5, float64(y)+0.5
	t.AddOccupant(c.ID)
	c.OnMap = true
	p.publishMove(c)
	return true
}

// Remove takes c off the grid and drops its walk queue.
func (p *Planner) Remove(c *Creature) {
	if t := p.tileOf(c); t != nil {
		t.RemoveOccupant(c.ID)
	}
	c.OnMap = false
	c.clearDestinations()
}
