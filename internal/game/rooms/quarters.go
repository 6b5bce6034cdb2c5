package rooms

import "github.com/mitchelldurbincs/CreatureSim/internal/game/core"

type bed struct {
	home      core.Coordinate
	footprint []core.Coordinate
}

// Quarters hands out bed placements. A bed occupies a rectangle of tiles and
// belongs to one creature until released.
type Quarters struct {
	base
	beds     map[int]bed
	occupied map[core.Coordinate]int
}

// LocationForBed returns the first tile where a dimX x dimY bed fits on free
// tiles of this room, or nil.
func (q *Quarters) LocationForBed(dimX, dimY int) *core.Tile {
	for _, t := range q.tiles {
		if q.footprint(t, dimX, dimY) != nil {
			return t
		}
	}
	return nil
}

// ClaimTileForSleeping places a bed for creatureID with its corner on t,
// trying both orientations. A creature holds at most one bed.
func (q *Quarters) ClaimTileForSleeping(t *core.Tile, creatureID, dimX, dimY int) bool {
	if _, ok := q.beds[creatureID]; ok || !q.Covers(t) {
		return false
	}
	fp := q.footprint(t, dimX, dimY)
	if fp == nil {
		fp = q.footprint(t, dimY, dimX)
	}
	if fp == nil {
		return false
	}
	for _, c := range fp {
		q.occupied[c] = creatureID
	}
	q.beds[creatureID] = bed{home: t.Coordinate(), footprint: fp}
	return true
}

// ReleaseBed frees creatureID's bed, if any.
func (q *Quarters) ReleaseBed(creatureID int) {
	b, ok := q.beds[creatureID]
	if !ok {
		return
	}
	for _, c := range b.footprint {
		delete(q.occupied, c)
	}
	delete(q.beds, creatureID)
}

// BedOf returns the home tile of creatureID's bed.
func (q *Quarters) BedOf(creatureID int) (core.Coordinate, bool) {
	b, ok := q.beds[creatureID]
	return b.home, ok
}

// SleeperAt returns the creature whose bed covers t.
func (q *Quarters) SleeperAt(t *core.Tile) (int, bool) {
	id, ok := q.occupied[t.Coordinate()]
	return id, ok
}

func (q *Quarters) footprint(t *core.Tile, dimX, dimY int) []core.Coordinate {
	dimX, dimY = max(dimX, 1), max(dimY, 1)
	fp := make([]core.Coordinate, 0, dimX*dimY)
	for dy := 0; dy < dimY; dy++ {
		for dx := 0; dx < dimX; dx++ {
			c := core.Coordinate{X: t.X + dx, Y: t.Y + dy}
			if !q.coversXY(c.X, c.Y) {
				return nil
			}
			if _, taken := q.occupied[c]; taken {
				return nil
			}
			fp = append(fp, c)
		}
	}
	return fp
}
