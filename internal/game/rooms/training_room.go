package rooms

import (
	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/zyedidia/generic/mapset"
)

// TilesPerTrainee is how many tiles a training room needs per concurrent user.
const TilesPerTrainee = 3

// TrainingRoom lets a bounded number of creatures train at once.
type TrainingRoom struct {
	base
	users    mapset.Set[int]
	maxUsers int
}

func (r *TrainingRoom) MaxUsers() int  { return r.maxUsers }
func (r *TrainingRoom) OpenSlots() int { return max(r.maxUsers-r.users.Size(), 0) }
func (r *TrainingRoom) HasUser(id int) bool {
	return r.users.Has(id)
}

// AddUser registers id as training here. It fails when the room is full.
func (r *TrainingRoom) AddUser(id int) bool {
	if r.users.Has(id) {
		return true
	}
	if r.OpenSlots() == 0 {
		return false
	}
	r.users.Put(id)
	return true
}

func (r *TrainingRoom) RemoveUser(id int) { r.users.Remove(id) }

// CentralTile is the covered tile nearest the room's centroid.
func (r *TrainingRoom) CentralTile() *core.Tile {
	var sx, sy float64
	for _, t := range r.tiles {
		sx += float64(t.X)
		sy += float64(t.Y)
	}
	n := float64(len(r.tiles))
	cx, cy := sx/n, sy/n

	best := r.tiles[0]
	bestD := -1.0
	for _, t := range r.tiles {
		dx, dy := float64(t.X)-cx, float64(t.Y)-cy
		d := dx*dx + dy*dy
		if bestD < 0 || d < bestD {
			best, bestD = t, d
		}
	}
	return best
}
