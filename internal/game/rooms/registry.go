package rooms

import (
	"fmt"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/zyedidia/generic/mapset"
)

// Registry owns every room on a grid. Room ids index into it.
type Registry struct {
	grid  *core.Grid
	rooms []Room
}

func NewRegistry(grid *core.Grid) *Registry {
	return &Registry{grid: grid}
}

// Add builds a room of the given kind over tiles and stamps the tiles with
// its id.
func (r *Registry) Add(kind Kind, owner int, tiles []*core.Tile) (Room, error) {
	if len(tiles) == 0 {
		return nil, ErrNoTiles
	}
	for _, t := range tiles {
		if t.Room != core.NoRoom {
			return nil, fmt.Errorf("%w: %v", ErrTileInRoom, t.Coordinate())
		}
	}

	id := len(r.rooms)
	b := newBase(id, kind, owner, tiles)
	var room Room
	switch kind {
	case KindTreasury:
		room = &Treasury{base: b, capacityPerTile: TreasuryCapacityPerTile, gold: make(map[core.Coordinate]int)}
	case KindQuarters:
		room = &Quarters{base: b, beds: make(map[int]bed), occupied: make(map[core.Coordinate]int)}
	case KindTrainingRoom:
		room = &TrainingRoom{base: b, users: mapset.New[int](), maxUsers: max(1, len(tiles)/TilesPerTrainee)}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}

	for _, t := range tiles {
		t.Room = id
	}
	r.rooms = append(r.rooms, room)
	return room, nil
}

// Get returns the room with the given id.
func (r *Registry) Get(id int) (Room, bool) {
	if id < 0 || id >= len(r.rooms) {
		return nil, false
	}
	return r.rooms[id], true
}

// RoomAt returns the room covering t.
func (r *Registry) RoomAt(t *core.Tile) (Room, bool) {
	if t == nil {
		return nil, false
	}
	return r.Get(t.Room)
}

// ByKind lists the rooms of one kind owned by owner, in creation order.
func (r *Registry) ByKind(kind Kind, owner int) []Room {
	var out []Room
	for _, room := range r.rooms {
		if room.Kind() == kind && room.Owner() == owner {
			out = append(out, room)
		}
	}
	return out
}

func (r *Registry) Treasuries(owner int) []*Treasury {
	return collect[*Treasury](r.rooms, owner)
}

func (r *Registry) Quarters(owner int) []*Quarters {
	return collect[*Quarters](r.rooms, owner)
}

func (r *Registry) TrainingRooms(owner int) []*TrainingRoom {
	return collect[*TrainingRoom](r.rooms, owner)
}

// Release drops every reservation creatureID holds in any room.
func (r *Registry) Release(creatureID int) {
	for _, room := range r.rooms {
		switch v := room.(type) {
		case *Quarters:
			v.ReleaseBed(creatureID)
		case *TrainingRoom:
			v.RemoveUser(creatureID)
		}
	}
}

func (r *Registry) Len() int { return len(r.rooms) }

func collect[R Room](rooms []Room, owner int) []R {
	var out []R
	for _, room := range rooms {
		if v, ok := room.(R); ok && room.Owner() == owner {
			out = append(out, v)
		}
	}
	return out
}
