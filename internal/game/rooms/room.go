package rooms

import (
	"github.com/mitchelldurbincs/CreatureSim/internal/common"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/zyedidia/generic/mapset"
)

// Kind is the function of a room.
type Kind int

const (
	KindTreasury Kind = iota
	KindQuarters
	KindTrainingRoom
)

func (k Kind) String() string {
	switch k {
	case KindTreasury:
		return "treasury"
	case KindQuarters:
		return "quarters"
	case KindTrainingRoom:
		return "training_room"
	default:
		return "unknown"
	}
}

// Room is the behaviour shared by every room kind.
type Room interface {
	ID() int
	Kind() Kind
	Owner() int
	Tiles() []*core.Tile
	Covers(t *core.Tile) bool
	RandomTile(rnd common.Random) *core.Tile
}

type base struct {
	id      int
	kind    Kind
	owner   int
	tiles   []*core.Tile
	members mapset.Set[core.Coordinate]
}

func newBase(id int, kind Kind, owner int, tiles []*core.Tile) base {
	members := mapset.New[core.Coordinate]()
	for _, t := range tiles {
		members.Put(t.Coordinate())
	}
	return base{id: id, kind: kind, owner: owner, tiles: tiles, members: members}
}

func (b *base) ID() int             { return b.id }
func (b *base) Kind() Kind          { return b.kind }
func (b *base) Owner() int          { return b.owner }
func (b *base) Tiles() []*core.Tile { return b.tiles }

func (b *base) Covers(t *core.Tile) bool {
	return t != nil && b.members.Has(t.Coordinate())
}

func (b *base) coversXY(x, y int) bool {
	return b.members.Has(core.Coordinate{X: x, Y: y})
}

// RandomTile picks one of the covered tiles uniformly.
func (b *base) RandomTile(rnd common.Random) *core.Tile {
	return b.tiles[rnd.Uint(0, len(b.tiles)-1)]
}

// Reachable filters rooms to those with at least one covered tile reachable
// from `from` for the given passability class.
func Reachable[R Room](rooms []R, from *core.Tile, pass core.Passability, paths PathChecker) []R {
	var out []R
	for _, r := range rooms {
		for _, t := range r.Tiles() {
			if paths.PathExists(from, t, pass) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// PathChecker answers reachability questions.
type PathChecker interface {
	PathExists(a, b *core.Tile, pass core.Passability) bool
}
