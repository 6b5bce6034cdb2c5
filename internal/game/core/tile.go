package core

// TileType is the material of a tile.
type TileType int

const (
	TileDirt TileType = iota
	TileGold
	TileRock
	TileClaimed
	TileLava
	TileWater
)

const (
	// Unclaimed is the owner of a tile nobody has claimed.
	Unclaimed = -1
	// NoRoom marks a tile that is not covered by a room.
	NoRoom = -1
	// MaxOwners bounds the per-owner dig mark bitfield.
	MaxOwners = 32
)

func (t TileType) String() string {
	switch t {
	case TileDirt:
		return "dirt"
	case TileGold:
		return "gold"
	case TileRock:
		return "rock"
	case TileClaimed:
		return "claimed"
	case TileLava:
		return "lava"
	case TileWater:
		return "water"
	default:
		return "unknown"
	}
}

// TilePassability is the walkability class of a tile.
type TilePassability uint8

const (
	Walkable TilePassability = iota
	Impassable
	Flyable
)

// Tile represents a single cell on the grid.
// Fullness: 1 is solid, 0 is fully dug out.
// ClaimProgress: how far Owner's claim has advanced, in [0,1].
type Tile struct {
	X, Y          int
	Type          TileType
	Fullness      float64
	Owner         int
	ClaimProgress float64
	Room          int

	markedBitfield uint32 // Bit i = 1 if owner i wants this tile dug
	occupants      []int
	neighbors      [4]*Tile
	numNeighbors   int
	grid           *Grid
}

func (t *Tile) Coordinate() Coordinate { return Coordinate{X: t.X, Y: t.Y} }

// Neighbors returns the in-bounds 4-neighbours in N, E, S, W order.
// The returned slice aliases the tile and must not be modified.
func (t *Tile) Neighbors() []*Tile { return t.neighbors[:t.numNeighbors] }

func (t *Tile) IsSolid() bool { return t.Fullness > 0 }

// Passability derives the walkability class from type and fullness.
func (t *Tile) Passability() TilePassability {
	switch {
	case t.Fullness > 0:
		return Impassable
	case t.Type == TileLava, t.Type == TileWater:
		return Flyable
	default:
		return Walkable
	}
}

// IsDiggable reports whether a creature could remove material from the tile.
func (t *Tile) IsDiggable() bool {
	if t.Fullness <= 0 {
		return false
	}
	return t.Type == TileDirt || t.Type == TileGold || t.Type == TileClaimed
}

// IsClaimedBy reports whether owner holds the tile with full progress.
func (t *Tile) IsClaimedBy(owner int) bool {
	return t.Owner == owner && owner != Unclaimed && t.ClaimProgress >= 1
}

// IsGroundClaimable reports whether the tile is open floor that can carry a claim.
func (t *Tile) IsGroundClaimable() bool {
	return t.Fullness == 0 && (t.Type == TileDirt || t.Type == TileClaimed)
}

// IsWallClaimable reports whether owner could claim this wall: a solid dirt or
// claimed wall, not already fully owner's, touching floor that owner has claimed.
func (t *Tile) IsWallClaimable(owner int) bool {
	if t.Fullness <= 0 || (t.Type != TileDirt && t.Type != TileClaimed) {
		return false
	}
	if t.IsClaimedBy(owner) {
		return false
	}
	for _, n := range t.Neighbors() {
		if n.Fullness == 0 && n.IsClaimedBy(owner) {
			return true
		}
	}
	return false
}

// HasClaimedNeighbor reports whether an adjacent open tile is fully claimed by owner.
func (t *Tile) HasClaimedNeighbor(owner int) bool {
	for _, n := range t.Neighbors() {
		if n.Fullness == 0 && n.IsClaimedBy(owner) {
			return true
		}
	}
	return false
}

// DigOut removes up to rate of fullness and returns the amount removed.
// A tile dug down to zero becomes walkable dirt and loses all dig marks.
func (t *Tile) DigOut(rate float64) float64 {
	if rate <= 0 || !t.IsDiggable() {
		return 0
	}
	before := t.Passability()
	amount := rate
	if amount > t.Fullness {
		amount = t.Fullness
	}
	t.Fullness -= amount
	if t.Fullness <= 1e-9 {
		t.Fullness = 0
		t.markedBitfield = 0
		t.Type = TileDirt
		t.Owner = Unclaimed
		t.ClaimProgress = 0
	}
	t.touch(before)
	return amount
}

// ClaimFor advances owner's claim by rate. Progress held by a different owner
// is worn down first; once it crosses zero the tile changes hands and the
// remainder carries over.
func (t *Tile) ClaimFor(owner int, rate float64) {
	if rate <= 0 || owner == Unclaimed {
		return
	}
	before := t.Passability()
	if t.Owner == owner {
		t.ClaimProgress += rate
	} else {
		t.ClaimProgress -= rate
		if t.ClaimProgress > 0 {
			return
		}
		t.Owner = owner
		t.ClaimProgress = -t.ClaimProgress
	}
	if t.ClaimProgress >= 1 {
		t.ClaimProgress = 1
		if t.Type == TileDirt {
			t.Type = TileClaimed
		}
	}
	t.touch(before)
}

// IsMarkedBy reports whether owner has marked the tile for digging.
func (t *Tile) IsMarkedBy(owner int) bool {
	if owner < 0 || owner >= MaxOwners {
		return false
	}
	return t.markedBitfield&(1<<uint(owner)) != 0
}

// SetMarked toggles owner's dig mark. Only diggable tiles accept a mark.
func (t *Tile) SetMarked(owner int, marked bool) bool {
	if owner < 0 || owner >= MaxOwners {
		return false
	}
	if marked {
		if !t.IsDiggable() {
			return false
		}
		t.markedBitfield |= 1 << uint(owner)
	} else {
		t.markedBitfield &^= 1 << uint(owner)
	}
	return true
}

// Occupants returns the ids of creatures standing on the tile. The tile does
// not own them.
func (t *Tile) Occupants() []int { return t.occupants }

func (t *Tile) AddOccupant(id int) {
	for _, o := range t.occupants {
		if o == id {
			return
		}
	}
	t.occupants = append(t.occupants, id)
}

func (t *Tile) RemoveOccupant(id int) bool {
	for i, o := range t.occupants {
		if o == id {
			t.occupants = append(t.occupants[:i], t.occupants[i+1:]...)
			return true
		}
	}
	return false
}

// SetMaterial replaces the tile's type and fullness. Fullness is clamped to [0,1].
func (t *Tile) SetMaterial(typ TileType, fullness float64) {
	before := t.Passability()
	t.Type = typ
	t.Fullness = clamp01(fullness)
	if t.Fullness == 0 {
		t.markedBitfield = 0
	}
	t.touch(before)
}

// SetClaim assigns ownership directly, bypassing claim accumulation.
func (t *Tile) SetClaim(owner int, progress float64) {
	before := t.Passability()
	t.Owner = owner
	t.ClaimProgress = clamp01(progress)
	if owner == Unclaimed {
		t.ClaimProgress = 0
	}
	if t.ClaimProgress >= 1 && t.Type == TileDirt {
		t.Type = TileClaimed
	}
	t.touch(before)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// touch bumps the grid version when the tile's walkability class changed.
func (t *Tile) touch(before TilePassability) {
	if t.grid != nil && t.Passability() != before {
		t.grid.version++
	}
}
