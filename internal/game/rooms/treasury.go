package rooms

import "github.com/mitchelldurbincs/CreatureSim/internal/game/core"

// TreasuryCapacityPerTile is how much gold one treasury tile holds.
const TreasuryCapacityPerTile = 1000

// Treasury stores gold on its tiles.
type Treasury struct {
	base
	capacityPerTile int
	gold            map[core.Coordinate]int
}

// DepositGold stores up to amount, starting on `at` and spilling onto the
// other tiles. It returns how much was taken.
func (t *Treasury) DepositGold(amount int, at *core.Tile) int {
	if amount <= 0 {
		return 0
	}
	taken := 0
	store := func(c core.Coordinate) {
		room := t.capacityPerTile - t.gold[c]
		if room <= 0 || taken == amount {
			return
		}
		n := min(room, amount-taken)
		t.gold[c] += n
		taken += n
	}
	if t.Covers(at) {
		store(at.Coordinate())
	}
	for _, tile := range t.tiles {
		store(tile.Coordinate())
	}
	return taken
}

// TotalGold is the gold stored across all tiles.
func (t *Treasury) TotalGold() int {
	total := 0
	for _, g := range t.gold {
		total += g
	}
	return total
}

// EmptyStorageSpace is how much more gold fits.
func (t *Treasury) EmptyStorageSpace() int {
	return t.capacityPerTile*len(t.tiles) - t.TotalGold()
}
