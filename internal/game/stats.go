package game

import "sort"

// OwnerStats summarises one owner's holdings.
type OwnerStats struct {
	Creatures    int
	GoldCarried  int
	GoldStored   int
	TilesClaimed int
	TotalLevels  int
}

// Stats is a snapshot of the whole simulation.
type Stats struct {
	Tick   int
	Living int
	Died   int
	Owners map[int]OwnerStats
}

// OwnerIDs returns the owners present in the snapshot in ascending order.
func (s Stats) OwnerIDs() []int {
	ids := make([]int, 0, len(s.Owners))
	for id := range s.Owners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Stats does a full scan of creatures, treasuries and claimed tiles.
func (e *Engine) Stats() Stats {
	s := Stats{
		Tick:   e.tick,
		Living: e.living,
		Died:   len(e.creatures) - e.living,
		Owners: make(map[int]OwnerStats),
	}

	for _, base := range e.dungeon.Bases {
		s.Owners[base.Owner] = OwnerStats{}
	}

	for _, c := range e.creatures {
		if !c.OnMap || !c.Alive() {
			continue
		}
		os := s.Owners[c.Owner]
		os.Creatures++
		os.GoldCarried += c.Gold
		os.TotalLevels += c.Level
		s.Owners[c.Owner] = os
	}

	for owner, claimed := range e.grid.CountClaimed() {
		os := s.Owners[owner]
		os.TilesClaimed = claimed
		s.Owners[owner] = os
	}

	for owner := range s.Owners {
		os := s.Owners[owner]
		for _, t := range e.rooms.Treasuries(owner) {
			os.GoldStored += t.TotalGold()
		}
		s.Owners[owner] = os
	}
	return s
}
