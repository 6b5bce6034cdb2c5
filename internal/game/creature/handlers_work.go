package creature

import (
	"math"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/rooms"
)

func (p *Planner) handleIdle(c *Creature) bool {
	t := p.tuning
	p.setAnimation(c, AnimIdle, true)

	dice := p.rnd.Double(0, 1)
	switch {
	case c.DigRate > 0 && len(c.markedTiles) > 0:
		p.push(c, Do(ActionDigTile))
		return true
	case c.DanceRate > 0 && dice < t.IdleClaimChance:
		p.push(c, Do(ActionClaimTile))
		return true
	case c.DigRate > 0 && c.Gold > 0:
		p.push(c, Do(ActionDepositGold))
		return true
	}

	if dice >= t.IdleWanderThreshold {
		return false
	}

	dest := p.wanderTarget(c)
	if dest == nil {
		return false
	}
	path := p.paths.Path(p.tileOf(c), dest, c.Pass())
	return p.walkToPath(c, path)
}

// wanderTarget picks somewhere to stroll. Fighters mostly tag along with a
// worker or head for the far edge of their sight; workers pick a far tile.
func (p *Planner) wanderTarget(c *Creature) *core.Tile {
	n := len(c.visibleTiles)
	if n == 0 {
		return nil
	}

	if c.IsWorker() {
		return c.visibleTiles[p.rnd.Uint(n/2, n-1)]
	}

	if p.rnd.Double(0, 1) < 0.7 {
		for _, ally := range c.reachableAllies {
			if !ally.IsWorker() {
				continue
			}
			spread := 8.0
			if ally.stack.TopIs(ActionDigTile) {
				spread = 3.0
			}
			at := ally.Coordinate()
			x := at.X + int(math.Round(spread*p.rnd.Gaussian()))
			y := at.Y + int(math.Round(spread*p.rnd.Gaussian()))
			if t := p.grid.Tile(x, y); t != nil {
				return t
			}
			break
		}
		return c.visibleTiles[int(p.rnd.Double(0.6, 0.8)*float64(n-1))]
	}
	return c.visibleTiles[min(int(float64(n)*p.rnd.Double(0.1, 0.3)), n-1)]
}

func (p *Planner) handleWalkToTile(c *Creature) bool {
	if len(c.enemiesInRange) > 0 && p.rnd.Double(0, 1) < p.tuning.WalkAbortChance {
		p.popThenPush(c, Do(ActionAttackObject))
		c.clearDestinations()
		return true
	}

	// Stop walking to a dig site once the tile is no longer wanted.
	if below, ok := c.stack.At(1); ok && below.Type == ActionDigTile && len(c.walkQueue) > 0 {
		if !p.stillWorthDigging(c) {
			c.clearDestinations()
		}
	}

	if len(c.walkQueue) == 0 {
		c.stack.Pop()
		return true
	}
	return false
}

// stillWorthDigging reports whether the walk's destination still touches a
// tile marked for digging.
func (p *Planner) stillWorthDigging(c *Creature) bool {
	dest := p.grid.TileAt(c.walkQueue[len(c.walkQueue)-1])
	if dest == nil {
		return false
	}
	for _, n := range dest.Neighbors() {
		if n.IsMarkedBy(c.Owner) {
			return true
		}
	}
	return false
}

func (p *Planner) handleClaimTile(c *Creature) bool {
	if p.switchToDigging(c) {
		return true
	}

	tile := p.tileOf(c)
	if !tile.IsClaimedBy(c.Owner) && tile.IsGroundClaimable() && tile.HasClaimedNeighbor(c.Owner) {
		p.setAnimation(c, AnimClaim, true)
		tile.ClaimFor(c.Owner, c.DanceRate)
		c.ReceiveExp(1.5 * c.DanceRate / (0.35 + 0.05*float64(c.Level)))
		p.sink.Publish(events.NewTileClaimedEvent(p.simID, p.ref(c), tile.X, tile.Y, tile.ClaimProgress, false))
		return false
	}

	// Step onto a claimable neighbour.
	neighbors := append([]*core.Tile(nil), tile.Neighbors()...)
	for len(neighbors) > 0 {
		i := p.rnd.Uint(0, len(neighbors)-1)
		n := neighbors[i]
		neighbors = append(neighbors[:i], neighbors[i+1:]...)
		if c.Pass().Allows(n) && !n.IsClaimedBy(c.Owner) && n.IsGroundClaimable() && n.HasClaimedNeighbor(c.Owner) {
			c.clearDestinations()
			c.addDestination(n.Coordinate())
			p.setAnimation(c, AnimWalk, true)
			return false
		}
	}

	// Head for a visible claimable tile, favouring ones hemmed in by our own
	// floor so the claimed region grows round rather than stringy.
	var candidates []*core.Tile
	for _, t := range c.visibleTiles {
		if c.Pass().Allows(t) && !t.IsClaimedBy(c.Owner) && t.IsGroundClaimable() && t.HasClaimedNeighbor(c.Owner) {
			candidates = append(candidates, t)
		}
	}
	for len(candidates) > 0 {
		i := p.pickRound(c, candidates)
		path := p.paths.Path(tile, candidates[i], c.Pass())
		if p.walkToPath(c, path) {
			return false
		}
		candidates = append(candidates[:i], candidates[i+1:]...)
	}

	p.popThenPush(c, Do(ActionClaimWallTile))
	return true
}

// pickRound draws candidates at random and accepts one with a bar that drops
// with the number of its claimed neighbours and with each rejection.
func (p *Planner) pickRound(c *Creature, candidates []*core.Tile) int {
	size := len(candidates)
	if size == 1 {
		return 0
	}
	for rejected := 0; rejected < size; rejected++ {
		i := p.rnd.Uint(0, size-1)
		claimed := 0
		for _, n := range candidates[i].Neighbors() {
			if n.IsClaimedBy(c.Owner) {
				claimed++
			}
		}
		bar := 1 - float64(claimed)/4 - float64(rejected)/float64(size-1)
		if p.rnd.Double(0, 1) >= bar {
			return i
		}
	}
	return p.rnd.Uint(0, size-1)
}

// switchToDigging replaces the current claim action with DigTile with a
// probability that grows with the number of tiles waiting to be dug.
func (p *Planner) switchToDigging(c *Creature) bool {
	roll := p.rnd.Double(0, 1)
	if len(c.markedTiles) == 0 || c.DigRate <= 0 {
		return false
	}
	if roll < 0.1+0.2*float64(len(c.markedTiles)) {
		p.popThenPush(c, Do(ActionDigTile))
		return true
	}
	return false
}

func (p *Planner) handleClaimWallTile(c *Creature) bool {
	if p.switchToDigging(c) {
		return true
	}

	tile := p.tileOf(c)
	for _, n := range tile.Neighbors() {
		if n.IsWallClaimable(c.Owner) {
			p.setAnimation(c, AnimClaim, true)
			n.ClaimFor(c.Owner, c.DanceRate)
			c.ReceiveExp(1.5 * c.DanceRate / 20)
			p.sink.Publish(events.NewTileClaimedEvent(p.simID, p.ref(c), n.X, n.Y, n.ClaimProgress, true))
			return false
		}
	}

	var walls []*core.Tile
	for _, t := range c.visibleTiles {
		if t.IsWallClaimable(c.Owner) {
			walls = append(walls, t)
		}
	}
	if path := p.pickShortPath(c, tile, openSides(walls, c.Pass())); path != nil && p.walkToPath(c, path) {
		return false
	}

	c.stack.Pop()
	return false
}

func (p *Planner) handleDigTile(c *Creature) bool {
	tile := p.tileOf(c)
	dug := false

	for _, n := range tile.Neighbors() {
		if !n.IsMarkedBy(c.Owner) {
			continue
		}
		if n.Type == core.TileGold {
			c.Gold += int(p.tuning.GoldPerFullness * math.Min(c.DigRate, n.Fullness))
			c.ReceiveExp(5 * c.DigRate / 20)
		}

		p.setAnimation(c, AnimDig, true)
		amount := n.DigOut(c.DigRate)
		if amount > 0 {
			c.ReceiveExp(1.5 * c.DigRate / 20)
			p.playSound(c, SoundDig)
			p.sink.Publish(events.NewTileDugEvent(p.simID, p.ref(c), n.X, n.Y, n.Fullness))
			if n.Fullness == 0 {
				c.addDestination(n.Coordinate())
				p.push(c, WalkTo(n.Coordinate()))
			}
		} else {
			p.creatureLogger(c).Debug().
				Int("x", n.X).
				Int("y", n.Y).
				Msg("Marked tile cannot be dug; clearing goals")
			c.stack.Clear()
		}
		dug = true
		break
	}

	if c.Gold >= p.tuning.MaxGoldCarried {
		p.push(c, Do(ActionDepositGold))
	}
	if dug {
		return false
	}

	if path := p.pickShortPath(c, tile, openSides(c.markedTiles, c.Pass())); path != nil && p.walkToPath(c, path) {
		return false
	}

	if c.stack.TopIs(ActionDigTile) {
		c.stack.Pop()
	}
	return false
}

func (p *Planner) handleDepositGold(c *Creature) bool {
	tile := p.tileOf(c)

	if room, ok := p.rooms.RoomAt(tile); ok && room.Owner() == c.Owner {
		if treasury, ok := room.(*rooms.Treasury); ok {
			c.Gold -= treasury.DepositGold(c.Gold, tile)
			if p.rnd.Double(1, float64(p.tuning.MaxGoldCarried)) > float64(c.Gold) {
				c.stack.Pop()
				return false
			}
		}
	}

	treasuries := p.rooms.Treasuries(c.Owner)
	if len(treasuries) == 0 {
		c.stack.Pop()
		p.creatureLogger(c).Info().Int("gold", c.Gold).Msg("No treasury to deposit gold in")
		return false
	}

	var best []*core.Tile
	for _, tr := range rooms.Reachable(treasuries, tile, c.Pass(), p.paths) {
		if tr.EmptyStorageSpace() <= 0 {
			continue
		}
		path := p.paths.Path(tile, tr.RandomTile(p.rnd), c.Pass())
		if len(path) >= 2 && (best == nil || len(path) < len(best)) {
			best = path
		}
	}
	if best != nil && p.walkToPath(c, best) {
		return false
	}

	c.stack.Pop()
	p.creatureLogger(c).Info().Int("gold", c.Gold).Msg("No reachable treasury with space")
	return false
}
