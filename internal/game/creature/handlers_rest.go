package creature

import (
	"math"

	"github.com/mitchelldurbincs/CreatureSim/internal/common"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/rooms"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/spatial"
)

func (p *Planner) handleFindHome(c *Creature) bool {
	if c.hasHome {
		c.stack.Pop()
		return true
	}

	tile := p.tileOf(c)
	dimX, dimY := c.Def.BedDim1, c.Def.BedDim2

	if room, ok := p.rooms.RoomAt(tile); ok && room.Owner() == c.Owner {
		if q, ok := room.(*rooms.Quarters); ok && q.ClaimTileForSleeping(tile, c.ID, dimX, dimY) {
			c.setHome(tile.Coordinate())
			p.creatureLogger(c).Info().
				Int("x", tile.X).
				Int("y", tile.Y).
				Int("room_id", q.ID()).
				Msg("Claimed a bed")
			c.stack.Pop()
			return false
		}
	}

	var best []*core.Tile
	for _, q := range rooms.Reachable(p.rooms.Quarters(c.Owner), tile, c.Pass(), p.paths) {
		spot := q.LocationForBed(dimX, dimY)
		if spot == nil {
			spot = q.LocationForBed(dimY, dimX)
		}
		if spot == nil {
			continue
		}
		path := p.paths.Path(tile, spot, c.Pass())
		if len(path) >= 2 && (best == nil || len(path) < len(best)) {
			best = path
		}
	}
	if best != nil && p.walkToPath(c, best) {
		return false
	}

	c.stack.Pop()
	return false
}

func (p *Planner) handleSleep(c *Creature) bool {
	if !c.hasHome {
		c.stack.Pop()
		return true
	}

	tile := p.tileOf(c)
	if tile.Coordinate() != c.home {
		path := p.paths.Path(tile, p.grid.TileAt(c.home), c.Pass())
		if !p.walkToPath(c, path) {
			p.creatureLogger(c).Debug().Msg("Home is unreachable; giving up on sleep")
			c.stack.Pop()
		}
		return false
	}

	t := p.tuning
	p.setAnimation(c, AnimSleep, true)
	c.Awakeness = common.Clamp(c.Awakeness+t.SleepAwakenessRegen, 0, MaxAwakeness)
	c.HP = math.Min(c.HP+t.SleepHPRegen, c.MaxHP)
	c.Mana = math.Min(c.Mana+t.SleepManaRegen, c.MaxMana)

	if c.Awakeness >= MaxAwakeness && c.HP >= c.MaxHP && c.Mana >= c.MaxMana {
		p.setAnimation(c, AnimIdle, true)
		c.stack.Pop()
	}
	return false
}

func (p *Planner) handleTrain(c *Creature) bool {
	t := p.tuning

	if c.Level > t.TrainLevelCap || p.tooTiredToTrain(c) {
		p.stopTraining(c)
		return true
	}

	if c.trainWait > 0 {
		c.trainWait--
		return false
	}

	tile := p.tileOf(c)
	if room, ok := p.rooms.RoomAt(tile); ok && room.Owner() == c.Owner {
		if tr, ok := room.(*rooms.TrainingRoom); ok && tr.AddUser(c.ID) {
			c.trainingRoom = tr.ID()
			p.setAnimation(c, AnimTrain, true)
			c.ReceiveExp(t.TrainExp)
			c.Awakeness = common.Clamp(c.Awakeness-t.TrainAwakenessCost, 0, MaxAwakeness)
			c.trainWait = p.rnd.Uint(t.TrainWaitMin, t.TrainWaitMax)
			return false
		}
	}
	p.leaveTrainingRoom(c)

	if room := p.pickTrainingRoom(c, tile); room != nil {
		path := p.paths.Path(tile, room.RandomTile(p.rnd), c.Pass())
		if len(path) < t.MaxTrainDistance && p.walkToPath(c, path) {
			return false
		}
	}

	p.stopTraining(c)
	return false
}

// pickTrainingRoom chooses a reachable owned room with a free slot, weighting
// each by the inverse of its straight-line distance.
func (p *Planner) pickTrainingRoom(c *Creature, from *core.Tile) *rooms.TrainingRoom {
	var (
		candidates []*rooms.TrainingRoom
		weights    []float64
		total      float64
	)
	for _, r := range rooms.Reachable(p.rooms.TrainingRooms(c.Owner), from, c.Pass(), p.paths) {
		if r.OpenSlots() == 0 && !r.HasUser(c.ID) {
			continue
		}
		w := 1 / (1 + spatial.CrowDistance(from, r.CentralTile()))
		candidates = append(candidates, r)
		weights = append(weights, w)
		total += w
	}
	if len(candidates) == 0 {
		return nil
	}

	roll := p.rnd.Double(0, total)
	for i, w := range weights {
		if roll < w {
			return candidates[i]
		}
		roll -= w
	}
	return candidates[len(candidates)-1]
}

func (p *Planner) leaveTrainingRoom(c *Creature) {
	if c.trainingRoom == core.NoRoom {
		return
	}
	if room, ok := p.rooms.Get(c.trainingRoom); ok {
		if tr, ok := room.(*rooms.TrainingRoom); ok {
			tr.RemoveUser(c.ID)
		}
	}
	c.trainingRoom = core.NoRoom
}

// tooTiredToTrain rolls MaxAwakeness*U(0,1)^2 against awakeness, so a rested
// creature still gives up now and then.
func (p *Planner) tooTiredToTrain(c *Creature) bool {
	return MaxAwakeness*math.Pow(p.rnd.Double(0, 1), 2) > c.Awakeness
}

func (p *Planner) stopTraining(c *Creature) {
	p.leaveTrainingRoom(c)
	c.trainWait = 0
	if c.stack.TopIs(ActionTrain) {
		c.stack.Pop()
	}
}
