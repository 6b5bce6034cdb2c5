package creature

import (
	"math"

	"github.com/mitchelldurbincs/CreatureSim/internal/common"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/pathfind"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/rooms"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/spatial"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// World resolves creature ids found on tiles.
type World interface {
	Creature(id int) (*Creature, bool)
}

type noWorld struct{}

func (noWorld) Creature(int) (*Creature, bool) { return nil, false }

// Deps are the collaborators a Planner works against. Grid is required; the
// rest default to fresh instances, a fixed-seed random source, no rooms, no
// other creatures and a discarding event sink.
type Deps struct {
	Grid   *core.Grid
	Space  *spatial.Engine
	Paths  *pathfind.Pathfinder
	Rooms  *rooms.Registry
	World  World
	Random common.Random
	Events events.Publisher
	Logger *zerolog.Logger
	Tuning *Tuning
	SimID  string
}

// handlerFunc runs one action for one creature. It returns true to have the
// planner dispatch the new top of the stack within the same tick.
type handlerFunc func(p *Planner, c *Creature) bool

// Planner drives creatures through their action stacks, one tick at a time.
type Planner struct {
	grid     *core.Grid
	space    *spatial.Engine
	paths    *pathfind.Pathfinder
	rooms    *rooms.Registry
	world    World
	rnd      common.Random
	sink     events.Publisher
	logger   zerolog.Logger
	tuning   Tuning
	simID    string
	handlers map[ActionType]handlerFunc
}

func NewPlanner(d Deps) *Planner {
	p := &Planner{
		grid:   d.Grid,
		space:  d.Space,
		paths:  d.Paths,
		rooms:  d.Rooms,
		world:  d.World,
		rnd:    d.Random,
		sink:   d.Events,
		tuning: DefaultTuning(),
		simID:  d.SimID,
	}
	if p.space == nil {
		p.space = spatial.NewEngine(d.Grid)
	}
	if p.paths == nil {
		p.paths = pathfind.New(d.Grid)
	}
	if p.rooms == nil {
		p.rooms = rooms.NewRegistry(d.Grid)
	}
	if p.world == nil {
		p.world = noWorld{}
	}
	if p.rnd == nil {
		p.rnd = common.NewRandom(nil)
	}
	if p.sink == nil {
		p.sink = events.Discard{}
	}
	if d.Logger != nil {
		p.logger = d.Logger.With().Str("component", "planner").Logger()
	} else {
		p.logger = log.With().Str("component", "planner").Logger()
	}
	if d.Tuning != nil {
		p.tuning = *d.Tuning
	}

	p.handlers = map[ActionType]handlerFunc{
		ActionIdle:          (*Planner).handleIdle,
		ActionWalkToTile:    (*Planner).handleWalkToTile,
		ActionClaimTile:     (*Planner).handleClaimTile,
		ActionClaimWallTile: (*Planner).handleClaimWallTile,
		ActionDigTile:       (*Planner).handleDigTile,
		ActionDepositGold:   (*Planner).handleDepositGold,
		ActionFindHome:      (*Planner).handleFindHome,
		ActionSleep:         (*Planner).handleSleep,
		ActionTrain:         (*Planner).handleTrain,
		ActionAttackObject:  (*Planner).handleAttackObject,
		ActionManeuver:      (*Planner).handleManeuver,
	}
	return p
}

func (p *Planner) Tuning() Tuning { return p.tuning }

// SetTuning swaps the thresholds. Call it between ticks.
func (p *Planner) SetTuning(t Tuning) { p.tuning = t }

// Tick runs one full cycle for c: upkeep, perception, deliberation, the
// dispatch loop and movement along the walk queue.
func (p *Planner) Tick(c *Creature) {
	if !c.OnMap || !c.Alive() {
		return
	}
	if p.tileOf(c) == nil {
		p.creatureLogger(c).Error().
			Float64("x", c.X).
			Float64("y", c.Y).
			Msg("Creature is off the grid; skipping turn")
		return
	}

	p.checkLevelUp(c)
	p.upkeep(c)
	p.updatePerception(c)
	p.decideNextAction(c)
	p.dispatch(c)
	p.advanceWalk(c)
}

func (p *Planner) upkeep(c *Creature) {
	c.HP = math.Min(c.HP+p.tuning.HPRegen, c.MaxHP)
	c.Mana = math.Min(c.Mana+p.tuning.ManaRegen, c.MaxMana)
	c.Awakeness = common.Clamp(c.Awakeness-p.tuning.AwakenessDecay, 0, MaxAwakeness)
}

// decideNextAction may push a goal on top of whatever the creature is doing:
// a fight when enemies are reachable, otherwise home finding, sleep or
// training for non-workers.
func (p *Planner) decideNextAction(c *Creature) {
	t := p.tuning

	if len(c.reachableEnemies) > 0 && !c.stack.Contains(ActionAttackObject, ActionManeuver) {
		chance := t.FighterManeuverChance
		if c.IsWorker() {
			chance = t.WorkerManeuverChance
		}
		if p.rnd.Double(0, 1) < chance {
			c.fieldAge = 0
			p.push(c, Do(ActionManeuver))
			return
		}
	}

	if c.fieldAge > 0 {
		c.fieldAge--
	}

	if c.IsWorker() {
		return
	}

	isWeak := c.HP < c.MaxHP/3

	if !c.hasHome && !c.stack.Contains(ActionFindHome) && (isWeak || p.rnd.Double(0, 1) < t.FindHomeChance) {
		tile := p.tileOf(c)
		if len(rooms.Reachable(p.rooms.Quarters(c.Owner), tile, c.Pass(), p.paths)) > 0 {
			p.push(c, Do(ActionFindHome))
			return
		}
	}

	shouldSleep := isWeak || (c.hasHome && 100*math.Pow(p.rnd.Double(0, 0.8), 2) > c.Awakeness)
	if shouldSleep {
		if !c.stack.Contains(ActionSleep) {
			p.push(c, Do(ActionSleep))
		}
		return
	}

	if p.rnd.Double(0, 1) < t.TrainChance &&
		p.rnd.Double(0.5, 1) < c.Awakeness/MaxAwakeness &&
		!c.stack.Contains(ActionTrain) {
		c.trainWait = 0
		p.push(c, Do(ActionTrain))
	}
}

func (p *Planner) dispatch(c *Creature) {
	for loops := 1; ; loops++ {
		a, ok := c.stack.Peek()
		if !ok {
			p.creatureLogger(c).Error().Msg("Empty action stack; resetting to Idle")
			c.stack.Clear()
			return
		}

		handler, ok := p.handlers[a.Type]
		if !ok {
			p.creatureLogger(c).Error().
				Str("action", a.Type.String()).
				Int("action_type", int(a.Type)).
				Msg("No handler for action; dropping it")
			c.stack.Pop()
			return
		}

		if !handler(p, c) {
			return
		}

		if loops >= p.tuning.MaxDispatchLoops {
			p.creatureLogger(c).Warn().
				Int("loops", loops).
				Str("top", a.Type.String()).
				Interface("stack", c.stack.Types()).
				Msg("Dispatch loop bound reached; ending turn")
			return
		}
	}
}

func (p *Planner) push(c *Creature, a Action) {
	if !c.stack.Push(a) {
		p.creatureLogger(c).Warn().
			Str("action", a.String()).
			Int("depth", c.stack.Len()).
			Msg("Action stack full; dropping action")
	}
}

// popThenPush replaces the top action with a.
func (p *Planner) popThenPush(c *Creature, a Action) {
	c.stack.Pop()
	p.push(c, a)
}

func (p *Planner) tileOf(c *Creature) *core.Tile {
	return p.grid.TileAt(c.Coordinate())
}

func (p *Planner) creatureLogger(c *Creature) *zerolog.Logger {
	l := p.logger.With().
		Int("creature_id", c.ID).
		Str("creature", c.Name).
		Int("owner", c.Owner).
		Logger()
	return &l
}
