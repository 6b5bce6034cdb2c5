package game

import (
	"context"
	"fmt"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/creature"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/mapgen"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/pathfind"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/rooms"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/spatial"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/species"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/states"
	"github.com/rs/zerolog"
)

// Engine owns one dungeon and every creature in it, and advances them one
// tick at a time. It is not safe for concurrent use; callers that share an
// engine across goroutines must serialise access.
type Engine struct {
	simID   string
	seed    int64
	dungeon *mapgen.Dungeon
	grid    *core.Grid
	space   *spatial.Engine
	paths   *pathfind.Pathfinder
	rooms   *rooms.Registry
	catalog *species.Catalog
	planner *creature.Planner

	creatures []*creature.Creature
	living    int

	eventBus      *events.EventBus
	logger        zerolog.Logger
	tickProcessor *TickProcessor
	lifecycle     *states.StateMachine
	tick          int
}

// NewEngine builds a dungeon from cfg, populates it and returns the engine.
func NewEngine(ctx context.Context, cfg SimConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Creature returns the creature with the given id. Dead creatures stay
// resolvable so late references can still be reported.
func (e *Engine) Creature(id int) (*creature.Creature, bool) {
	if id < 0 || id >= len(e.creatures) {
		return nil, false
	}
	return e.creatures[id], true
}

// Creatures returns every creature ever spawned, indexed by id.
func (e *Engine) Creatures() []*creature.Creature { return e.creatures }

// Spawn creates a level 1 creature of the named species at the centre of
// (x, y). The tile must be open ground the species can stand on.
func (e *Engine) Spawn(className string, owner, x, y int) (*creature.Creature, error) {
	def, ok := e.catalog.Get(className)
	if !ok {
		return nil, fmt.Errorf("%w: %s", species.ErrUnknownSpecies, className)
	}
	if owner < 0 || owner >= core.MaxOwners {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidOwner, owner)
	}
	t := e.grid.Tile(x, y)
	if t == nil {
		return nil, fmt.Errorf("%w: (%d,%d)", core.ErrInvalidCoordinates, x, y)
	}
	if !def.Pass().Allows(t) {
		return nil, fmt.Errorf("%w: %s cannot stand on (%d,%d)", ErrBlockedSpawn, className, x, y)
	}

	c := creature.New(len(e.creatures), def, owner, 0, 0)
	c.Stack().SetMaxDepth(e.planner.Tuning().MaxStackDepth)
	e.creatures = append(e.creatures, c)
	e.planner.Place(c, x, y)
	e.living++

	e.eventBus.Publish(events.NewCreatureSpawnedEvent(e.simID, refOf(c), def.ClassName, x, y))
	e.logger.Debug().
		Int("creature_id", c.ID).
		Str("species", def.ClassName).
		Int("owner", owner).
		Int("x", x).
		Int("y", y).
		Msg("Spawned creature")
	return c, nil
}

// Step advances the simulation by one tick. The first step starts a
// simulation that is still initializing.
func (e *Engine) Step(ctx context.Context) error {
	if e.lifecycle.CurrentPhase() == states.PhaseInitializing {
		if err := e.Start(); err != nil {
			return err
		}
	}
	return e.tickProcessor.ProcessTick(ctx)
}

// Start moves the simulation into the running phase.
func (e *Engine) Start() error {
	e.lifecycle.Context().Creatures = len(e.creatures)
	return e.lifecycle.TransitionTo(states.PhaseRunning, "world ready")
}

// Pause suspends ticking until Resume.
func (e *Engine) Pause(reason string) error {
	return e.lifecycle.TransitionTo(states.PhasePaused, reason)
}

func (e *Engine) Resume(reason string) error {
	return e.lifecycle.TransitionTo(states.PhaseRunning, reason)
}

// Stop ends the simulation for good.
func (e *Engine) Stop(reason string) error {
	return e.lifecycle.TransitionTo(states.PhaseStopped, reason)
}

// Fail records err and moves the simulation into the error phase.
func (e *Engine) Fail(err error) error {
	return e.lifecycle.Fail(err)
}

func (e *Engine) Phase() states.Phase { return e.lifecycle.CurrentPhase() }

// Run steps the simulation ticks times, stopping early if ctx ends.
func (e *Engine) Run(ctx context.Context, ticks int) error {
	for i := 0; i < ticks; i++ {
		if err := e.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// MarkForDigging sets or clears owner's dig mark on (x, y).
func (e *Engine) MarkForDigging(owner, x, y int, marked bool) error {
	if owner < 0 || owner >= core.MaxOwners {
		return fmt.Errorf("%w: %d", core.ErrInvalidOwner, owner)
	}
	t := e.grid.Tile(x, y)
	if t == nil {
		return fmt.Errorf("%w: (%d,%d)", core.ErrInvalidCoordinates, x, y)
	}
	if !t.SetMarked(owner, marked) {
		return fmt.Errorf("%w: (%d,%d) is %s", core.ErrNotDiggable, x, y, t.Type)
	}
	e.grid.Invalidate()
	return nil
}

// SetTuning replaces the planner thresholds between ticks.
func (e *Engine) SetTuning(t creature.Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	e.planner.SetTuning(t)
	for _, c := range e.creatures {
		c.Stack().SetMaxDepth(t.MaxStackDepth)
	}
	e.logger.Info().Msg("Planner tuning updated")
	return nil
}

func (e *Engine) Tuning() creature.Tuning          { return e.planner.Tuning() }
func (e *Engine) SimID() string                    { return e.simID }
func (e *Engine) Seed() int64                      { return e.seed }
func (e *Engine) Tick() int                        { return e.tick }
func (e *Engine) Grid() *core.Grid                 { return e.grid }
func (e *Engine) Rooms() *rooms.Registry           { return e.rooms }
func (e *Engine) Bases() []mapgen.Base             { return e.dungeon.Bases }
func (e *Engine) EventBus() *events.EventBus       { return e.eventBus }
func (e *Engine) Catalog() *species.Catalog        { return e.catalog }
func (e *Engine) Living() int                      { return e.living }
func (e *Engine) Logger() zerolog.Logger           { return e.logger }
func (e *Engine) Planner() *creature.Planner       { return e.planner }
func (e *Engine) Space() *spatial.Engine           { return e.space }
func (e *Engine) Pathfinder() *pathfind.Pathfinder { return e.paths }

// removeDead takes creatures that ran out of HP off the map and frees their
// beds and training slots.
func (e *Engine) removeDead(logger zerolog.Logger) int {
	removed := 0
	for _, c := range e.creatures {
		if !c.OnMap || c.Alive() {
			continue
		}
		at := c.Coordinate()
		e.planner.Remove(c)
		e.rooms.Release(c.ID)
		c.ClearHome()
		e.living--
		removed++

		e.eventBus.Publish(events.NewCreatureDiedEvent(e.simID, refOf(c), at.X, at.Y))
		logger.Info().
			Int("creature_id", c.ID).
			Str("creature", c.Name).
			Int("owner", c.Owner).
			Msg("Creature died")
	}
	return removed
}

func refOf(c *creature.Creature) events.CreatureRef {
	return events.CreatureRef{CreatureID: c.ID, Name: c.Name, Owner: c.Owner}
}
