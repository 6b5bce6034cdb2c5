package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/CreatureSim/internal/common"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/creature"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/mapgen"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/pathfind"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/spatial"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/species"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/states"
	"github.com/rs/zerolog"
)

// EngineInitializer handles the multi-step construction of an engine
type EngineInitializer struct {
	config SimConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg SimConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "SimEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize builds the dungeon, wires the planner and spawns every owner's
// starting creatures.
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	if err := ei.setupDefaults(); err != nil {
		return nil, err
	}

	dungeon, err := ei.generateMap()
	if err != nil {
		return nil, fmt.Errorf("map generation failed: %w", err)
	}

	engine := ei.createEngine(dungeon)
	ei.setupEventHandling(engine)

	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled before spawning creatures")
		return nil, ctx.Err()
	default:
	}

	if err := ei.spawnStartingCreatures(engine); err != nil {
		return nil, fmt.Errorf("spawning starting creatures failed: %w", err)
	}

	engine.eventBus.Publish(events.NewSimulationStartedEvent(
		engine.simID,
		engine.grid.W,
		engine.grid.H,
		len(dungeon.Bases),
		engine.seed,
	))

	ei.logger.Info().
		Str("sim_id", engine.simID).
		Int("width", engine.grid.W).
		Int("height", engine.grid.H).
		Int("owners", len(dungeon.Bases)).
		Int("creatures", len(engine.creatures)).
		Int64("seed", engine.seed).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults fills in anything the caller left out
func (ei *EngineInitializer) setupDefaults() error {
	if ei.config.Rng == nil {
		if ei.config.Seed == 0 {
			ei.config.Seed = time.Now().UnixNano()
			ei.logger.Debug().Int64("seed", ei.config.Seed).Msg("No seed provided, using clock")
		}
		ei.config.Rng = rand.New(rand.NewSource(ei.config.Seed))
	}

	if ei.config.SimID == "" {
		ei.config.SimID = uuid.NewString()
	}

	if ei.config.Catalog == nil {
		ei.config.Catalog = species.DefaultCatalog()
	}

	if ei.config.Tuning == nil {
		t := creature.DefaultTuning()
		ei.config.Tuning = &t
	} else if err := ei.config.Tuning.Validate(); err != nil {
		return err
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBus()
	}
	return nil
}

// generateMap returns the supplied dungeon or generates a new one
func (ei *EngineInitializer) generateMap() (*mapgen.Dungeon, error) {
	if ei.config.Dungeon != nil {
		ei.logger.Debug().Msg("Using supplied dungeon")
		return ei.config.Dungeon, nil
	}

	mapCfg := mapgen.DefaultMapConfig(ei.config.Width, ei.config.Height, ei.config.Owners)
	if ei.config.Map != nil {
		mapCfg = *ei.config.Map
	}
	return mapgen.NewGenerator(mapCfg, ei.config.Rng).GenerateMap()
}

// createEngine wires the query engines and the planner around the dungeon
func (ei *EngineInitializer) createEngine(d *mapgen.Dungeon) *Engine {
	engine := &Engine{
		simID:    ei.config.SimID,
		seed:     ei.config.Seed,
		dungeon:  d,
		grid:     d.Grid,
		space:    spatial.NewEngine(d.Grid),
		paths:    pathfind.New(d.Grid),
		rooms:    d.Rooms,
		catalog:  ei.config.Catalog,
		eventBus: ei.config.EventBus,
		logger:   ei.logger.With().Str("sim_id", ei.config.SimID).Logger(),
	}

	engine.planner = creature.NewPlanner(creature.Deps{
		Grid:   d.Grid,
		Space:  engine.space,
		Paths:  engine.paths,
		Rooms:  d.Rooms,
		World:  engine,
		Random: common.NewRandom(ei.config.Rng),
		Events: engine.eventBus,
		Logger: &engine.logger,
		Tuning: ei.config.Tuning,
		SimID:  engine.simID,
	})
	engine.tickProcessor = NewTickProcessor(engine)
	engine.lifecycle = states.NewStateMachine(
		states.NewSimContext(engine.simID, ei.logger),
		engine.eventBus,
	)

	return engine
}

// setupEventHandling attaches subscribers before anything is published
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	for _, sub := range ei.config.Subscribers {
		engine.eventBus.Subscribe(sub)
		ei.logger.Debug().Str("subscriber", sub.ID()).Msg("Subscribed to simulation events")
	}
}

// spawnStartingCreatures places each owner's workers and fighters on the
// centre of its base, cycling through the catalog's species of each kind.
func (ei *EngineInitializer) spawnStartingCreatures(engine *Engine) error {
	workers := ei.config.Catalog.Workers()
	fighters := ei.config.Catalog.Fighters()
	if ei.config.WorkersPerOwner > 0 && len(workers) == 0 {
		return fmt.Errorf("%w: worker", ErrNoSpawnableKind)
	}
	if ei.config.FightersPerOwner > 0 && len(fighters) == 0 {
		return fmt.Errorf("%w: fighter", ErrNoSpawnableKind)
	}

	for _, base := range engine.dungeon.Bases {
		for i := 0; i < ei.config.WorkersPerOwner; i++ {
			if _, err := engine.Spawn(workers[i%len(workers)], base.Owner, base.Center.X, base.Center.Y); err != nil {
				return err
			}
		}
		for i := 0; i < ei.config.FightersPerOwner; i++ {
			if _, err := engine.Spawn(fighters[i%len(fighters)], base.Owner, base.Center.X, base.Center.Y); err != nil {
				return err
			}
		}
	}
	return nil
}
