package game

import (
	"math/rand"

	"github.com/mitchelldurbincs/CreatureSim/internal/config"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/creature"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/mapgen"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/species"
	"github.com/rs/zerolog"
)

// SimConfig describes the world an EngineInitializer builds.
type SimConfig struct {
	Width            int
	Height           int
	Owners           int
	WorkersPerOwner  int
	FightersPerOwner int

	// Map overrides the generator settings derived from Width, Height and
	// Owners. Dungeon skips generation entirely.
	Map     *mapgen.MapConfig
	Dungeon *mapgen.Dungeon

	Catalog *species.Catalog
	Tuning  *creature.Tuning

	// Seed feeds a fresh random source when Rng is nil; zero picks one from
	// the clock.
	Seed int64
	Rng  *rand.Rand

	SimID       string
	EventBus    *events.EventBus
	Subscribers []events.Subscriber
	Logger      zerolog.Logger
}

// TuningFromConfig overlays the configured planner thresholds on the stock
// tuning. Thresholds the config file does not expose keep their defaults.
func TuningFromConfig(pc config.PlannerConfig) creature.Tuning {
	t := creature.DefaultTuning()
	t.FighterManeuverChance = pc.FighterManeuverChance
	t.WorkerManeuverChance = pc.WorkerManeuverChance
	t.FindHomeChance = pc.FindHomeChance
	t.TrainChance = pc.TrainChance
	t.IdleClaimChance = pc.IdleClaimChance
	t.IdleWanderThreshold = pc.IdleWanderThreshold
	t.WalkAbortChance = pc.WalkAbortChance
	t.AttackBreakOffChance = pc.AttackBreakOffChance
	t.MaxDispatchLoops = pc.MaxDispatchLoops
	t.MaxStackDepth = pc.MaxStackDepth
	t.MaxGoldCarried = pc.MaxGoldCarried
	t.GoldPerFullness = pc.GoldPerFullness
	t.BattlefieldAgeMin = pc.BattlefieldAgeMin
	t.BattlefieldAgeMax = pc.BattlefieldAgeMax
	t.BattlefieldJitter = pc.BattlefieldJitter
	t.ManeuverPathCap = pc.ManeuverPathCap
	t.ShortPathCandidates = pc.ShortPathCandidates
	t.TrainLevelCap = pc.TrainLevelCap
	t.MaxTrainDistance = pc.MaxTrainDistance
	return t
}

// MapConfigFromConfig builds generator settings from the simulation section.
func MapConfigFromConfig(sc config.SimulationConfig) mapgen.MapConfig {
	mc := mapgen.DefaultMapConfig(sc.Width, sc.Height, sc.Owners)
	if sc.HeartRadius > 0 {
		mc.HeartRadius = sc.HeartRadius
	}
	if sc.MinBaseSpacing > 0 {
		mc.MinBaseSpacing = sc.MinBaseSpacing
	}
	if sc.FrontierDepth >= 0 {
		mc.FrontierDepth = sc.FrontierDepth
	}
	if sc.GoldVeinRatio > 0 {
		mc.NumGoldVeins = (sc.Width * sc.Height) / sc.GoldVeinRatio
	}
	return mc
}

// SimConfigFromConfig translates the loaded application config. The species
// catalog is read from disk when a path is configured.
func SimConfigFromConfig(c *config.Config, logger zerolog.Logger) (SimConfig, error) {
	catalog := species.DefaultCatalog()
	if c.Species.CatalogPath != "" {
		loaded, err := species.LoadCatalog(c.Species.CatalogPath)
		if err != nil {
			return SimConfig{}, err
		}
		catalog = loaded
	}

	tuning := TuningFromConfig(c.Planner)
	if err := tuning.Validate(); err != nil {
		return SimConfig{}, err
	}
	mapCfg := MapConfigFromConfig(c.Simulation)

	return SimConfig{
		Width:            c.Simulation.Width,
		Height:           c.Simulation.Height,
		Owners:           c.Simulation.Owners,
		WorkersPerOwner:  c.Simulation.WorkersPerOwner,
		FightersPerOwner: c.Simulation.FightersPerOwner,
		Map:              &mapCfg,
		Catalog:          catalog,
		Tuning:           &tuning,
		Seed:             c.Simulation.Seed,
		Logger:           logger,
	}, nil
}
