package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/CreatureSim/internal/config"
	"github.com/mitchelldurbincs/CreatureSim/internal/game"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events/subscribers"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	ticks := flag.Int("ticks", -1, "Number of ticks to run (-1 to use config default)")
	seed := flag.Int64("seed", 0, "World seed (0 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	renderEvery := flag.Int("render-every", 0, "Print the map every N ticks (0 prints only the final map)")
	color := flag.Bool("color", true, "Use ANSI colors when printing the map")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}

	if *ticks == -1 {
		*ticks = cfg.Simulation.Ticks
	}
	if *seed == 0 {
		*seed = cfg.Simulation.Seed
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	setupLogging(*logLevel, cfg.Logging.Format)

	simCfg, err := game.SimConfigFromConfig(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build simulation config")
	}
	simCfg.Seed = *seed
	simCfg.Subscribers = append(simCfg.Subscribers,
		subscribers.NewLoggerSubscriber("event-logger", log.Logger, zerolog.DebugLevel))

	if cfg.Journal.Enabled {
		f, err := os.Create(cfg.Journal.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Journal.Path).Msg("Failed to open event journal")
		}
		defer f.Close()
		journal := subscribers.NewJournalSubscriber("journal", f, log.Logger)
		simCfg.Subscribers = append(simCfg.Subscribers, journal)
		defer func() {
			log.Info().Int("events", journal.Written()).Str("path", cfg.Journal.Path).Msg("Event journal closed")
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := game.NewEngine(ctx, simCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create simulation")
	}

	log.Info().
		Str("sim_id", engine.SimID()).
		Int64("seed", engine.Seed()).
		Int("ticks", *ticks).
		Msg("Starting dungeon simulation")

	fmt.Printf("Initial map:\n%s\n", engine.Render(*color))

	start := time.Now()
	for i := 0; i < *ticks; i++ {
		if err := engine.Step(ctx); err != nil {
			log.Warn().Err(err).Int("tick", engine.Tick()).Msg("Simulation halted")
			break
		}
		if *renderEvery > 0 && engine.Tick()%*renderEvery == 0 {
			fmt.Printf("Tick %d:\n%s\n", engine.Tick(), engine.Render(*color))
		}
		if engine.Living() == 0 {
			log.Info().Int("tick", engine.Tick()).Msg("No creatures left alive")
			break
		}
	}
	if !engine.Phase().IsTerminal() {
		if err := engine.Stop("run finished"); err != nil {
			log.Warn().Err(err).Msg("Failed to stop simulation")
		}
	}

	fmt.Printf("Final map (tick %d):\n%s\n", engine.Tick(), engine.Render(*color))
	printStats(engine.Stats())
	log.Info().Dur("elapsed", time.Since(start)).Msg("Simulation finished")
}

func printStats(stats game.Stats) {
	fmt.Printf("Tick %d: %d living, %d died\n", stats.Tick, stats.Living, stats.Died)
	for _, id := range stats.OwnerIDs() {
		o := stats.Owners[id]
		fmt.Printf("  Owner %d: %d creatures, %d gold carried, %d gold stored, %d tiles claimed, %d total levels\n",
			id, o.Creatures, o.GoldCarried, o.GoldStored, o.TilesClaimed, o.TotalLevels)
	}
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
