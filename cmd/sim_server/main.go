package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/mitchelldurbincs/CreatureSim/internal/config"
	"github.com/mitchelldurbincs/CreatureSim/internal/game"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/CreatureSim/internal/grpc/simserver"
	"github.com/mitchelldurbincs/CreatureSim/internal/monitoring"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The server port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	ticks := flag.Int("ticks", -1, "Stop after this many ticks, 0 for no limit (-1 to use config default)")
	enableReflection := flag.Bool("enable-reflection", false, "Enable gRPC reflection for debugging")
	watchConfig := flag.Bool("watch-config", true, "Reload planner tuning when the config file changes")
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

	if *port == -1 {
		*port = cfg.Server.Port
	}
	if *host == "" {
		*host = cfg.Server.Host
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *ticks == -1 {
		*ticks = cfg.Simulation.Ticks
	}
	if !*enableReflection {
		*enableReflection = cfg.Server.EnableReflection
	}
	setupLogging(*logLevel, cfg.Logging.Format)

	simCfg, err := game.SimConfigFromConfig(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build simulation config")
	}
	simCfg.Subscribers = append(simCfg.Subscribers,
		subscribers.NewLoggerSubscriber("event-logger", log.Logger, zerolog.DebugLevel))
	if cfg.Journal.Enabled {
		f, err := os.Create(cfg.Journal.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Journal.Path).Msg("Failed to open event journal")
		}
		defer f.Close()
		simCfg.Subscribers = append(simCfg.Subscribers, subscribers.NewJournalSubscriber("journal", f, log.Logger))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine, err := game.NewEngine(ctx, simCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create simulation")
	}
	interval := time.Duration(cfg.Simulation.TickIntervalMs) * time.Millisecond
	runner := simserver.NewRunner(engine, interval, *ticks, log.Logger)

	log.Info().
		Int("port", *port).
		Str("host", *host).
		Str("sim_id", engine.SimID()).
		Int64("seed", engine.Seed()).
		Dur("tick_interval", interval).
		Msg("Starting simulation server")

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", *host, *port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	grpcServer := grpc.NewServer(simserver.ServerOptions(log.Logger)...)

	monitor := monitoring.NewGoroutineMonitor(log.Logger, 0, 0)
	monitor.RegisterComponent("runner", 1)
	monitor.Start()
	defer monitor.Stop()

	simService := simserver.NewServer(runner, engine.EventBus(), log.Logger)
	simService.SetTracker(monitor)
	simserver.RegisterSimulationServiceServer(grpcServer, simService)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(simserver.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	if *enableReflection {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled")
	}

	if *watchConfig && config.ConfigFilePath() != "" {
		config.WatchConfig(func(next *config.Config) {
			if err := runner.SetTuning(game.TuningFromConfig(next.Planner)); err != nil {
				log.Warn().Err(err).Msg("Rejected planner tuning from reloaded config")
				return
			}
			log.Info().Str("path", config.ConfigFilePath()).Msg("Planner tuning reloaded")
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
		})
	}

	runDone := make(chan error, 1)
	go func() {
		runDone <- runner.Run(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
		if err := <-runDone; err != nil {
			log.Error().Err(err).Msg("Simulation loop failed")
		}
	case err := <-runDone:
		// The simulation ended on its own; keep serving until asked to stop
		// so the final state can still be inspected.
		if err != nil {
			log.Error().Err(err).Msg("Simulation loop failed")
		} else {
			log.Info().Int("tick", engine.Tick()).Msg("Simulation loop finished")
		}
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	}

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(simserver.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	time.Sleep(time.Duration(cfg.Server.GracefulShutdownDelay) * time.Second)

	log.Info().Msg("Gracefully stopping gRPC server")
	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		// open event streams only end when their clients hang up
		log.Warn().Msg("Graceful stop timed out, closing remaining streams")
		grpcServer.Stop()
	}
	log.Info().Msg("Server shutdown complete")
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
