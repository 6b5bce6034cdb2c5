package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the application
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Planner    PlannerConfig    `mapstructure:"planner"`
	Species    SpeciesConfig    `mapstructure:"species"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Journal    JournalConfig    `mapstructure:"journal"`
}

// SimulationConfig holds world generation and tick loop settings
type SimulationConfig struct {
	Width            int   `mapstructure:"width"`
	Height           int   `mapstructure:"height"`
	Owners           int   `mapstructure:"owners"`
	Seed             int64 `mapstructure:"seed"`
	Ticks            int   `mapstructure:"ticks"`
	TickIntervalMs   int   `mapstructure:"tick_interval_ms"`
	WorkersPerOwner  int   `mapstructure:"workers_per_owner"`
	FightersPerOwner int   `mapstructure:"fighters_per_owner"`
	GoldVeinRatio    int   `mapstructure:"gold_vein_ratio"`
	HeartRadius      int   `mapstructure:"heart_radius"`
	MinBaseSpacing   int   `mapstructure:"min_base_spacing"`
	FrontierDepth    int   `mapstructure:"frontier_depth"`
}

// PlannerConfig holds the creature planner thresholds
type PlannerConfig struct {
	FighterManeuverChance float64 `mapstructure:"fighter_maneuver_chance"`
	WorkerManeuverChance  float64 `mapstructure:"worker_maneuver_chance"`
	FindHomeChance        float64 `mapstructure:"find_home_chance"`
	TrainChance           float64 `mapstructure:"train_chance"`
	IdleClaimChance       float64 `mapstructure:"idle_claim_chance"`
	IdleWanderThreshold   float64 `mapstructure:"idle_wander_threshold"`
	WalkAbortChance       float64 `mapstructure:"walk_abort_chance"`
	AttackBreakOffChance  float64 `mapstructure:"attack_break_off_chance"`
	MaxDispatchLoops      int     `mapstructure:"max_dispatch_loops"`
	MaxStackDepth         int     `mapstructure:"max_stack_depth"`
	MaxGoldCarried        int     `mapstructure:"max_gold_carried"`
	GoldPerFullness       float64 `mapstructure:"gold_per_fullness"`
	BattlefieldAgeMin     int     `mapstructure:"battlefield_age_min"`
	BattlefieldAgeMax     int     `mapstructure:"battlefield_age_max"`
	BattlefieldJitter     float64 `mapstructure:"battlefield_jitter"`
	ManeuverPathCap       int     `mapstructure:"maneuver_path_cap"`
	ShortPathCandidates   int     `mapstructure:"short_path_candidates"`
	TrainLevelCap         int     `mapstructure:"train_level_cap"`
	MaxTrainDistance      int     `mapstructure:"max_train_distance"`
}

// SpeciesConfig points at the creature catalog
type SpeciesConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
}

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// JournalConfig holds the event journal settings
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

var (
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Simulation defaults
	v.SetDefault("simulation.width", 48)
	v.SetDefault("simulation.height", 32)
	v.SetDefault("simulation.owners", 2)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.ticks", 500)
	v.SetDefault("simulation.tick_interval_ms", 100)
	v.SetDefault("simulation.workers_per_owner", 3)
	v.SetDefault("simulation.fighters_per_owner", 2)
	v.SetDefault("simulation.gold_vein_ratio", 120)
	v.SetDefault("simulation.heart_radius", 3)
	v.SetDefault("simulation.min_base_spacing", 14)
	v.SetDefault("simulation.frontier_depth", 2)

	// Planner defaults
	v.SetDefault("planner.fighter_maneuver_chance", 0.8)
	v.SetDefault("planner.worker_maneuver_chance", 0.05)
	v.SetDefault("planner.find_home_chance", 0.03)
	v.SetDefault("planner.train_chance", 0.1)
	v.SetDefault("planner.idle_claim_chance", 0.9)
	v.SetDefault("planner.idle_wander_threshold", 0.6)
	v.SetDefault("planner.walk_abort_chance", 0.6)
	v.SetDefault("planner.attack_break_off_chance", 0.6)
	v.SetDefault("planner.max_dispatch_loops", 20)
	v.SetDefault("planner.max_stack_depth", 16)
	v.SetDefault("planner.max_gold_carried", 1500)
	v.SetDefault("planner.gold_per_fullness", 500)
	v.SetDefault("planner.battlefield_age_min", 2)
	v.SetDefault("planner.battlefield_age_max", 6)
	v.SetDefault("planner.battlefield_jitter", 0)
	v.SetDefault("planner.maneuver_path_cap", 5)
	v.SetDefault("planner.short_path_candidates", 5)
	v.SetDefault("planner.train_level_cap", 10)
	v.SetDefault("planner.max_train_distance", 40)

	// Species defaults
	v.SetDefault("species.catalog_path", "")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.enable_reflection", true)
	v.SetDefault("server.graceful_shutdown_delay", 5)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Journal defaults
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", "events.jsonl")
}

// Init initializes the configuration
func Init(configPath string) error {
	nv := viper.New()

	// Set defaults before loading any config
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/creature-sim")
	}

	nv.SetEnvPrefix("CSIM")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case configPath != "" && errors.Is(err, os.ErrNotExist):
			// A named file that does not exist falls back to defaults.
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	next, err := decode(nv)
	if err != nil {
		return err
	}

	mu.Lock()
	v, cfg = nv, next
	mu.Unlock()
	return nil
}

func decode(nv *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := nv.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// Get returns the current config. It loads defaults on first use.
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml, found next to the loaded
// config file or in the working directory, over the current settings.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}
	nv := GetViper()

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if used := nv.ConfigFileUsed(); used != "" {
		if candidate := filepath.Join(filepath.Dir(used), envFile); fileExists(candidate) {
			envFile = candidate
		}
	}
	if !fileExists(envFile) {
		return nil
	}

	nv.SetConfigFile(envFile)
	if err := nv.MergeInConfig(); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}
	return reload(nv)
}

// Set allows runtime config updates
func Set(key string, value any) error {
	nv := GetViper()
	nv.Set(key, value)
	return reload(nv)
}

func reload(nv *viper.Viper) error {
	next, err := decode(nv)
	if err != nil {
		return err
	}
	mu.Lock()
	cfg = next
	mu.Unlock()
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives the
// new config after it validates; an invalid edit keeps the old config and is
// reported through onError.
func WatchConfig(onChange func(*Config), onError func(error)) {
	nv := GetViper()
	nv.OnConfigChange(func(fsnotify.Event) {
		if err := reload(nv); err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if onChange != nil {
			onChange(Get())
		}
	})
	nv.WatchConfig()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Validate validates the configuration values
func Validate(c *Config) error {
	s := c.Simulation
	if s.Width < 8 || s.Height < 8 {
		return fmt.Errorf("%w: simulation map must be at least 8x8", ErrInvalidConfig)
	}
	if s.Owners < 1 || s.Owners > 32 {
		return fmt.Errorf("%w: simulation.owners must be between 1 and 32", ErrInvalidConfig)
	}
	if s.Ticks < 0 {
		return fmt.Errorf("%w: simulation.ticks must be non-negative", ErrInvalidConfig)
	}
	if s.TickIntervalMs < 0 {
		return fmt.Errorf("%w: simulation.tick_interval_ms must be non-negative", ErrInvalidConfig)
	}
	if s.WorkersPerOwner < 0 || s.FightersPerOwner < 0 {
		return fmt.Errorf("%w: creatures per owner must be non-negative", ErrInvalidConfig)
	}
	if s.GoldVeinRatio <= 0 {
		return fmt.Errorf("%w: simulation.gold_vein_ratio must be positive", ErrInvalidConfig)
	}
	if s.HeartRadius < 2 {
		return fmt.Errorf("%w: simulation.heart_radius must be at least 2", ErrInvalidConfig)
	}
	if s.MinBaseSpacing < 1 {
		return fmt.Errorf("%w: simulation.min_base_spacing must be at least 1", ErrInvalidConfig)
	}
	if s.FrontierDepth < 0 {
		return fmt.Errorf("%w: simulation.frontier_depth must be non-negative", ErrInvalidConfig)
	}

	p := c.Planner
	probs := []struct {
		name  string
		value float64
	}{
		{"fighter_maneuver_chance", p.FighterManeuverChance},
		{"worker_maneuver_chance", p.WorkerManeuverChance},
		{"find_home_chance", p.FindHomeChance},
		{"train_chance", p.TrainChance},
		{"idle_claim_chance", p.IdleClaimChance},
		{"idle_wander_threshold", p.IdleWanderThreshold},
		{"walk_abort_chance", p.WalkAbortChance},
		{"attack_break_off_chance", p.AttackBreakOffChance},
	}
	for _, prob := range probs {
		if prob.value < 0 || prob.value > 1 {
			return fmt.Errorf("%w: planner.%s must be between 0 and 1", ErrInvalidConfig, prob.name)
		}
	}
	if p.MaxDispatchLoops < 1 {
		return fmt.Errorf("%w: planner.max_dispatch_loops must be positive", ErrInvalidConfig)
	}
	if p.MaxStackDepth < 2 {
		return fmt.Errorf("%w: planner.max_stack_depth must be at least 2", ErrInvalidConfig)
	}
	if p.MaxGoldCarried < 1 || p.GoldPerFullness < 0 {
		return fmt.Errorf("%w: planner gold limits", ErrInvalidConfig)
	}
	if p.BattlefieldAgeMin < 0 || p.BattlefieldAgeMax < p.BattlefieldAgeMin {
		return fmt.Errorf("%w: planner battlefield age range", ErrInvalidConfig)
	}
	if p.ManeuverPathCap < 2 || p.ShortPathCandidates < 1 {
		return fmt.Errorf("%w: planner path limits", ErrInvalidConfig)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 1 and 65535", ErrInvalidConfig)
	}
	if c.Server.GracefulShutdownDelay < 0 {
		return fmt.Errorf("%w: server.graceful_shutdown_delay must be non-negative", ErrInvalidConfig)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json", ErrInvalidConfig)
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return fmt.Errorf("%w: journal.path is required when the journal is enabled", ErrInvalidConfig)
	}
	return nil
}
