package creature

import (
	"errors"
	"fmt"
)

var ErrInvalidTuning = errors.New("invalid planner tuning")

// Tuning holds every threshold the planner uses.
type Tuning struct {
	FighterManeuverChance float64
	WorkerManeuverChance  float64
	FindHomeChance        float64
	TrainChance           float64
	IdleClaimChance       float64
	IdleWanderThreshold   float64
	WalkAbortChance       float64
	AttackBreakOffChance  float64

	MaxDispatchLoops int
	MaxStackDepth    int

	MaxGoldCarried  int
	GoldPerFullness float64

	BattlefieldAgeMin int
	BattlefieldAgeMax int
	BattlefieldJitter float64
	ManeuverPathCap   int

	ShortPathCandidates int

	TrainLevelCap      int
	TrainWaitMin       int
	TrainWaitMax       int
	TrainExp           float64
	TrainAwakenessCost float64
	MaxTrainDistance   int

	SleepAwakenessRegen float64
	SleepHPRegen        float64
	SleepManaRegen      float64

	HPRegen        float64
	ManaRegen      float64
	AwakenessDecay float64

	MaxLevel       int
	MaxGrowthLevel int
}

// DefaultTuning returns the stock planner thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		FighterManeuverChance: 0.8,
		WorkerManeuverChance:  0.05,
		FindHomeChance:        0.03,
		TrainChance:           0.1,
		IdleClaimChance:       0.9,
		IdleWanderThreshold:   0.6,
		WalkAbortChance:       0.6,
		AttackBreakOffChance:  0.6,

		MaxDispatchLoops: 20,
		MaxStackDepth:    DefaultMaxStackDepth,

		MaxGoldCarried:  1500,
		GoldPerFullness: 500,

		BattlefieldAgeMin: 2,
		BattlefieldAgeMax: 6,
		BattlefieldJitter: 0,
		ManeuverPathCap:   5,

		ShortPathCandidates: 5,

		TrainLevelCap:      10,
		TrainWaitMin:       3,
		TrainWaitMax:       8,
		TrainExp:           5,
		TrainAwakenessCost: 5,
		MaxTrainDistance:   40,

		SleepAwakenessRegen: 4,
		SleepHPRegen:        1,
		SleepManaRegen:      4,

		HPRegen:        0.1,
		ManaRegen:      0.45,
		AwakenessDecay: 0.15,

		MaxLevel:       100,
		MaxGrowthLevel: 30,
	}
}

// Validate rejects tunings that would break the planner's invariants.
func (t Tuning) Validate() error {
	probs := map[string]float64{
		"fighter_maneuver_chance": t.FighterManeuverChance,
		"worker_maneuver_chance":  t.WorkerManeuverChance,
		"find_home_chance":        t.FindHomeChance,
		"train_chance":            t.TrainChance,
		"idle_claim_chance":       t.IdleClaimChance,
		"idle_wander_threshold":   t.IdleWanderThreshold,
		"walk_abort_chance":       t.WalkAbortChance,
		"attack_break_off_chance": t.AttackBreakOffChance,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: %s must be in [0,1], got %g", ErrInvalidTuning, name, p)
		}
	}
	switch {
	case t.MaxDispatchLoops < 1:
		return fmt.Errorf("%w: max_dispatch_loops must be positive", ErrInvalidTuning)
	case t.MaxStackDepth < 2:
		return fmt.Errorf("%w: max_stack_depth must leave room above Idle", ErrInvalidTuning)
	case t.MaxGoldCarried < 1:
		return fmt.Errorf("%w: max_gold_carried must be positive", ErrInvalidTuning)
	case t.BattlefieldAgeMin < 0 || t.BattlefieldAgeMax < t.BattlefieldAgeMin:
		return fmt.Errorf("%w: battlefield age range [%d,%d]", ErrInvalidTuning, t.BattlefieldAgeMin, t.BattlefieldAgeMax)
	case t.TrainWaitMin < 0 || t.TrainWaitMax < t.TrainWaitMin:
		return fmt.Errorf("%w: train wait range [%d,%d]", ErrInvalidTuning, t.TrainWaitMin, t.TrainWaitMax)
	case t.ShortPathCandidates < 1 || t.ManeuverPathCap < 2:
		return fmt.Errorf("%w: path candidate limits", ErrInvalidTuning)
	case t.MaxLevel < 1 || t.MaxGrowthLevel > t.MaxLevel:
		return fmt.Errorf("%w: level caps", ErrInvalidTuning)
	}
	return nil
}
