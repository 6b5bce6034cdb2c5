package states

import (
	"fmt"
	"time"
)

// State is one lifecycle phase with its entry and exit hooks
type State interface {
	Phase() Phase
	Enter(ctx *SimContext) error
	Exit(ctx *SimContext) error
	// Validate checks the context allows entering this state
	Validate(ctx *SimContext) error
}

type InitializingState struct{}

func NewInitializingState() State { return &InitializingState{} }

func (s *InitializingState) Phase() Phase { return PhaseInitializing }

func (s *InitializingState) Enter(ctx *SimContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *SimContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(*SimContext) error { return nil }

// RunningState is active ticking
type RunningState struct{}

func NewRunningState() State { return &RunningState{} }

func (s *RunningState) Phase() Phase { return PhaseRunning }

func (s *RunningState) Enter(ctx *SimContext) error {
	if ctx.StartTime.IsZero() {
		ctx.StartTime = time.Now()
		ctx.Logger.Info().
			Time("start_time", ctx.StartTime).
			Int("creatures", ctx.Creatures).
			Msg("Simulation started")
	}
	return nil
}

func (s *RunningState) Exit(ctx *SimContext) error {
	ctx.Logger.Debug().Dur("elapsed", ctx.Elapsed()).Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *SimContext) error {
	if ctx.Creatures < 1 {
		return fmt.Errorf("cannot run a simulation with no creatures")
	}
	return nil
}

// PausedState keeps the world but stops the clock
type PausedState struct{}

func NewPausedState() State { return &PausedState{} }

func (s *PausedState) Phase() Phase { return PhasePaused }

func (s *PausedState) Enter(ctx *SimContext) error {
	ctx.PauseTime = time.Now()
	ctx.Logger.Info().Msg("Simulation paused")
	return nil
}

func (s *PausedState) Exit(ctx *SimContext) error {
	if !ctx.PauseTime.IsZero() {
		pauseDuration := time.Since(ctx.PauseTime)
		ctx.TotalPauseDuration += pauseDuration
		ctx.PauseTime = time.Time{}
		ctx.Logger.Info().
			Dur("pause_duration", pauseDuration).
			Dur("total_pause_duration", ctx.TotalPauseDuration).
			Msg("Simulation resumed")
	}
	return nil
}

func (s *PausedState) Validate(ctx *SimContext) error {
	if ctx.StartTime.IsZero() {
		return fmt.Errorf("cannot pause a simulation that hasn't started")
	}
	return nil
}

type StoppedState struct{}

func NewStoppedState() State { return &StoppedState{} }

func (s *StoppedState) Phase() Phase { return PhaseStopped }

func (s *StoppedState) Enter(ctx *SimContext) error {
	ctx.Logger.Info().Dur("run_duration", ctx.Elapsed()).Msg("Simulation stopped")
	return nil
}

func (s *StoppedState) Exit(*SimContext) error     { return nil }
func (s *StoppedState) Validate(*SimContext) error { return nil }

type ErrorState struct{}

func NewErrorState() State { return &ErrorState{} }

func (s *ErrorState) Phase() Phase { return PhaseError }

func (s *ErrorState) Enter(ctx *SimContext) error {
	ctx.Logger.Error().Err(ctx.Error).Msg("Simulation entered error state")
	return nil
}

func (s *ErrorState) Exit(*SimContext) error { return nil }

func (s *ErrorState) Validate(ctx *SimContext) error {
	if ctx.Error == nil {
		return fmt.Errorf("error state requires an error in context")
	}
	return nil
}
