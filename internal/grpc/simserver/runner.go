package simserver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CreatureSim/internal/game"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/creature"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/states"
)

// Runner drives one engine on a fixed tick interval and serialises every
// other access to it.
type Runner struct {
	mu       sync.Mutex
	engine   *game.Engine
	interval time.Duration
	maxTicks int
	logger   zerolog.Logger
}

// NewRunner wraps engine. maxTicks of zero runs until the context ends.
func NewRunner(engine *game.Engine, interval time.Duration, maxTicks int, logger zerolog.Logger) *Runner {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Runner{
		engine:   engine,
		interval: interval,
		maxTicks: maxTicks,
		logger:   logger.With().Str("component", "runner").Logger(),
	}
}

// Run ticks until ctx ends, the tick limit is reached or a tick fails. The
// simulation is left stopped on a clean exit and in the error phase otherwise.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info().
		Dur("interval", r.interval).
		Int("max_ticks", r.maxTicks).
		Msg("Simulation loop started")

	for {
		select {
		case <-ctx.Done():
			r.stop("shutdown requested")
			return nil
		case <-ticker.C:
			done, err := r.step(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// step advances one tick unless paused. It reports whether the loop is over.
func (r *Runner) step(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	phase := r.engine.Phase()
	switch {
	case phase.IsTerminal():
		return true, nil
	case phase == states.PhasePaused:
		return false, nil
	}

	if err := r.engine.Step(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			r.stopLocked("shutdown requested")
			return true, nil
		}
		if failErr := r.engine.Fail(err); failErr != nil {
			r.logger.Error().Err(failErr).Msg("Failed to record simulation error")
		}
		return true, err
	}

	if r.maxTicks > 0 && r.engine.Tick() >= r.maxTicks {
		r.stopLocked("tick limit reached")
		return true, nil
	}
	return false, nil
}

func (r *Runner) stop(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked(reason)
}

func (r *Runner) stopLocked(reason string) {
	if r.engine.Phase().IsTerminal() {
		return
	}
	if err := r.engine.Stop(reason); err != nil {
		r.logger.Warn().Err(err).Str("reason", reason).Msg("Failed to stop simulation")
	}
}

func (r *Runner) Stats() game.Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Stats()
}

func (r *Runner) Phase() states.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Phase()
}

// Render returns the current map and the tick it shows.
func (r *Runner) Render(color bool) (string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Render(color), r.engine.Tick()
}

// Pause suspends a running simulation. A simulation that has not ticked yet
// is started first so it can be paused.
func (r *Runner) Pause(reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine.Phase() == states.PhaseInitializing {
		if err := r.engine.Start(); err != nil {
			return err
		}
	}
	return r.engine.Pause(reason)
}

// Resume continues a paused simulation, or starts one that has not ticked.
func (r *Runner) Resume(reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.engine.Phase() == states.PhaseInitializing {
		return r.engine.Start()
	}
	return r.engine.Resume(reason)
}

func (r *Runner) MarkForDigging(owner, x, y int, marked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.MarkForDigging(owner, x, y, marked)
}

// SetTuning swaps planner thresholds between ticks.
func (r *Runner) SetTuning(t creature.Tuning) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.SetTuning(t)
}
