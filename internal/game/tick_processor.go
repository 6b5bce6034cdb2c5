package game

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/rs/zerolog"
)

// TickProcessor handles the orchestration of a single tick
type TickProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTickProcessor creates a new tick processor
func NewTickProcessor(engine *Engine) *TickProcessor {
	return &TickProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessTick runs one full tick. Once started, a tick always completes so
// the world is never left with half the creatures having acted.
func (tp *TickProcessor) ProcessTick(ctx context.Context) error {
	if err := tp.checkContext(ctx, "before starting"); err != nil {
		return err
	}
	if err := tp.validateSimState(); err != nil {
		return err
	}

	tp.engine.tick++
	tickLogger := tp.logger.With().Int("tick", tp.engine.tick).Logger()
	tickLogger.Debug().Msg("Starting simulation tick")

	tickStart := time.Now()
	tp.engine.eventBus.Publish(events.NewTickStartedEvent(tp.engine.simID, tp.engine.tick))

	acted := tp.processCreaturesPhase()
	removed := tp.engine.removeDead(tickLogger)

	elapsed := time.Since(tickStart)
	tp.engine.eventBus.Publish(events.NewTickEndedEvent(tp.engine.simID, tp.engine.tick, tp.engine.living, elapsed))

	tickLogger.Debug().
		Int("acted", acted).
		Int("died", removed).
		Int("living", tp.engine.living).
		Dur("elapsed", elapsed).
		Msg("Simulation tick finished")
	return nil
}

// processCreaturesPhase runs each creature's cycle in id order. A creature
// that dies part way through the tick skips its remaining turn.
func (tp *TickProcessor) processCreaturesPhase() int {
	acted := 0
	for _, c := range tp.engine.creatures {
		if !c.OnMap || !c.Alive() {
			continue
		}
		tp.engine.planner.Tick(c)
		acted++
	}
	return acted
}

// validateSimState ensures the lifecycle allows ticking
func (tp *TickProcessor) validateSimState() error {
	phase := tp.engine.lifecycle.CurrentPhase()
	if !phase.CanTick() {
		tp.logger.Warn().
			Str("current_phase", phase.String()).
			Int("tick", tp.engine.tick).
			Msg("Attempted to step simulation in phase that cannot tick")
		return fmt.Errorf("%w: simulation is %s", ErrNotRunning, phase)
	}
	return nil
}

func (tp *TickProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("tick", tp.engine.tick).
			Str("phase", phase).
			Msg("Simulation tick cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}
