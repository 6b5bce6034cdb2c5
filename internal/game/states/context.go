package states

import (
	"time"

	"github.com/rs/zerolog"
)

// SimContext is the shared record the lifecycle states read and update
type SimContext struct {
	SimID  string
	Logger zerolog.Logger

	// StartTime is when PhaseRunning was first entered
	StartTime time.Time

	// PauseTime is when the current pause began
	PauseTime time.Time

	TotalPauseDuration time.Duration

	// Creatures is the number spawned at start; running needs at least one
	Creatures int

	// Error holds whatever sent the simulation to PhaseError
	Error error
}

// NewSimContext creates a lifecycle context for one simulation
func NewSimContext(simID string, logger zerolog.Logger) *SimContext {
	return &SimContext{
		SimID:  simID,
		Logger: logger.With().Str("sim_id", simID).Logger(),
	}
}

// Elapsed returns the running time since start, excluding pauses
func (sc *SimContext) Elapsed() time.Duration {
	if sc.StartTime.IsZero() {
		return 0
	}
	paused := sc.TotalPauseDuration
	if !sc.PauseTime.IsZero() {
		paused += time.Since(sc.PauseTime)
	}
	return time.Since(sc.StartTime) - paused
}
