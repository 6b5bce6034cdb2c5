package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
)

// Transition is one entry in the machine's history
type Transition struct {
	From      Phase
	To        Phase
	Timestamp time.Time
	Reason    string
}

// StateMachine guards a simulation's lifecycle. It is safe for concurrent use.
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   Phase
	states         map[Phase]State
	context        *SimContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine starts in PhaseInitializing. publisher may be nil.
func NewStateMachine(ctx *SimContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseInitializing,
		states:         make(map[Phase]State),
		context:        ctx,
		maxHistorySize: 100,
		publisher:      publisher,
	}
	for _, s := range []State{
		NewInitializingState(),
		NewRunningState(),
		NewPausedState(),
		NewStoppedState(),
		NewErrorState(),
	} {
		sm.states[s.Phase()] = s
	}
	return sm
}

// RegisterState replaces the implementation for a phase
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[state.Phase()] = state
}

func (sm *StateMachine) CurrentPhase() Phase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentPhase
}

// TransitionTo moves to targetPhase, running exit and enter hooks. A failed
// enter leaves the machine in its previous phase.
func (sm *StateMachine) TransitionTo(targetPhase Phase, reason string) error {
	sm.mu.Lock()
	previousPhase, err := sm.transitionLocked(targetPhase, reason)
	sm.mu.Unlock()
	if err != nil {
		return err
	}

	// Published outside the lock so subscribers may query the machine.
	if sm.publisher != nil {
		sm.publisher.Publish(events.NewPhaseChangedEvent(
			sm.context.SimID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Info().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")
	return nil
}

func (sm *StateMachine) transitionLocked(targetPhase Phase, reason string) (Phase, error) {
	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return sm.currentPhase, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]
	if !hasTargetState {
		return sm.currentPhase, fmt.Errorf("%w: %s", ErrNoState, targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return sm.currentPhase, fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase
	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return sm.currentPhase, fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.history = append(sm.history, Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})
	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}

	return previousPhase, nil
}

// Fail records err and moves to PhaseError
func (sm *StateMachine) Fail(err error) error {
	sm.mu.Lock()
	sm.context.Error = err
	sm.mu.Unlock()
	return sm.TransitionTo(PhaseError, err.Error())
}

// History returns a copy of the recorded transitions, oldest first
func (sm *StateMachine) History() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]Transition, len(sm.history))
	copy(out, sm.history)
	return out
}

func (sm *StateMachine) Context() *SimContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.context
}

func (sm *StateMachine) CanTransitionTo(targetPhase Phase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentPhase.CanTransitionTo(targetPhase)
}
