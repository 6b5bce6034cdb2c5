package states

import (
	"errors"
	"testing"
	"time"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phaseRecorder struct {
	got []*events.PhaseChangedEvent
}

func (r *phaseRecorder) Publish(e events.Event) {
	if pc, ok := e.(*events.PhaseChangedEvent); ok {
		r.got = append(r.got, pc)
	}
}

func newMachine(creatures int) (*StateMachine, *phaseRecorder) {
	ctx := NewSimContext("sim-test", testutil.NopLogger())
	ctx.Creatures = creatures
	rec := &phaseRecorder{}
	return NewStateMachine(ctx, rec), rec
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseInitializing, "Initializing"},
		{PhaseRunning, "Running"},
		{PhasePaused, "Paused"},
		{PhaseStopped, "Stopped"},
		{PhaseError, "Error"},
		{Phase(42), "Unknown(42)"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestPhase_Properties(t *testing.T) {
	assert.True(t, PhaseStopped.IsTerminal())
	assert.True(t, PhaseError.IsTerminal())
	assert.False(t, PhasePaused.IsTerminal())

	assert.True(t, PhaseRunning.CanTick())
	assert.False(t, PhasePaused.CanTick())
	assert.False(t, PhaseInitializing.CanTick())
}

func TestPhase_Transitions(t *testing.T) {
	tests := []struct {
		from    Phase
		to      Phase
		allowed bool
	}{
		{PhaseInitializing, PhaseRunning, true},
		{PhaseInitializing, PhaseStopped, true},
		{PhaseInitializing, PhasePaused, false},
		{PhaseRunning, PhasePaused, true},
		{PhaseRunning, PhaseStopped, true},
		{PhasePaused, PhaseRunning, true},
		{PhasePaused, PhaseInitializing, false},
		{PhaseStopped, PhaseRunning, false},
		{PhaseError, PhaseRunning, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParsePhase(t *testing.T) {
	p, err := ParsePhase("Paused")
	require.NoError(t, err)
	assert.Equal(t, PhasePaused, p)

	_, err = ParsePhase("Lobby")
	assert.ErrorIs(t, err, ErrUnknownPhase)
}

func TestStateMachine_Lifecycle(t *testing.T) {
	sm, rec := newMachine(3)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())

	require.NoError(t, sm.TransitionTo(PhaseRunning, "world ready"))
	assert.False(t, sm.Context().StartTime.IsZero())

	require.NoError(t, sm.TransitionTo(PhasePaused, "operator"))
	assert.False(t, sm.Context().PauseTime.IsZero())

	require.NoError(t, sm.TransitionTo(PhaseRunning, "operator"))
	assert.True(t, sm.Context().PauseTime.IsZero())

	require.NoError(t, sm.TransitionTo(PhaseStopped, "tick limit"))
	assert.True(t, sm.CurrentPhase().IsTerminal())

	history := sm.History()
	require.Len(t, history, 4)
	assert.Equal(t, PhaseInitializing, history[0].From)
	assert.Equal(t, PhaseStopped, history[3].To)
	assert.Equal(t, "tick limit", history[3].Reason)

	require.Len(t, rec.got, 4)
	assert.Equal(t, "Running", rec.got[0].To)
	assert.Equal(t, "sim-test", rec.got[0].SimID())
}

func TestStateMachine_RejectsInvalidTransition(t *testing.T) {
	sm, rec := newMachine(1)

	err := sm.TransitionTo(PhasePaused, "too early")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	assert.Empty(t, sm.History())
	assert.Empty(t, rec.got)
}

func TestStateMachine_ValidationFailureKeepsPhase(t *testing.T) {
	sm, _ := newMachine(0)

	err := sm.TransitionTo(PhaseRunning, "empty world")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no creatures")
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
}

func TestStateMachine_Fail(t *testing.T) {
	sm, _ := newMachine(2)
	require.NoError(t, sm.TransitionTo(PhaseRunning, "start"))

	boom := errors.New("boom")
	require.NoError(t, sm.Fail(boom))
	assert.Equal(t, PhaseError, sm.CurrentPhase())
	assert.ErrorIs(t, sm.Context().Error, boom)
}

type failingEnter struct{ RunningState }

func (failingEnter) Enter(*SimContext) error { return errors.New("refused") }

func TestStateMachine_EnterFailureRollsBack(t *testing.T) {
	sm, rec := newMachine(2)
	sm.RegisterState(&failingEnter{})

	err := sm.TransitionTo(PhaseRunning, "start")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	assert.Empty(t, rec.got)
}

func TestSimContext_ElapsedExcludesPauses(t *testing.T) {
	ctx := NewSimContext("sim", testutil.NopLogger())
	assert.Zero(t, ctx.Elapsed())

	ctx.StartTime = time.Now().Add(-10 * time.Second)
	ctx.TotalPauseDuration = 4 * time.Second
	elapsed := ctx.Elapsed()
	assert.InDelta(t, 6*time.Second, elapsed, float64(time.Second))
}
