package states

import "fmt"

// Phase is a step in a simulation's lifecycle
type Phase int

const (
	// PhaseInitializing - world generation and spawning
	PhaseInitializing Phase = iota

	// PhaseRunning - ticks are being processed
	PhaseRunning

	// PhasePaused - ticking suspended, world kept
	PhasePaused

	// PhaseStopped - final state after a clean shutdown or tick limit
	PhaseStopped

	// PhaseError - final state after a failure
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseStopped:
		return "Stopped"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if nothing can follow this phase
func (p Phase) IsTerminal() bool {
	return p == PhaseStopped || p == PhaseError
}

// CanTick returns true if the simulation may advance in this phase
func (p Phase) CanTick() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the phases reachable from p
func (p Phase) AllowedTransitions() []Phase {
	switch p {
	case PhaseInitializing:
		return []Phase{PhaseRunning, PhaseStopped, PhaseError}
	case PhaseRunning:
		return []Phase{PhasePaused, PhaseStopped, PhaseError}
	case PhasePaused:
		return []Phase{PhaseRunning, PhaseStopped, PhaseError}
	default:
		return []Phase{}
	}
}

// CanTransitionTo checks if a transition from p to target is allowed
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a name back to a Phase
func ParsePhase(s string) (Phase, error) {
	for p := PhaseInitializing; p <= PhaseError; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseInitializing, fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}
