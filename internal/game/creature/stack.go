package creature

// DefaultMaxStackDepth bounds how many goals a creature can have queued.
const DefaultMaxStackDepth = 16

// ActionStack is a creature's goal stack. Its bottom element is always Idle,
// which Pop never removes.
type ActionStack struct {
	actions  []Action // bottom first
	maxDepth int
}

// NewActionStack returns [Idle]. maxDepth <= 0 means unbounded.
func NewActionStack(maxDepth int) *ActionStack {
	return &ActionStack{actions: []Action{Do(ActionIdle)}, maxDepth: maxDepth}
}

// Push adds a on top. It reports false when the stack is full.
func (s *ActionStack) Push(a Action) bool {
	if s.maxDepth > 0 && len(s.actions) >= s.maxDepth {
		return false
	}
	s.actions = append(s.actions, a)
	return true
}

// Pop removes and returns the top action unless only the Idle floor is left.
func (s *ActionStack) Pop() (Action, bool) {
	if len(s.actions) <= 1 {
		return Action{}, false
	}
	top := s.actions[len(s.actions)-1]
	s.actions = s.actions[:len(s.actions)-1]
	return top, true
}

// Peek returns the top action. It is false only for a zero-value stack.
func (s *ActionStack) Peek() (Action, bool) {
	return s.At(0)
}

// At returns the action depth entries below the top.
func (s *ActionStack) At(depth int) (Action, bool) {
	i := len(s.actions) - 1 - depth
	if depth < 0 || i < 0 {
		return Action{}, false
	}
	return s.actions[i], true
}

// TopIs reports whether the top action has type t.
func (s *ActionStack) TopIs(t ActionType) bool {
	a, ok := s.Peek()
	return ok && a.Type == t
}

func (s *ActionStack) Len() int { return len(s.actions) }

// Contains reports whether any queued action has one of the given types.
func (s *ActionStack) Contains(types ...ActionType) bool {
	for _, a := range s.actions {
		for _, t := range types {
			if a.Type == t {
				return true
			}
		}
	}
	return false
}

// Clear drops everything but the Idle floor.
func (s *ActionStack) Clear() {
	s.actions = append(s.actions[:0], Do(ActionIdle))
}

// Types lists the queued action types, top first.
func (s *ActionStack) Types() []ActionType {
	out := make([]ActionType, 0, len(s.actions))
	for i := len(s.actions) - 1; i >= 0; i-- {
		out = append(out, s.actions[i].Type)
	}
	return out
}

// SetMaxDepth changes the bound. Entries already queued are kept.
func (s *ActionStack) SetMaxDepth(maxDepth int) { s.maxDepth = maxDepth }
