package creature

import "github.com/mitchelldurbincs/CreatureSim/internal/game/core"

// ActionType is one state of the creature planner.
type ActionType int

const (
	ActionIdle ActionType = iota
	ActionWalkToTile
	ActionClaimTile
	ActionClaimWallTile
	ActionDigTile
	ActionDepositGold
	ActionFindHome
	ActionSleep
	ActionTrain
	ActionAttackObject
	ActionManeuver
)

var actionNames = [...]string{
	ActionIdle:          "Idle",
	ActionWalkToTile:    "WalkToTile",
	ActionClaimTile:     "ClaimTile",
	ActionClaimWallTile: "ClaimWallTile",
	ActionDigTile:       "DigTile",
	ActionDepositGold:   "DepositGold",
	ActionFindHome:      "FindHome",
	ActionSleep:         "Sleep",
	ActionTrain:         "Train",
	ActionAttackObject:  "AttackObject",
	ActionManeuver:      "Maneuver",
}

func (a ActionType) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// Action is one entry of a creature's action stack. Target is set for walks
// and names the final destination.
type Action struct {
	Type      ActionType
	Target    core.Coordinate
	HasTarget bool
}

// Do builds an action without associated data.
func Do(t ActionType) Action { return Action{Type: t} }

// WalkTo builds a WalkToTile action heading for dest.
func WalkTo(dest core.Coordinate) Action {
	return Action{Type: ActionWalkToTile, Target: dest, HasTarget: true}
}

func (a Action) String() string {
	if a.HasTarget {
		return a.Type.String() + a.Target.String()
	}
	return a.Type.String()
}
