package creature

import (
	"math"
	"testing"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttackObject(t *testing.T) {
	t.Run("strikes the nearest enemy", func(t *testing.T) {
		h := newHarness(t, testutil.NewScriptedRandom(0.99), "....")
		c := h.spawn(t, "Goblin", 0, 0, 0)
		enemy := h.spawn(t, "Goblin", 1, 1, 0)
		c.Stack().Push(Do(ActionAttackObject))
		h.planner.updatePerception(c)

		assert.False(t, h.planner.handleAttackObject(c))

		assert.Less(t, enemy.HP, enemy.MaxHP)
		assert.Greater(t, c.Exp, 1.0)
		assert.Greater(t, enemy.Exp, 0.0)
		assert.Equal(t, 99.5, c.Awakeness)
		assert.True(t, c.Stack().TopIs(ActionAttackObject), "high roll keeps fighting")

		attacked := h.events.ofType(events.TypeCreatureAttacked)
		require.Len(t, attacked, 1)
		assert.Equal(t, enemy.ID, attacked[0].Payload()["target_id"])
	})

	t.Run("breaks off into maneuvering", func(t *testing.T) {
		h := newHarness(t, testutil.NewScriptedRandom(0.99, 0.99, 0.1), "....")
		c := h.spawn(t, "Goblin", 0, 0, 0)
		h.spawn(t, "Goblin", 1, 1, 0)
		c.Stack().Push(Do(ActionAttackObject))
		h.planner.updatePerception(c)

		assert.False(t, h.planner.handleAttackObject(c))
		assert.Equal(t, []ActionType{ActionManeuver, ActionIdle}, c.Stack().Types())
	})

	t.Run("maneuvers when nobody is in range", func(t *testing.T) {
		h := newHarness(t, testutil.NewScriptedRandom(0.5), "........")
		c := h.spawn(t, "Goblin", 0, 0, 0)
		h.spawn(t, "Goblin", 1, 6, 0)
		c.Stack().Push(Do(ActionAttackObject))
		h.planner.updatePerception(c)

		assert.True(t, h.planner.handleAttackObject(c))
		assert.True(t, c.Stack().TopIs(ActionManeuver))
	})

	t.Run("stops when no enemy is reachable", func(t *testing.T) {
		h := newHarness(t, testutil.NewScriptedRandom(0.5), "..#..")
		c := h.spawn(t, "Goblin", 0, 0, 0)
		h.spawn(t, "Goblin", 1, 4, 0)
		c.Stack().Push(Do(ActionAttackObject))
		h.planner.updatePerception(c)

		assert.True(t, h.planner.handleAttackObject(c))
		assert.Equal(t, []ActionType{ActionIdle}, c.Stack().Types())
	})
}

func TestStrikeExp(t *testing.T) {
	base := 1 + 0.2*math.Pow(6, 1.3)
	tests := []struct {
		name          string
		attackerLevel int
		targetLevel   int
		want          float64
	}{
		{name: "equal levels", attackerLevel: 5, targetLevel: 5, want: base},
		{name: "stronger target", attackerLevel: 1, targetLevel: 11, want: base * 2},
		{name: "weaker target", attackerLevel: 11, targetLevel: 1, want: base / 2},
		{name: "far weaker target still pays", attackerLevel: 41, targetLevel: 1, want: base / 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker, target := strikeExp(6, tt.attackerLevel, tt.targetLevel)
			assert.InDelta(t, tt.want, attacker, 1e-9)
			assert.InDelta(t, 0.15*base, target, 1e-9)
		})
	}
}

func TestAttackObject_HighLevelAttackerEarnsExp(t *testing.T) {
	h := newHarness(t, testutil.NewScriptedRandom(0.99), "....")
	c := h.spawn(t, "Goblin", 0, 0, 0)
	c.Level = 12
	enemy := h.spawn(t, "Goblin", 1, 1, 0)
	c.Stack().Push(Do(ActionAttackObject))
	h.planner.updatePerception(c)

	h.planner.handleAttackObject(c)

	damage := enemy.MaxHP - enemy.HP
	require.Greater(t, damage, 0.0)
	want := (1 + 0.2*math.Pow(damage, 1.3)) / 2.1
	assert.InDelta(t, want, c.Exp, 1e-9)
}

func TestManeuver(t *testing.T) {
	t.Run("attacks an enemy in range", func(t *testing.T) {
		h := newHarness(t, testutil.NewScriptedRandom(0.5), "....")
		c := h.spawn(t, "Goblin", 0, 0, 0)
		h.spawn(t, "Goblin", 1, 1, 0)
		c.Stack().Push(Do(ActionManeuver))
		h.planner.updatePerception(c)

		assert.True(t, h.planner.handleManeuver(c))
		assert.Equal(t, []ActionType{ActionAttackObject, ActionIdle}, c.Stack().Types())
	})

	t.Run("advances with backup", func(t *testing.T) {
		h := newHarness(t, testutil.NewScriptedRandom(0.5), "..........")
		c := h.spawn(t, "Goblin", 0, 0, 0)
		h.spawn(t, "Troll", 0, 1, 0)
		h.spawn(t, "Goblin", 1, 8, 0)
		c.Stack().Push(Do(ActionManeuver))
		h.planner.updatePerception(c)

		assert.False(t, h.planner.handleManeuver(c))

		assert.Equal(t, 10, c.field.Len())
		assert.Equal(t, 4, c.fieldAge)
		top, _ := c.Stack().Peek()
		assert.Equal(t, WalkTo(xy(5, 0)), top, "route is capped at five steps")
		assert.Equal(t, AnimWalk, c.Animation())
	})

	t.Run("retreats when outnumbered", func(t *testing.T) {
		h := newHarness(t, testutil.NewScriptedRandom(0.5), "..........")
		c := h.spawn(t, "Goblin", 0, 4, 0)
		h.spawn(t, "Goblin", 1, 8, 0)
		h.spawn(t, "Goblin", 1, 9, 0)
		c.Stack().Push(Do(ActionManeuver))
		h.planner.updatePerception(c)

		assert.False(t, h.planner.handleManeuver(c))

		top, _ := c.Stack().Peek()
		assert.Equal(t, ActionWalkToTile, top.Type)
		assert.Less(t, top.Target.X, 4, "moves away from the enemies")
		assert.Equal(t, AnimFlee, c.Animation())
	})

	t.Run("reuses a fresh battlefield", func(t *testing.T) {
		rnd := testutil.NewScriptedRandom(0.5)
		h := newHarness(t, rnd, "..........")
		c := h.spawn(t, "Goblin", 0, 0, 0)
		h.spawn(t, "Goblin", 1, 8, 0)
		c.Stack().Push(Do(ActionManeuver))
		h.planner.updatePerception(c)
		c.fieldAge = 3

		h.planner.handleManeuver(c)

		assert.Zero(t, c.field.Len(), "field is not recomputed while still fresh")
	})
}
