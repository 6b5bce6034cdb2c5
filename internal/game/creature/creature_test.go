package creature

import (
	"math"
	"testing"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/species"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	def := species.DefaultCatalog().MustGet("Goblin")
	c := New(7, def, 1, 2.9, 3.1)

	assert.Equal(t, "Goblin_7", c.Name)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, def.BaseHP, c.HP)
	assert.Equal(t, def.BaseHP, c.MaxHP)
	assert.Equal(t, 100.0, c.Awakeness)
	assert.Equal(t, xy(2, 3), c.Coordinate())
	assert.Equal(t, core.NoRoom, c.TrainingRoom())
	assert.False(t, c.IsWorker())
	assert.True(t, c.Alive())
	assert.Equal(t, []ActionType{ActionIdle}, c.Stack().Types())

	_, hasHome := c.Home()
	assert.False(t, hasHome)
}

func TestCreature_Combat(t *testing.T) {
	cat := species.DefaultCatalog()
	goblin := New(1, cat.MustGet("Goblin"), 0, 0, 0)
	troll := New(2, cat.MustGet("Troll"), 1, 0, 0)

	levelFactor := math.Log(math.Log(2) + 1)

	tests := []struct {
		name     string
		c        *Creature
		distance float64
		want     float64
	}{
		{"goblin adjacent", goblin, 1, 5 * levelFactor},
		{"goblin sword only", goblin, 1.4, 5 * levelFactor},
		{"goblin out of reach", goblin, 3, levelFactor},
		{"troll club", troll, 2, 8 * levelFactor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.c.HitRoll(tt.distance), 1e-9)
		})
	}

	assert.Equal(t, 7.0, goblin.Defense())
	assert.Equal(t, 3.0, troll.Defense())
	assert.Equal(t, 1.5, goblin.MaxRange())
	assert.Equal(t, 2.0, troll.MaxRange())
}

func TestCreature_DamageAndExp(t *testing.T) {
	c := New(1, species.DefaultCatalog().MustGet("Kobold"), 0, 0, 0)

	c.TakeDamage(-5)
	assert.Equal(t, 10.0, c.HP, "negative damage heals nothing")
	c.TakeDamage(12)
	assert.False(t, c.Alive())

	c.ReceiveExp(2)
	c.ReceiveExp(-10)
	assert.Equal(t, 2.0, c.Exp)
}

func TestCreature_BarehandedHasNoWeapon(t *testing.T) {
	def := &species.Definition{ClassName: "Imp", SightRadius: 5, MoveSpeed: 1, BaseHP: 5, MaxHP: 5}
	require.NoError(t, def.Validate())

	c := New(3, def, 0, 0, 0)
	assert.Equal(t, NoWeapon, c.WeaponL)
	assert.Equal(t, NoWeapon, c.WeaponR)
	assert.Equal(t, 3.0, c.Defense())
}
