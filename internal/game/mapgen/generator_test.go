package mapgen

import (
	"testing"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/rooms"
	"github.com/mitchelldurbincs/CreatureSim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMapConfig(t *testing.T) {
	w, h, owners := 48, 32, 2
	config := DefaultMapConfig(w, h, owners)

	assert.Equal(t, w, config.Width)
	assert.Equal(t, h, config.Height)
	assert.Equal(t, owners, config.OwnerCount)
	assert.Equal(t, 3, config.HeartRadius)
	assert.Equal(t, (w*h)/120, config.NumGoldVeins)
	assert.Equal(t, 8, config.MaxVeinLength)
}

func TestNewGenerator(t *testing.T) {
	config := DefaultMapConfig(20, 20, 1)
	rng := testutil.NewTestRNG(12345)
	generator := NewGenerator(config, rng)

	require.NotNil(t, generator)
	assert.Equal(t, config, generator.config)
	assert.Same(t, rng, generator.rng)
}

func TestGenerateMap_Border(t *testing.T) {
	d, err := NewGenerator(DefaultMapConfig(30, 20, 1), testutil.NewTestRNG(1)).GenerateMap()
	require.NoError(t, err)

	g := d.Grid
	for x := 0; x < g.W; x++ {
		assert.Equal(t, core.TileRock, g.Tile(x, 0).Type)
		assert.Equal(t, core.TileRock, g.Tile(x, g.H-1).Type)
	}
	for y := 0; y < g.H; y++ {
		assert.Equal(t, core.TileRock, g.Tile(0, y).Type)
		assert.Equal(t, core.TileRock, g.Tile(g.W-1, y).Type)
	}
}

func TestGenerateMap_Bases(t *testing.T) {
	config := DefaultMapConfig(48, 32, 2)
	d, err := NewGenerator(config, testutil.NewTestRNG(12345)).GenerateMap()
	require.NoError(t, err)
	require.Len(t, d.Bases, 2)

	for _, base := range d.Bases {
		t.Run(base.Center.String(), func(t *testing.T) {
			tiles := base.Tiles(d.Grid)
			require.Len(t, tiles, 49)
			for _, tile := range tiles {
				assert.Equal(t, core.Walkable, tile.Passability())
				assert.True(t, tile.IsClaimedBy(base.Owner))
			}

			assert.Len(t, d.Rooms.Treasuries(base.Owner), 1)
			assert.Len(t, d.Rooms.TrainingRooms(base.Owner), 1)
			quarters := d.Rooms.Quarters(base.Owner)
			require.Len(t, quarters, 1)
			assert.NotNil(t, quarters[0].LocationForBed(2, 2), "quarters fit the largest bed")

			center := d.Grid.TileAt(base.Center)
			_, inRoom := d.Rooms.RoomAt(center)
			assert.False(t, inRoom, "the centre row stays free for spawning")
		})
	}

	a, b := d.Bases[0].Center, d.Bases[1].Center
	assert.GreaterOrEqual(t, a.Manhattan(b), config.MinBaseSpacing)
}

func TestGenerateMap_Frontier(t *testing.T) {
	config := DefaultMapConfig(30, 20, 1)
	config.NumGoldVeins = 0
	d, err := NewGenerator(config, testutil.NewTestRNG(7)).GenerateMap()
	require.NoError(t, err)

	base := d.Bases[0]
	marked := 0
	for i := range d.Grid.T {
		tile := &d.Grid.T[i]
		if tile.IsMarkedBy(base.Owner) {
			marked++
			assert.True(t, tile.IsDiggable())
		}
	}
	assert.Greater(t, marked, 0)

	// A wall touching the base is always marked.
	above := d.Grid.Tile(base.Center.X, base.Center.Y-base.Radius-1)
	assert.True(t, above.IsMarkedBy(base.Owner))
}

func TestGenerateMap_GoldVeins(t *testing.T) {
	config := DefaultMapConfig(40, 40, 0)
	config.NumGoldVeins = 10
	d, err := NewGenerator(config, testutil.NewTestRNG(99)).GenerateMap()
	require.NoError(t, err)

	gold := 0
	for i := range d.Grid.T {
		tile := &d.Grid.T[i]
		if tile.Type == core.TileGold {
			gold++
			assert.True(t, tile.IsSolid())
			assert.True(t, tile.IsDiggable())
		}
	}
	assert.Greater(t, gold, 0)
	assert.LessOrEqual(t, gold, config.NumGoldVeins*config.MaxVeinLength)
}

func TestGenerateMap_Deterministic(t *testing.T) {
	config := DefaultMapConfig(48, 32, 3)
	d1, err := NewGenerator(config, testutil.NewTestRNG(5)).GenerateMap()
	require.NoError(t, err)
	d2, err := NewGenerator(config, testutil.NewTestRNG(5)).GenerateMap()
	require.NoError(t, err)

	assert.Equal(t, d1.Bases, d2.Bases)
	for i := range d1.Grid.T {
		assert.Equal(t, d1.Grid.T[i].Type, d2.Grid.T[i].Type)
	}
}

func TestGenerateMap_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config MapConfig
		err    error
	}{
		{"degenerate", DefaultMapConfig(2, 2, 0), ErrInvalidMapShape},
		{"base does not fit", DefaultMapConfig(8, 8, 1), ErrMapTooSmall},
		{"too crowded", DefaultMapConfig(20, 12, 4), ErrNoBaseLocation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.config, testutil.NewTestRNG(1)).GenerateMap()
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBaseRoomsAreOwned(t *testing.T) {
	d, err := NewGenerator(DefaultMapConfig(48, 32, 2), testutil.NewTestRNG(3)).GenerateMap()
	require.NoError(t, err)

	for _, kind := range []rooms.Kind{rooms.KindTreasury, rooms.KindQuarters, rooms.KindTrainingRoom} {
		for owner := 0; owner < 2; owner++ {
			for _, r := range d.Rooms.ByKind(kind, owner) {
				assert.Equal(t, owner, r.Owner())
				for _, tile := range r.Tiles() {
					assert.Equal(t, r.ID(), tile.Room)
				}
			}
		}
	}
}
