package rooms

import (
	"testing"

	"github.com/mitchelldurbincs/CreatureSim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreasury_DepositGold(t *testing.T) {
	g := testutil.GridFromASCII("00")
	r := NewRegistry(g)
	room, err := r.Add(KindTreasury, 0, block(g, 0, 0, 1, 0))
	require.NoError(t, err)
	tr := room.(*Treasury)

	assert.Equal(t, 2*TreasuryCapacityPerTile, tr.EmptyStorageSpace())

	taken := tr.DepositGold(1500, g.Tile(1, 0))
	assert.Equal(t, 1500, taken)
	assert.Equal(t, 1500, tr.TotalGold())
	assert.Equal(t, 500, tr.EmptyStorageSpace())

	taken = tr.DepositGold(900, g.Tile(0, 0))
	assert.Equal(t, 500, taken, "only what fits is taken")
	assert.Equal(t, 0, tr.EmptyStorageSpace())

	assert.Equal(t, 0, tr.DepositGold(-5, g.Tile(0, 0)))
}

func TestQuarters_BedPlacement(t *testing.T) {
	g := testutil.GridFromASCII(
		"000",
		"000",
	)
	r := NewRegistry(g)
	room, err := r.Add(KindQuarters, 0, block(g, 0, 0, 2, 1))
	require.NoError(t, err)
	q := room.(*Quarters)

	loc := q.LocationForBed(2, 2)
	require.NotNil(t, loc)
	assert.Equal(t, g.Tile(0, 0), loc)

	require.True(t, q.ClaimTileForSleeping(loc, 1, 2, 2))
	home, ok := q.BedOf(1)
	require.True(t, ok)
	assert.Equal(t, loc.Coordinate(), home)

	assert.False(t, q.ClaimTileForSleeping(g.Tile(2, 0), 1, 1, 1), "one bed per creature")
	assert.Nil(t, q.LocationForBed(2, 2), "only one column left")
	assert.Equal(t, g.Tile(2, 0), q.LocationForBed(1, 2))

	sleeper, ok := q.SleeperAt(g.Tile(1, 1))
	require.True(t, ok)
	assert.Equal(t, 1, sleeper)

	assert.False(t, q.ClaimTileForSleeping(g.Tile(1, 0), 2, 1, 1), "tile reserved for another creature")

	q.ReleaseBed(1)
	assert.Equal(t, g.Tile(0, 0), q.LocationForBed(2, 2))
}

func TestQuarters_ClaimTriesBothOrientations(t *testing.T) {
	g := testutil.GridFromASCII(
		"0",
		"0",
	)
	r := NewRegistry(g)
	room, err := r.Add(KindQuarters, 0, block(g, 0, 0, 0, 1))
	require.NoError(t, err)
	q := room.(*Quarters)

	assert.True(t, q.ClaimTileForSleeping(g.Tile(0, 0), 3, 2, 1))
}

func TestTrainingRoom_Slots(t *testing.T) {
	g := testutil.GridFromASCII("000000")
	r := NewRegistry(g)
	room, err := r.Add(KindTrainingRoom, 0, block(g, 0, 0, 5, 0))
	require.NoError(t, err)
	tr := room.(*TrainingRoom)

	require.Equal(t, 2, tr.MaxUsers())
	assert.True(t, tr.AddUser(1))
	assert.True(t, tr.AddUser(1), "re-adding is a no-op")
	assert.True(t, tr.AddUser(2))
	assert.False(t, tr.AddUser(3))
	assert.Equal(t, 0, tr.OpenSlots())

	tr.RemoveUser(1)
	assert.Equal(t, 1, tr.OpenSlots())
	assert.Equal(t, g.Tile(2, 0), tr.CentralTile())
}

func TestRoom_RandomTile(t *testing.T) {
	g := testutil.GridFromASCII("000")
	r := NewRegistry(g)
	room, err := r.Add(KindTreasury, 0, block(g, 0, 0, 2, 0))
	require.NoError(t, err)

	assert.Equal(t, g.Tile(0, 0), room.RandomTile(testutil.NewScriptedRandom(0)))
	assert.Equal(t, g.Tile(2, 0), room.RandomTile(testutil.NewScriptedRandom(0.99)))
	assert.True(t, room.Covers(g.Tile(1, 0)))
	assert.False(t, room.Covers(nil))
}
