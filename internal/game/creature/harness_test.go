package creature

import (
	"sync"
	"testing"

	"github.com/mitchelldurbincs/CreatureSim/internal/common"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/rooms"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/species"
	"github.com/mitchelldurbincs/CreatureSim/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testWorld map[int]*Creature

func (w testWorld) Creature(id int) (*Creature, bool) {
	c, ok := w[id]
	return c, ok
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) ofType(eventType string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

type harness struct {
	grid    *core.Grid
	rooms   *rooms.Registry
	world   testWorld
	events  *recorder
	planner *Planner
	catalog *species.Catalog
	nextID  int
}

func newHarness(t *testing.T, rnd common.Random, rows ...string) *harness {
	t.Helper()
	g := testutil.GridFromASCII(rows...)
	logger := testutil.NopLogger()
	h := &harness{
		grid:    g,
		rooms:   rooms.NewRegistry(g),
		world:   testWorld{},
		events:  &recorder{},
		catalog: species.DefaultCatalog(),
	}
	h.planner = NewPlanner(Deps{
		Grid:   g,
		Rooms:  h.rooms,
		World:  h.world,
		Random: rnd,
		Events: h.events,
		Logger: &logger,
		SimID:  "test-sim",
	})
	return h
}

func (h *harness) spawn(t *testing.T, class string, owner, x, y int) *Creature {
	t.Helper()
	c := New(h.nextID, h.catalog.MustGet(class), owner, 0, 0)
	h.nextID++
	require.True(t, h.planner.Place(c, x, y))
	h.world[c.ID] = c
	return c
}

func (h *harness) room(t *testing.T, kind rooms.Kind, owner int, coords ...core.Coordinate) rooms.Room {
	t.Helper()
	tiles := make([]*core.Tile, 0, len(coords))
	for _, c := range coords {
		tiles = append(tiles, h.grid.TileAt(c))
	}
	r, err := h.rooms.Add(kind, owner, tiles)
	require.NoError(t, err)
	return r
}

func xy(x, y int) core.Coordinate { return core.NewCoordinate(x, y) }
