package mapgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/rooms"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/spatial"
)

var (
	ErrMapTooSmall     = errors.New("map too small for the requested bases")
	ErrNoBaseLocation  = errors.New("unable to place base")
	ErrInvalidMapShape = errors.New("invalid map configuration")
)

// MapConfig holds configuration for dungeon generation
type MapConfig struct {
	Width          int
	Height         int
	OwnerCount     int
	HeartRadius    int // half-width of each owner's carved base
	MinBaseSpacing int // Manhattan distance between base centres
	FrontierDepth  int // rings of wall around a base pre-marked for digging
	NumGoldVeins   int
	MinVeinLength  int
	MaxVeinLength  int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h, owners int) MapConfig {
	return MapConfig{
		Width:          w,
		Height:         h,
		OwnerCount:     owners,
		HeartRadius:    3,
		MinBaseSpacing: 14,
		FrontierDepth:  2,
		NumGoldVeins:   (w * h) / 120,
		MinVeinLength:  3,
		MaxVeinLength:  max(3, w/6),
	}
}

// Base is one owner's starting area.
type Base struct {
	Owner  int
	Center core.Coordinate
	Radius int
}

// Tiles lists the base's floor tiles in row-major order.
func (b Base) Tiles(g *core.Grid) []*core.Tile {
	var tiles []*core.Tile
	for y := b.Center.Y - b.Radius; y <= b.Center.Y+b.Radius; y++ {
		for x := b.Center.X - b.Radius; x <= b.Center.X+b.Radius; x++ {
			if t := g.Tile(x, y); t != nil {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// Dungeon is a generated world: the grid, its rooms and every owner's base.
type Dungeon struct {
	Grid  *core.Grid
	Rooms *rooms.Registry
	Bases []Base
}

// Generator handles dungeon generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new dungeon generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap builds a solid dungeon with a rock border, gold veins and one
// furnished base per owner.
func (g *Generator) GenerateMap() (*Dungeon, error) {
	c := g.config
	if c.Width < 3 || c.Height < 3 || c.OwnerCount < 0 || c.HeartRadius < 2 {
		return nil, fmt.Errorf("%w: %dx%d, %d owners, heart radius %d", ErrInvalidMapShape, c.Width, c.Height, c.OwnerCount, c.HeartRadius)
	}
	side := 2*c.HeartRadius + 1
	// A base needs a wall ring between it and the rock border.
	if c.OwnerCount > 0 && (c.Width < side+4 || c.Height < side+4) {
		return nil, fmt.Errorf("%w: %dx%d cannot hold a %dx%d base", ErrMapTooSmall, c.Width, c.Height, side, side)
	}

	grid := core.NewGrid(c.Width, c.Height)
	g.placeGoldVeins(grid)
	g.placeBorder(grid)

	d := &Dungeon{Grid: grid, Rooms: rooms.NewRegistry(grid)}
	for owner := 0; owner < c.OwnerCount; owner++ {
		base, err := g.findBaseLocation(grid, owner, d.Bases)
		if err != nil {
			return nil, err
		}
		g.carveBase(grid, base)
		if err := g.furnishBase(d, base); err != nil {
			return nil, err
		}
		d.Bases = append(d.Bases, base)
	}
	for _, base := range d.Bases {
		g.markFrontier(grid, base)
	}
	return d, nil
}

func (g *Generator) placeBorder(grid *core.Grid) {
	for x := 0; x < grid.W; x++ {
		grid.Tile(x, 0).SetMaterial(core.TileRock, 1)
		grid.Tile(x, grid.H-1).SetMaterial(core.TileRock, 1)
	}
	for y := 0; y < grid.H; y++ {
		grid.Tile(0, y).SetMaterial(core.TileRock, 1)
		grid.Tile(grid.W-1, y).SetMaterial(core.TileRock, 1)
	}
}

// placeGoldVeins random-walks veins of gold through the solid interior.
func (g *Generator) placeGoldVeins(grid *core.Grid) {
	c := g.config
	if c.NumGoldVeins <= 0 || c.MinVeinLength <= 0 {
		return
	}
	maxLen := max(c.MaxVeinLength, c.MinVeinLength)

	for v := 0; v < c.NumGoldVeins; v++ {
		x, y := 1+g.rng.Intn(grid.W-2), 1+g.rng.Intn(grid.H-2)
		length := c.MinVeinLength + g.rng.Intn(maxLen-c.MinVeinLength+1)
		for i := 0; i < length; i++ {
			if t := grid.Tile(x, y); t != nil && t.Type == core.TileDirt && t.IsSolid() {
				t.SetMaterial(core.TileGold, 1)
			}
			step := core.Coordinate{X: x, Y: y}.Neighbors()[g.rng.Intn(4)]
			if step.X < 1 || step.X > grid.W-2 || step.Y < 1 || step.Y > grid.H-2 {
				continue
			}
			x, y = step.X, step.Y
		}
	}
}

func (g *Generator) findBaseLocation(grid *core.Grid, owner int, existing []Base) (Base, error) {
	r := g.config.HeartRadius
	lo := r + 2
	spanX, spanY := grid.W-2*lo, grid.H-2*lo
	if spanX <= 0 || spanY <= 0 {
		return Base{}, fmt.Errorf("%w: owner %d", ErrMapTooSmall, owner)
	}

	fits := func(center core.Coordinate) bool {
		for _, other := range existing {
			if center.Manhattan(other.Center) < g.config.MinBaseSpacing {
				return false
			}
			// Bases and their frontier must never overlap.
			gap := 2*r + 2*g.config.FrontierDepth + 1
			if absInt(center.X-other.Center.X) < gap && absInt(center.Y-other.Center.Y) < gap {
				return false
			}
		}
		return true
	}

	maxAttempts := grid.W * grid.H
	for attempts := 0; attempts < maxAttempts; attempts++ {
		center := core.Coordinate{X: lo + g.rng.Intn(spanX), Y: lo + g.rng.Intn(spanY)}
		if fits(center) {
			return Base{Owner: owner, Center: center, Radius: r}, nil
		}
	}

	// Fallback: scan for the first valid centre
	for y := lo; y < lo+spanY; y++ {
		for x := lo; x < lo+spanX; x++ {
			center := core.Coordinate{X: x, Y: y}
			if fits(center) {
				return Base{Owner: owner, Center: center, Radius: r}, nil
			}
		}
	}
	return Base{}, fmt.Errorf("%w: owner %d", ErrNoBaseLocation, owner)
}

// carveBase digs out the base and claims every floor tile for its owner.
func (g *Generator) carveBase(grid *core.Grid, base Base) {
	for _, t := range base.Tiles(grid) {
		t.SetMaterial(core.TileDirt, 0)
		t.SetClaim(base.Owner, 1)
	}
}

// furnishBase lays out the rooms: a treasury along the top row, a training
// room on the row below it and two rows of quarters along the bottom.
func (g *Generator) furnishBase(d *Dungeon, base Base) error {
	row := func(y int) []*core.Tile {
		var tiles []*core.Tile
		for x := base.Center.X - base.Radius; x <= base.Center.X+base.Radius; x++ {
			tiles = append(tiles, d.Grid.Tile(x, y))
		}
		return tiles
	}
	top := base.Center.Y - base.Radius
	bottom := base.Center.Y + base.Radius

	layout := []struct {
		kind  rooms.Kind
		tiles []*core.Tile
	}{
		{rooms.KindTreasury, row(top)},
		{rooms.KindTrainingRoom, row(top + 1)},
		{rooms.KindQuarters, append(row(bottom-1), row(bottom)...)},
	}
	for _, l := range layout {
		if _, err := d.Rooms.Add(l.kind, base.Owner, l.tiles); err != nil {
			return fmt.Errorf("furnishing base of owner %d: %w", base.Owner, err)
		}
	}
	return nil
}

// markFrontier marks the diggable walls in the rings around a base for its
// owner, so workers have somewhere to start.
func (g *Generator) markFrontier(grid *core.Grid, base Base) {
	space := spatial.NewEngine(grid)
	region := base.Tiles(grid)
	for ring := 0; ring < g.config.FrontierDepth; ring++ {
		border := space.TilesBorderedByRegion(region)
		for _, t := range border {
			t.SetMarked(base.Owner, true)
		}
		region = append(region, border...)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
