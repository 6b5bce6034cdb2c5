package testutil

import (
	"fmt"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
)

// GridFromASCII builds a grid from rows of equal width.
//
//	'#' solid dirt      'G' solid gold     'R' rock
//	'.' unclaimed floor '0'-'9' floor fully claimed by that owner
//	'~' water           'L' lava
func GridFromASCII(rows ...string) *core.Grid {
	if len(rows) == 0 {
		return core.NewGrid(0, 0)
	}
	g := core.NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.W {
			panic(fmt.Sprintf("testutil: row %d has width %d, want %d", y, len(row), g.W))
		}
		for x, ch := range row {
			t := g.Tile(x, y)
			switch {
			case ch == '#':
			case ch == 'G':
				t.SetMaterial(core.TileGold, 1)
			case ch == 'R':
				t.SetMaterial(core.TileRock, 1)
			case ch == '.':
				t.SetMaterial(core.TileDirt, 0)
			case ch == '~':
				t.SetMaterial(core.TileWater, 0)
			case ch == 'L':
				t.SetMaterial(core.TileLava, 0)
			case ch >= '0' && ch <= '9':
				t.SetMaterial(core.TileDirt, 0)
				t.SetClaim(int(ch-'0'), 1)
			default:
				panic(fmt.Sprintf("testutil: unknown tile %q at (%d,%d)", ch, x, y))
			}
		}
	}
	return g
}
