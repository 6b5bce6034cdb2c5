package game

import (
	"strings"
	"unicode"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/rooms"
)

// ANSI color codes used by Render.
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

var ownerColors = []string{ColorRed, ColorBlue, ColorGreen, ColorPurple, ColorCyan, ColorWhite}

const (
	symbolRock     = 'R'
	symbolDirt     = '#'
	symbolMarked   = '%'
	symbolGold     = '$'
	symbolFloor    = '.'
	symbolClaimed  = ':'
	symbolLava     = '~'
	symbolWater    = '='
	symbolTreasury = 'T'
	symbolQuarters = 'Q'
	symbolTraining = 'X'
)

// Render draws the dungeon one character per tile. Creatures are shown by
// the first letter of their species, upper case for workers. With color on,
// owned tiles and creatures take their owner's color.
func (e *Engine) Render(color bool) string {
	width, height := e.grid.W, e.grid.H

	occupant := make(map[int]int, len(e.creatures))
	for _, c := range e.creatures {
		if !c.OnMap || !c.Alive() {
			continue
		}
		at := c.Coordinate()
		if _, taken := occupant[e.grid.Idx(at.X, at.Y)]; !taken {
			occupant[e.grid.Idx(at.X, at.Y)] = c.ID
		}
	}

	var sb strings.Builder
	sb.Grow((width*12 + 1) * (height + 2))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := e.grid.Tile(x, y)
			symbol, owner := e.tileSymbol(t)
			if id, ok := occupant[e.grid.IndexOf(t)]; ok {
				c := e.creatures[id]
				symbol, owner = creatureSymbol(c.Def.ClassName, c.Def.Worker), c.Owner
			}
			writeCell(&sb, symbol, owner, color)
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("R=rock #=dirt %=marked $=gold .=floor :=claimed T=treasury Q=quarters X=training\n")
	return sb.String()
}

func (e *Engine) tileSymbol(t *core.Tile) (rune, int) {
	if room, ok := e.rooms.RoomAt(t); ok {
		switch room.Kind() {
		case rooms.KindTreasury:
			return symbolTreasury, room.Owner()
		case rooms.KindQuarters:
			return symbolQuarters, room.Owner()
		case rooms.KindTrainingRoom:
			return symbolTraining, room.Owner()
		}
	}

	if t.IsSolid() {
		switch {
		case t.Type == core.TileRock:
			return symbolRock, core.Unclaimed
		case t.Type == core.TileGold:
			return symbolGold, core.Unclaimed
		case e.markedByAnyone(t):
			return symbolMarked, core.Unclaimed
		default:
			return symbolDirt, t.Owner
		}
	}

	switch t.Type {
	case core.TileLava:
		return symbolLava, core.Unclaimed
	case core.TileWater:
		return symbolWater, core.Unclaimed
	}
	if t.Owner != core.Unclaimed && t.ClaimProgress >= 1 {
		return symbolClaimed, t.Owner
	}
	return symbolFloor, core.Unclaimed
}

func (e *Engine) markedByAnyone(t *core.Tile) bool {
	for _, base := range e.dungeon.Bases {
		if t.IsMarkedBy(base.Owner) {
			return true
		}
	}
	return false
}

func creatureSymbol(className string, worker bool) rune {
	r := []rune(className)
	if len(r) == 0 {
		return '?'
	}
	if worker {
		return unicode.ToUpper(r[0])
	}
	return unicode.ToLower(r[0])
}

func writeCell(sb *strings.Builder, symbol rune, owner int, color bool) {
	if !color {
		sb.WriteRune(symbol)
		return
	}
	sb.WriteString(getOwnerColor(owner))
	sb.WriteRune(symbol)
	sb.WriteString(ColorReset)
}

func getOwnerColor(owner int) string {
	if owner < 0 {
		return ColorGray
	}
	return ownerColors[owner%len(ownerColors)]
}
