package battlefield

import (
	"math"

	"github.com/mitchelldurbincs/CreatureSim/internal/common"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
)

const (
	// Scale multiplies every contribution.
	Scale = 0.5
	// EnemyWeight is the factor of 1/sqrt(d^2+1) an enemy contributes.
	EnemyWeight = -1.0
	// AllyWeight is the factor of 1/sqrt(d^2+1) an ally contributes.
	AllyWeight = 1.2
)

// Combatant is anything that pulls or pushes a tile's security.
type Combatant interface {
	Coordinate() core.Coordinate
	Alive() bool
	Combative() bool
}

// SecurityTile is one scored tile. X and Y are -1 when the field is empty.
type SecurityTile struct {
	X, Y  int
	Value float64
}

// Field is a sparse map of security values over the visible tiles.
// Positive is safe, negative is threatened.
type Field struct {
	levels map[core.Coordinate]float64
	order  []core.Coordinate
}

func New() *Field {
	return &Field{levels: make(map[core.Coordinate]float64)}
}

// Compute rescores every visible tile from scratch. Dead and non-combat
// enemies are ignored. jitter adds U(-jitter, jitter) per tile; zero draws
// nothing from rnd.
func (f *Field) Compute(visible []*core.Tile, enemies, allies []Combatant, jitter float64, rnd common.Random) {
	f.Clear()
	for _, t := range visible {
		c := t.Coordinate()
		var v float64
		for _, e := range enemies {
			if !e.Alive() || !e.Combative() {
				continue
			}
			v += EnemyWeight / math.Sqrt(float64(c.DistanceSquared(e.Coordinate()))+1)
		}
		for _, a := range allies {
			v += AllyWeight / math.Sqrt(float64(c.DistanceSquared(a.Coordinate()))+1)
		}
		if jitter != 0 && rnd != nil {
			v += rnd.Double(-jitter, jitter)
		}
		if _, seen := f.levels[c]; !seen {
			f.order = append(f.order, c)
		}
		f.levels[c] = v * Scale
	}
}

// SecurityLevelAt returns the tile's value, or 0 when it was not scored.
func (f *Field) SecurityLevelAt(x, y int) float64 {
	return f.levels[core.Coordinate{X: x, Y: y}]
}

// MinSecurityTile is the most threatened tile; ties go to the first scored.
func (f *Field) MinSecurityTile() SecurityTile {
	return f.extreme(func(a, b float64) bool { return a < b })
}

// MaxSecurityTile is the safest tile; ties go to the first scored.
func (f *Field) MaxSecurityTile() SecurityTile {
	return f.extreme(func(a, b float64) bool { return a > b })
}

func (f *Field) extreme(better func(a, b float64) bool) SecurityTile {
	best := SecurityTile{X: -1, Y: -1}
	for i, c := range f.order {
		v := f.levels[c]
		if i == 0 || better(v, best.Value) {
			best = SecurityTile{X: c.X, Y: c.Y, Value: v}
		}
	}
	return best
}

func (f *Field) Clear() {
	clear(f.levels)
	f.order = f.order[:0]
}

func (f *Field) Len() int { return len(f.order) }
