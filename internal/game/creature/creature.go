package creature

import (
	"fmt"
	"math"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/battlefield"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/species"
)

// Creature is one autonomous agent. Position is continuous; the tile it
// stands on is the truncation of X and Y.
type Creature struct {
	ID    int
	Name  string
	Def   *species.Definition
	Owner int
	X, Y  float64
	OnMap bool

	Level     int
	Exp       float64
	HP        float64
	MaxHP     float64
	Mana      float64
	MaxMana   float64
	Awakeness float64
	Gold      int

	DigRate   float64
	DanceRate float64
	MoveSpeed float64

	WeaponL Weapon
	WeaponR Weapon

	home    core.Coordinate
	hasHome bool

	stack     *ActionStack
	walkQueue []core.Coordinate

	field        *battlefield.Field
	fieldAge     int
	trainWait    int
	trainingRoom int
	animation    string

	visibleTiles         []*core.Tile
	markedTiles          []*core.Tile
	visibleEnemies       []*Creature
	reachableEnemies     []*Creature
	enemiesInRange       []*Creature
	livingEnemiesInRange []*Creature
	visibleAllies        []*Creature
	reachableAllies      []*Creature
}

// MaxAwakeness is a fully rested creature.
const MaxAwakeness = 100.0

// New builds a level 1 creature of the given species at (x, y).
func New(id int, def *species.Definition, owner int, x, y float64) *Creature {
	return &Creature{
		ID:           id,
		Name:         fmt.Sprintf("%s_%d", def.ClassName, id),
		Def:          def,
		Owner:        owner,
		X:            x,
		Y:            y,
		Level:        1,
		HP:           def.BaseHP,
		MaxHP:        def.BaseHP,
		Mana:         def.BaseMana,
		MaxMana:      def.BaseMana,
		Awakeness:    MaxAwakeness,
		DigRate:      def.DigRate,
		DanceRate:    def.DanceRate,
		MoveSpeed:    def.MoveSpeed,
		WeaponL:      weaponFrom(def.WeaponL),
		WeaponR:      weaponFrom(def.WeaponR),
		stack:        NewActionStack(DefaultMaxStackDepth),
		field:        battlefield.New(),
		trainingRoom: core.NoRoom,
	}
}

// Coordinate is the tile the creature stands on.
func (c *Creature) Coordinate() core.Coordinate {
	return core.Coordinate{X: int(c.X), Y: int(c.Y)}
}

func (c *Creature) Alive() bool     { return c.HP > 0 }
func (c *Creature) Combative() bool { return true }
func (c *Creature) IsWorker() bool  { return c.Def.Worker }

func (c *Creature) Pass() core.Passability { return c.Def.Pass() }

func (c *Creature) Stack() *ActionStack { return c.stack }

// Home returns the creature's bed tile, if it has one.
func (c *Creature) Home() (core.Coordinate, bool) { return c.home, c.hasHome }

func (c *Creature) setHome(home core.Coordinate) {
	c.home = home
	c.hasHome = true
}

// ClearHome forgets the bed. The quarters reservation is released separately.
func (c *Creature) ClearHome() { c.hasHome = false }

// WalkQueue lists the remaining destinations, next first.
func (c *Creature) WalkQueue() []core.Coordinate { return c.walkQueue }

func (c *Creature) addDestination(dest core.Coordinate) {
	c.walkQueue = append(c.walkQueue, dest)
}

func (c *Creature) clearDestinations() { c.walkQueue = c.walkQueue[:0] }

// TrainingRoom is the id of the room the creature trains in, or core.NoRoom.
func (c *Creature) TrainingRoom() int { return c.trainingRoom }

// MaxRange is the longer reach of the two weapons.
func (c *Creature) MaxRange() float64 {
	return math.Max(c.WeaponL.Range, c.WeaponR.Range)
}

// HitRoll is the maximum damage the creature deals at the given distance.
func (c *Creature) HitRoll(distance float64) float64 {
	dmg := 1.0
	for _, w := range [...]Weapon{c.WeaponL, c.WeaponR} {
		if w.Range >= distance {
			dmg += w.Damage
		}
	}
	return dmg * math.Log(math.Log(float64(c.Level)+1)+1)
}

// Defense is the flat damage soak before the defender's roll.
func (c *Creature) Defense() float64 {
	return 3 + c.WeaponL.Defense + c.WeaponR.Defense
}

func (c *Creature) TakeDamage(amount float64) {
	if amount > 0 {
		c.HP -= amount
	}
}

// ReceiveExp adds experience. Negative amounts are ignored.
func (c *Creature) ReceiveExp(amount float64) {
	if amount > 0 {
		c.Exp += amount
	}
}

// VisibleTiles is the last perception snapshot, closest first.
func (c *Creature) VisibleTiles() []*core.Tile { return c.visibleTiles }

func (c *Creature) ReachableEnemies() []*Creature { return c.reachableEnemies }

func (c *Creature) LivingEnemiesInRange() []*Creature { return c.livingEnemiesInRange }

func (c *Creature) ReachableAllies() []*Creature { return c.reachableAllies }

// Animation is the last animation requested for the creature.
func (c *Creature) Animation() string { return c.animation }
