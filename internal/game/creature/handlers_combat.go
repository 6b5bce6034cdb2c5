package creature

import (
	"math"

	"github.com/mitchelldurbincs/CreatureSim/internal/common"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/battlefield"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
)

func (p *Planner) handleAttackObject(c *Creature) bool {
	if len(c.reachableEnemies) == 0 {
		c.stack.Pop()
		return true
	}
	if len(c.livingEnemiesInRange) == 0 {
		p.popThenPush(c, Do(ActionManeuver))
		return true
	}

	target := c.livingEnemiesInRange[0]
	dist := math.Hypot(target.X-c.X, target.Y-c.Y)
	p.setAnimation(c, AnimAttack, true)

	roll := c.HitRoll(dist) * p.rnd.Double(0, 1)
	soak := math.Pow(p.rnd.Double(0, 0.4), 2) * target.Defense()
	damage := math.Max(0, roll-soak)
	target.TakeDamage(damage)

	attackerExp, targetExp := strikeExp(damage, c.Level, target.Level)
	target.ReceiveExp(targetExp)
	c.ReceiveExp(attackerExp)
	c.Awakeness = common.Clamp(c.Awakeness-0.5, 0, MaxAwakeness)

	p.sink.Publish(events.NewCreatureAttackedEvent(p.simID, p.ref(c), target.ID, damage))
	p.playSound(c, SoundAttack)

	if p.rnd.Double(0, 1) <= p.tuning.AttackBreakOffChance {
		p.popThenPush(c, Do(ActionManeuver))
	}
	return false
}

// strikeExp returns the experience earned by both sides of a strike. Hitting
// a stronger target multiplies the attacker's share by a tenth per level of
// difference; hitting a weaker one divides it the same way.
func strikeExp(damage float64, attackerLevel, targetLevel int) (attacker, target float64) {
	exp := 1 + 0.2*math.Pow(damage, 1.3)
	target = 0.15 * exp
	if d := float64(targetLevel - attackerLevel); d >= 0 {
		attacker = exp * (1 + d/10)
	} else {
		attacker = exp / (1 - d/10)
	}
	return attacker, target
}

func (p *Planner) handleManeuver(c *Creature) bool {
	if len(c.livingEnemiesInRange) > 0 {
		p.popThenPush(c, Do(ActionAttackObject))
		return true
	}
	if len(c.reachableEnemies) == 0 {
		c.stack.Pop()
		return true
	}

	t := p.tuning
	if c.fieldAge <= 0 {
		c.field.Compute(c.visibleTiles, combatants(c.reachableEnemies), combatants(c.reachableAllies), t.BattlefieldJitter, p.rnd)
		c.fieldAge = p.rnd.Uint(t.BattlefieldAgeMin, t.BattlefieldAgeMax)
	}

	here := c.Coordinate()
	anim := AnimWalk
	goal := c.field.MinSecurityTile()
	if c.field.SecurityLevelAt(here.X, here.Y) <= 0 {
		goal = c.field.MaxSecurityTile()
		anim = AnimFlee
	}
	if goal.X < 0 {
		c.stack.Pop()
		return false
	}

	spread := math.Sqrt(c.MaxRange())
	x := goal.X + int(math.Round(p.rnd.Double(-spread, spread)))
	y := goal.Y + int(math.Round(p.rnd.Double(-spread, spread)))
	dest := p.grid.Tile(x, y)
	if !c.Pass().Allows(dest) {
		dest = p.grid.Tile(goal.X, goal.Y)
	}

	path := p.paths.Path(p.tileOf(c), dest, c.Pass())
	if len(path) > t.ManeuverPathCap+1 {
		path = path[:t.ManeuverPathCap+1]
	}
	if !p.walkToPath(c, path) {
		return false
	}
	p.setAnimation(c, anim, true)
	return false
}

func combatants(cs []*Creature) []battlefield.Combatant {
	out := make([]battlefield.Combatant, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}
