package creature

import "math"

// ExpForLevel is the total experience needed to advance past level.
func ExpForLevel(level int) float64 {
	l := float64(level)
	return 5 * (l + math.Pow(l/3, 2))
}

func (p *Planner) checkLevelUp(c *Creature) {
	for c.Level < p.tuning.MaxLevel && c.Exp >= ExpForLevel(c.Level) {
		p.levelUp(c)
	}
}

// levelUp raises c one level. Stats only grow up to MaxGrowthLevel.
// ScaleForLevel is the avatar scale requested on a level up. It grows by
// 1/250 per level and jumps to its 1.04 ceiling once past 1.03.
func ScaleForLevel(level int) float64 {
	scale := 1 + float64(level)/250
	if scale > 1.03 {
		return 1.04
	}
	return scale
}

func (p *Planner) levelUp(c *Creature) {
	c.Level++
	p.publishLevelUp(c)

	if (c.Level <= p.tuning.MaxGrowthLevel && c.Level%2 == 0) ||
		(c.Level > p.tuning.MaxGrowthLevel && c.Level%3 == 0) {
		p.publishScale(c, ScaleForLevel(c.Level))
	}

	if c.Level > p.tuning.MaxGrowthLevel {
		return
	}

	l := float64(c.Level)
	def := c.Def
	if c.IsWorker() {
		c.DigRate = math.Min(c.DigRate+def.DigRatePerLevel*l/(l+5), def.MaxDigRate)
		c.DanceRate = math.Min(c.DanceRate+def.DanceRatePerLevel*l/(l+5), def.MaxDanceRate)
	}
	c.MoveSpeed += 0.4 / (l + 2)
	c.MaxHP = math.Min(c.MaxHP+def.HPPerLevel, def.MaxHP)
	c.MaxMana = math.Min(c.MaxMana+def.ManaPerLevel, def.MaxMana)
}
