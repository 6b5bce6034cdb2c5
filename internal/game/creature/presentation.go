package creature

import "github.com/mitchelldurbincs/CreatureSim/internal/game/events"

// Animation and sound names sent to the presentation sink.
const (
	AnimIdle   = "Idle"
	AnimWalk   = "Walk"
	AnimFlee   = "Flee"
	AnimDig    = "Dig"
	AnimClaim  = "Claim"
	AnimAttack = "Attack"
	AnimSleep  = "Sleep"
	AnimTrain  = "Train"

	SoundDig    = "Dig"
	SoundAttack = "Attack"
)

func (p *Planner) ref(c *Creature) events.CreatureRef {
	return events.CreatureRef{CreatureID: c.ID, Name: c.Name, Owner: c.Owner}
}

// setAnimation requests a new animation; repeats of the current one are dropped.
func (p *Planner) setAnimation(c *Creature, anim string, loop bool) {
	if c.animation == anim {
		return
	}
	c.animation = anim
	p.sink.Publish(events.NewCreatureAnimationEvent(p.simID, p.ref(c), anim, loop))
}

func (p *Planner) playSound(c *Creature, sound string) {
	p.sink.Publish(events.NewCreatureSoundEvent(p.simID, p.ref(c), sound, c.X, c.Y))
}

func (p *Planner) publishMove(c *Creature) {
	p.sink.Publish(events.NewCreatureMovedEvent(p.simID, p.ref(c), c.X, c.Y))
}

func (p *Planner) publishScale(c *Creature, scale float64) {
	p.sink.Publish(events.NewCreatureScaledEvent(p.simID, p.ref(c), scale))
}

func (p *Planner) publishLevelUp(c *Creature) {
	p.sink.Publish(events.NewCreatureLeveledUpEvent(p.simID, p.ref(c), c.Level))
}
