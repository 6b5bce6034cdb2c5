package creature

import "github.com/mitchelldurbincs/CreatureSim/internal/game/species"

// Weapon is held in one hand. Range is in tiles.
type Weapon struct {
	Name    string
	Damage  float64
	Range   float64
	Defense float64
}

// NoWeapon is what an empty hand counts as.
var NoWeapon = Weapon{Name: "none", Damage: 0, Range: 1, Defense: 0}

func weaponFrom(spec *species.WeaponSpec) Weapon {
	if spec == nil {
		return NoWeapon
	}
	return Weapon{Name: spec.Name, Damage: spec.Damage, Range: spec.Range, Defense: spec.Defense}
}
