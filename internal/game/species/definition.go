package species

import (
	"fmt"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
)

// WeaponSpec describes a default weapon a species carries.
type WeaponSpec struct {
	Name    string  `yaml:"name"`
	Damage  float64 `yaml:"damage"`
	Range   float64 `yaml:"range"`
	Defense float64 `yaml:"defense"`
}

// Definition is the static description of a creature class.
type Definition struct {
	ClassName string `yaml:"class_name"`
	Worker    bool   `yaml:"worker"`

	DigRate           float64 `yaml:"dig_rate"`
	DanceRate         float64 `yaml:"dance_rate"`
	DigRatePerLevel   float64 `yaml:"dig_rate_per_level"`
	DanceRatePerLevel float64 `yaml:"dance_rate_per_level"`
	MaxDigRate        float64 `yaml:"max_dig_rate"`
	MaxDanceRate      float64 `yaml:"max_dance_rate"`

	SightRadius int     `yaml:"sight_radius"`
	MoveSpeed   float64 `yaml:"move_speed"`

	BaseHP       float64 `yaml:"base_hp"`
	BaseMana     float64 `yaml:"base_mana"`
	HPPerLevel   float64 `yaml:"hp_per_level"`
	ManaPerLevel float64 `yaml:"mana_per_level"`
	MaxHP        float64 `yaml:"max_hp"`
	MaxMana      float64 `yaml:"max_mana"`

	BedDim1 int `yaml:"bed_dim1"`
	BedDim2 int `yaml:"bed_dim2"`

	Passability string `yaml:"passability"`

	WeaponL *WeaponSpec `yaml:"weapon_left,omitempty"`
	WeaponR *WeaponSpec `yaml:"weapon_right,omitempty"`

	pass core.Passability
}

// Pass returns the parsed passability class.
func (d *Definition) Pass() core.Passability { return d.pass }

// Validate checks the definition and resolves derived fields.
func (d *Definition) Validate() error {
	if d.ClassName == "" {
		return ErrMissingClassName
	}
	if d.SightRadius <= 0 {
		return fmt.Errorf("%s: %w: sight_radius %d", d.ClassName, ErrInvalidDefinition, d.SightRadius)
	}
	if d.MoveSpeed <= 0 {
		return fmt.Errorf("%s: %w: move_speed %g", d.ClassName, ErrInvalidDefinition, d.MoveSpeed)
	}
	if d.BaseHP <= 0 || d.MaxHP < d.BaseHP || d.MaxHP < d.HPPerLevel {
		return fmt.Errorf("%s: %w: hp base %g max %g per level %g", d.ClassName, ErrInvalidDefinition, d.BaseHP, d.MaxHP, d.HPPerLevel)
	}
	if d.MaxMana < d.BaseMana || d.MaxMana < d.ManaPerLevel {
		return fmt.Errorf("%s: %w: mana base %g max %g per level %g", d.ClassName, ErrInvalidDefinition, d.BaseMana, d.MaxMana, d.ManaPerLevel)
	}
	if d.DigRate < 0 || d.DanceRate < 0 {
		return fmt.Errorf("%s: %w: negative work rate", d.ClassName, ErrInvalidDefinition)
	}
	if d.MaxDigRate == 0 {
		d.MaxDigRate = d.DigRate
	}
	if d.MaxDanceRate == 0 {
		d.MaxDanceRate = d.DanceRate
	}
	if d.BedDim1 <= 0 {
		d.BedDim1 = 1
	}
	if d.BedDim2 <= 0 {
		d.BedDim2 = 1
	}
	pass, err := core.ParsePassability(d.Passability)
	if err != nil {
		return fmt.Errorf("%s: %w", d.ClassName, err)
	}
	d.pass = pass
	return nil
}
