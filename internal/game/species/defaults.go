package species

// DefaultCatalogYAML is the stock roster used when no catalog file is set.
const DefaultCatalogYAML = `
species:
  - class_name: Kobold
    worker: true
    dig_rate: 0.25
    dance_rate: 0.15
    dig_rate_per_level: 0.04
    dance_rate_per_level: 0.12
    max_dig_rate: 0.6
    max_dance_rate: 0.3
    sight_radius: 10
    move_speed: 0.6
    base_hp: 10
    base_mana: 5
    hp_per_level: 2
    mana_per_level: 1
    max_hp: 60
    max_mana: 40
    bed_dim1: 1
    bed_dim2: 1
    passability: ground
    weapon_left:
      name: Pickaxe
      damage: 1
      range: 1.5
      defense: 0
  - class_name: Goblin
    sight_radius: 12
    move_speed: 0.8
    base_hp: 30
    base_mana: 10
    hp_per_level: 5
    mana_per_level: 2
    max_hp: 200
    max_mana: 80
    bed_dim1: 2
    bed_dim2: 1
    passability: ground
    weapon_left:
      name: Sword
      damage: 4
      range: 1.5
      defense: 1
    weapon_right:
      name: Shield
      damage: 0
      range: 1
      defense: 3
  - class_name: Troll
    sight_radius: 8
    move_speed: 0.5
    base_hp: 60
    base_mana: 0
    hp_per_level: 8
    mana_per_level: 0
    max_hp: 400
    max_mana: 0
    bed_dim1: 2
    bed_dim2: 2
    passability: ground
    weapon_left:
      name: Club
      damage: 7
      range: 2
      defense: 0
  - class_name: Bat
    sight_radius: 14
    move_speed: 1.2
    base_hp: 8
    base_mana: 0
    hp_per_level: 1
    mana_per_level: 0
    max_hp: 40
    max_mana: 0
    bed_dim1: 1
    bed_dim2: 1
    passability: flying
    weapon_left:
      name: Fangs
      damage: 2
      range: 1.5
      defense: 0
`

// DefaultCatalog parses DefaultCatalogYAML.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog([]byte(DefaultCatalogYAML))
	if err != nil {
		panic("species: default catalog: " + err.Error())
	}
	return c
}
