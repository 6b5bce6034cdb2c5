package core

import "fmt"

// Passability is the set of tile walkability classes a mover may enter.
// It is a plain value so it can key per-class caches.
type Passability uint8

const (
	PassGround Passability = 1 << Walkable
	PassFlying Passability = 1<<Walkable | 1<<Flyable
)

// Allows reports whether a mover of this class may stand on t.
func (p Passability) Allows(t *Tile) bool {
	if t == nil {
		return false
	}
	return p&(1<<t.Passability()) != 0
}

func (p Passability) String() string {
	switch p {
	case PassGround:
		return "ground"
	case PassFlying:
		return "flying"
	default:
		return fmt.Sprintf("passability(%d)", uint8(p))
	}
}

// ParsePassability maps a class name to its capability set.
func ParsePassability(name string) (Passability, error) {
	switch name {
	case "", "ground":
		return PassGround, nil
	case "flying":
		return PassFlying, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPassability, name)
	}
}
