package spatial

import "sort"

// Offset is a relative tile position with its squared length.
type Offset struct {
	DX, DY int
	D2     int
}

// DistanceCache holds every integer offset within the largest radius asked
// for so far, ordered by increasing squared distance. It only ever grows.
type DistanceCache struct {
	offsets []Offset
	radius  int
}

// NewDistanceCache precomputes offsets up to radius.
func NewDistanceCache(radius int) *DistanceCache {
	c := &DistanceCache{radius: -1}
	c.Ensure(radius)
	return c
}

// Radius is the largest radius currently covered.
func (c *DistanceCache) Radius() int { return c.radius }

// Ensure grows the cache to cover radius. Smaller radii are a no-op.
func (c *DistanceCache) Ensure(radius int) {
	if radius < 0 {
		radius = 0
	}
	if radius <= c.radius {
		return
	}

	r2 := radius * radius
	offsets := make([]Offset, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := dx*dx + dy*dy
			if d2 <= r2 {
				offsets = append(offsets, Offset{DX: dx, DY: dy, D2: d2})
			}
		}
	}
	sort.Slice(offsets, func(i, j int) bool {
		a, b := offsets[i], offsets[j]
		if a.D2 != b.D2 {
			return a.D2 < b.D2
		}
		if a.DY != b.DY {
			return a.DY < b.DY
		}
		return a.DX < b.DX
	})

	c.offsets = offsets
	c.radius = radius
}

// Within returns the prefix of offsets whose squared length is at most
// radius^2. The slice is shared and must not be modified.
func (c *DistanceCache) Within(radius int) []Offset {
	if radius < 0 {
		radius = 0
	}
	c.Ensure(radius)
	r2 := radius * radius
	n := sort.Search(len(c.offsets), func(i int) bool { return c.offsets[i].D2 > r2 })
	return c.offsets[:n]
}

// Offsets returns the whole sorted cache.
func (c *DistanceCache) Offsets() []Offset { return c.offsets }
