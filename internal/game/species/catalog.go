package species

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type rawCatalog struct {
	Species []*Definition `yaml:"species"`
}

// Catalog is the set of known species, in file order.
type Catalog struct {
	defs  map[string]*Definition
	order []string
}

// NewCatalog validates defs and indexes them by class name.
func NewCatalog(defs ...*Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.defs[d.ClassName]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSpecies, d.ClassName)
		}
		c.defs[d.ClassName] = d
		c.order = append(c.order, d.ClassName)
	}
	return c, nil
}

// ParseCatalog reads a YAML document with a top-level `species` list.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing species catalog: %w", err)
	}
	return NewCatalog(raw.Species...)
}

// LoadCatalog reads and parses a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading species catalog: %w", err)
	}
	return ParseCatalog(data)
}

func (c *Catalog) Get(name string) (*Definition, bool) {
	d, ok := c.defs[name]
	return d, ok
}

// MustGet is Get for names known to exist, such as the stock species.
func (c *Catalog) MustGet(name string) *Definition {
	d, ok := c.defs[name]
	if !ok {
		panic(fmt.Sprintf("species: %v: %s", ErrUnknownSpecies, name))
	}
	return d
}

// Names lists class names in catalog order.
func (c *Catalog) Names() []string { return append([]string(nil), c.order...) }

// Workers lists the worker class names in catalog order.
func (c *Catalog) Workers() []string {
	var out []string
	for _, n := range c.order {
		if c.defs[n].Worker {
			out = append(out, n)
		}
	}
	return out
}

// Fighters lists the non-worker class names in catalog order.
func (c *Catalog) Fighters() []string {
	var out []string
	for _, n := range c.order {
		if !c.defs[n].Worker {
			out = append(out, n)
		}
	}
	return out
}
