package grid

import (
	"fmt"
)

// Dataset bundles coordinates, data variables and scalar attributes.
// Mutating methods (AddCoord, AddVar, SetAttr) are for construction;
// once built, datasets are treated as immutable and every selection
// returns a new value.
type Dataset struct {
	coordOrder []string
	coords     map[string]*Coord
	varOrder   []string
	vars       map[string]*DataArray
	attrs      map[string]any
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		coords: make(map[string]*Coord),
		vars:   make(map[string]*DataArray),
		attrs:  make(map[string]any),
	}
}

// AddCoord registers a coordinate.
func (d *Dataset) AddCoord(c *Coord) error {
	if _, dup := d.coords[c.Name()]; dup {
		return fmt.Errorf("coordinate %q already exists", c.Name())
	}
	d.coords[c.Name()] = c
	d.coordOrder = append(d.coordOrder, c.Name())
	return nil
}

// AddVar registers a data variable. Every dimension of the array must
// be a registered coordinate with a matching length.
func (d *Dataset) AddVar(a *DataArray) error {
	if _, dup := d.vars[a.Name()]; dup {
		return fmt.Errorf("variable %q already exists", a.Name())
	}
	for i, dim := range a.Dims() {
		c, ok := d.coords[dim]
		if !ok {
			return fmt.Errorf("variable %q: unknown dimension %q", a.Name(), dim)
		}
		if c.Len() != a.Shape()[i] {
			return fmt.Errorf("variable %q: dimension %q has %d labels but array has length %d",
				a.Name(), dim, c.Len(), a.Shape()[i])
		}
	}
	d.vars[a.Name()] = a
	d.varOrder = append(d.varOrder, a.Name())
	return nil
}

// SetAttr sets a scalar attribute.
func (d *Dataset) SetAttr(key string, value any) {
	d.attrs[key] = value
}

// Attr returns a scalar attribute, or false if absent.
func (d *Dataset) Attr(key string) (any, bool) {
	v, ok := d.attrs[key]
	return v, ok
}

// Coord returns a coordinate by name, or false if absent.
func (d *Dataset) Coord(name string) (*Coord, bool) {
	c, ok := d.coords[name]
	return c, ok
}

// HasCoord reports whether the named coordinate exists.
func (d *Dataset) HasCoord(name string) bool {
	_, ok := d.coords[name]
	return ok
}

// CoordNames returns coordinate names in registration order.
func (d *Dataset) CoordNames() []string {
	return append([]string(nil), d.coordOrder...)
}

// Var returns a data variable by name, or false if absent.
func (d *Dataset) Var(name string) (*DataArray, bool) {
	a, ok := d.vars[name]
	return a, ok
}

// HasVar reports whether the named data variable exists.
func (d *Dataset) HasVar(name string) bool {
	_, ok := d.vars[name]
	return ok
}

// VarNames returns variable names in registration order.
func (d *Dataset) VarNames() []string {
	return append([]string(nil), d.varOrder...)
}

// SelIndices returns a new Dataset restricted to the given positions
// per coordinate. Coordinates absent from the selection pass through
// unchanged; data variables are sliced along every selected dimension
// they carry. Attributes are copied shallowly.
func (d *Dataset) SelIndices(sel map[string][]int) (*Dataset, error) {
	for name := range sel {
		if !d.HasCoord(name) {
			return nil, fmt.Errorf("no coordinate %q", name)
		}
	}

	out := NewDataset()
	for _, name := range d.coordOrder {
		c := d.coords[name]
		if rows, ok := sel[name]; ok {
			taken, err := c.Take(rows)
			if err != nil {
				return nil, err
			}
			c = taken
		}
		if err := out.AddCoord(c); err != nil {
			return nil, err
		}
	}

	for _, name := range d.varOrder {
		a := d.vars[name]
		for dim, rows := range sel {
			sliced := false
			for _, ad := range a.Dims() {
				if ad == dim {
					sliced = true
					break
				}
			}
			if !sliced {
				continue
			}
			taken, err := a.TakeAlong(dim, rows)
			if err != nil {
				return nil, err
			}
			a = taken
		}
		if err := out.AddVar(a); err != nil {
			return nil, err
		}
	}

	for k, v := range d.attrs {
		out.attrs[k] = v
	}

	return out, nil
}
