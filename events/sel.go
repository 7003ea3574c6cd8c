package events

import (
	"github.com/banshee-data/gridevents/frame"
)

// Sel narrows both spaces of the container by a set of named
// constraints and returns a new Correlated holding the filtered
// dataset and table.
//
// Each key is routed by name: keys matching a dataset coordinate
// filter the grid along that coordinate, keys matching an event-table
// column filter the table's rows, and a key present in both spaces
// applies the same constraint to both. Constraints within a space
// combine by conjunction. No implicit propagation occurs between
// spaces: filtering a coordinate never drops event rows and vice
// versa.
//
// Keys matching neither space fail with *UnknownFieldError.
func (c *Correlated) Sel(constraints map[string]Constraint) (*Correlated, error) {
	var unknown []string
	gridKeys := make(map[string]Constraint)
	tableKeys := make(map[string]Constraint)

	for key, constraint := range constraints {
		matched := false
		if c.ds.HasCoord(key) {
			gridKeys[key] = constraint
			matched = true
		}
		if c.table.HasColumn(key) {
			tableKeys[key] = constraint
			matched = true
		}
		if !matched {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownFieldError{Fields: unknown}
	}

	ds := c.ds
	if len(gridKeys) > 0 {
		sel := make(map[string][]int, len(gridKeys))
		for name, constraint := range gridKeys {
			coord, _ := ds.Coord(name)
			mask, err := constraint.mask(coord.Labels(), c.cmp)
			if err != nil {
				return nil, err
			}
			var keep []int
			for i, ok := range mask {
				if ok {
					keep = append(keep, i)
				}
			}
			sel[name] = keep
		}
		filtered, err := ds.SelIndices(sel)
		if err != nil {
			return nil, err
		}
		ds = filtered
	}

	table := c.table
	if len(tableKeys) > 0 {
		mask := make([]bool, table.NumRows())
		for i := range mask {
			mask[i] = true
		}
		for name, constraint := range tableKeys {
			values, err := table.Values(name)
			if err != nil {
				return nil, err
			}
			m, err := constraint.mask(values, c.cmp)
			if err != nil {
				return nil, err
			}
			for i := range mask {
				mask[i] = mask[i] && m[i]
			}
		}
		filtered, err := table.Filter(mask)
		if err != nil {
			return nil, err
		}
		table = filtered
	}

	return c.derive(ds, table), nil
}

// SelRows is a convenience that applies Sel and returns only the
// filtered table, for callers inspecting events without the grid.
func (c *Correlated) SelRows(constraints map[string]Constraint) (*frame.Frame, error) {
	out, err := c.Sel(constraints)
	if err != nil {
		return nil, err
	}
	return out.Table(), nil
}
