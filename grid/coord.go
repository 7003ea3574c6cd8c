package grid

import (
	"fmt"

	"github.com/banshee-data/gridevents/scalar"
)

// Coord is a named, ordered sequence of labels along which data arrays
// are indexed. Labels are dynamically typed scalars (frame numbers,
// player identifiers, axis names) and must be unique within a Coord.
type Coord struct {
	name   string
	labels []any
	index  map[any]int
}

// NewCoord creates a coordinate from a label sequence. Duplicate labels
// are rejected: selection by label would otherwise be ambiguous.
func NewCoord(name string, labels []any) (*Coord, error) {
	if name == "" {
		return nil, fmt.Errorf("coordinate needs a name")
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("coordinate %q needs at least one label", name)
	}

	index := make(map[any]int, len(labels))
	for i, l := range labels {
		k := labelKey(l)
		if _, dup := index[k]; dup {
			return nil, fmt.Errorf("coordinate %q has duplicate label %v", name, l)
		}
		index[k] = i
	}

	return &Coord{name: name, labels: append([]any(nil), labels...), index: index}, nil
}

// RangeCoord creates an integer coordinate covering start..stop inclusive.
func RangeCoord(name string, start, stop int64) *Coord {
	labels := make([]any, 0, stop-start+1)
	for v := start; v <= stop; v++ {
		labels = append(labels, v)
	}
	c, err := NewCoord(name, labels)
	if err != nil {
		panic(err) // unreachable: range labels are unique
	}
	return c
}

// IntCoord creates a coordinate from integer labels.
func IntCoord(name string, labels []int64) (*Coord, error) {
	out := make([]any, len(labels))
	for i, l := range labels {
		out[i] = l
	}
	return NewCoord(name, out)
}

// StringCoord creates a coordinate from string labels.
func StringCoord(name string, labels ...string) (*Coord, error) {
	out := make([]any, len(labels))
	for i, l := range labels {
		out[i] = l
	}
	return NewCoord(name, out)
}

// Name returns the coordinate name.
func (c *Coord) Name() string { return c.name }

// Len returns the number of labels.
func (c *Coord) Len() int { return len(c.labels) }

// Label returns the label at position i.
func (c *Coord) Label(i int) any { return c.labels[i] }

// Labels returns all labels in order. The slice is shared; do not modify.
func (c *Coord) Labels() []any { return c.labels }

// Index returns the position of a label, or false if absent. Numeric
// labels match across widths: Index(int(5)) finds the label int64(5).
func (c *Coord) Index(label any) (int, bool) {
	i, ok := c.index[labelKey(label)]
	return i, ok
}

// Take returns a coordinate restricted to the given positions, in order.
// Unlike NewCoord, the result may be empty: a selection that matches
// nothing yields a zero-length coordinate, not an error.
func (c *Coord) Take(rows []int) (*Coord, error) {
	labels := make([]any, len(rows))
	index := make(map[any]int, len(rows))
	for i, r := range rows {
		if r < 0 || r >= len(c.labels) {
			return nil, fmt.Errorf("coordinate %q: position %d out of range [0,%d)", c.name, r, len(c.labels))
		}
		labels[i] = c.labels[r]
		index[labelKey(labels[i])] = i
	}
	return &Coord{name: c.name, labels: labels, index: index}, nil
}

// labelKey normalises a label for map lookup so numeric labels of
// different widths collide.
func labelKey(v any) any {
	if f, ok := scalar.Float(v); ok {
		return f
	}
	return v
}
