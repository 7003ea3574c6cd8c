package events

import (
	"fmt"
	"log"

	"github.com/banshee-data/gridevents/frame"
	"github.com/banshee-data/gridevents/grid"
	"github.com/banshee-data/gridevents/scalar"
)

// Correlated bundles a dataset with its attached event table and
// dimension mapping. It is a value: Sel and FillGaps return new
// Correlated instances and never mutate the receiver, so one loaded
// container can root several independent query chains.
type Correlated struct {
	ds      *grid.Dataset
	table   *frame.Frame
	mapping Mapping
	cmp     scalar.Comparator
}

// LoadOption customises Load.
type LoadOption func(*Correlated)

// WithComparator replaces the default scalar ordering used for span
// and range comparisons. Supply one when span values are of a domain
// type the default ordering cannot compare.
func WithComparator(cmp scalar.Comparator) LoadOption {
	return func(c *Correlated) { c.cmp = cmp }
}

// Load attaches an event table to a dataset. The mapping declares
// which coordinates correspond to which table columns; it may be nil
// when the caller only ever issues self-describing constraints, but
// expansion and grouping require one.
//
// The mapping is validated eagerly. When it declares a span, the spans
// are checked for overlap as an advisory diagnostic: overlaps are
// logged but do not fail the load, since plain selection does not
// require an unambiguous coordinate-to-event mapping.
func Load(ds *grid.Dataset, table *frame.Frame, mapping Mapping, opts ...LoadOption) (*Correlated, error) {
	if ds == nil {
		return nil, fmt.Errorf("load: dataset is nil")
	}
	if table == nil {
		return nil, fmt.Errorf("load: event table is nil")
	}

	c := &Correlated{ds: ds, table: table, mapping: mapping.clone(), cmp: scalar.Compare}
	for _, opt := range opts {
		opt(c)
	}

	if len(c.mapping) > 0 {
		if err := c.mapping.validate(ds, table); err != nil {
			return nil, err
		}

		if _, _, _, err := c.mapping.spanEntry(); err == nil {
			overlaps, err := c.ContainsOverlaps()
			if err != nil {
				return nil, err
			}
			if overlaps {
				log.Printf("events: loaded table contains overlapping spans; grouping will be refused")
			}
		}
	}

	return c, nil
}

// Dataset returns the grid side of the container.
func (c *Correlated) Dataset() *grid.Dataset { return c.ds }

// Table returns the attached event table for inspection.
func (c *Correlated) Table() *frame.Frame { return c.table }

// Mapping returns a copy of the dimension mapping.
func (c *Correlated) Mapping() Mapping { return c.mapping.clone() }

// derive builds a narrowed container sharing the mapping and comparator.
func (c *Correlated) derive(ds *grid.Dataset, table *frame.Frame) *Correlated {
	return &Correlated{ds: ds, table: table, mapping: c.mapping.clone(), cmp: c.cmp}
}
