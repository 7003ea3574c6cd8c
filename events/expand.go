package events

import (
	"github.com/banshee-data/gridevents/grid"
)

// defaultIdentityName names the materialised row-identity column when
// the event table's index carries no name of its own.
const defaultIdentityName = "event_index"

type expandConfig struct {
	fill     grid.FillMethod
	valueCol string
}

// ExpandOption customises ExpandToMatchDS.
type ExpandOption func(*expandConfig)

// WithFill sets the fill method used at coordinate labels with no
// exactly matching event. The default leaves them as NaN.
func WithFill(m grid.FillMethod) ExpandOption {
	return func(cfg *expandConfig) { cfg.fill = m }
}

// WithValueColumn selects the table column whose values fill the
// expanded array. The default is the row-identity column.
func WithValueColumn(name string) ExpandOption {
	return func(cfg *expandConfig) { cfg.valueCol = name }
}

// ExpandToMatchDS expands an event-table column onto the full label
// range of the grid coordinate it is mapped to, producing a
// one-dimensional array over that coordinate.
//
// The table is sorted ascending by dimensionCol, row identities
// (original row positions) are materialised as an explicit column, the
// value column is projected out and aligned onto the coordinate with
// the configured fill method. Identities therefore refer to original
// row order, not sorted order; labels with no match stay NaN under the
// default no-fill policy. A table column already named after the
// identity takes precedence: its values become the identities and the
// row labels are not materialised.
//
// dimensionCol must be registered in the dimension mapping
// (*MappingError otherwise); unknown columns fail with
// *UnknownFieldError.
func (c *Correlated) ExpandToMatchDS(dimensionCol string, opts ...ExpandOption) (*grid.DataArray, error) {
	identity := c.table.IndexName()
	if identity == "" {
		identity = defaultIdentityName
	}

	cfg := expandConfig{fill: grid.FillNone, valueCol: identity}
	for _, opt := range opts {
		opt(&cfg)
	}

	coordName, err := c.mapping.coordFor(dimensionCol)
	if err != nil {
		return nil, err
	}
	coord, ok := c.ds.Coord(coordName)
	if !ok {
		return nil, mappingErrorf("mapped coordinate %q no longer exists in the dataset", coordName)
	}

	if !c.table.HasColumn(dimensionCol) {
		return nil, &UnknownFieldError{Fields: []string{dimensionCol}}
	}
	if cfg.valueCol != identity && !c.table.HasColumn(cfg.valueCol) {
		return nil, &UnknownFieldError{Fields: []string{cfg.valueCol}}
	}

	sorted, err := c.table.SortBy(dimensionCol, c.cmp)
	if err != nil {
		return nil, valueErrorf("%v", err)
	}

	reset := sorted
	if !sorted.HasColumn(identity) {
		reset, err = sorted.ResetIndex(identity)
		if err != nil {
			return nil, valueErrorf("%v", err)
		}
	}

	keys, err := reset.Values(dimensionCol)
	if err != nil {
		return nil, valueErrorf("%v", err)
	}
	values, err := reset.Floats(cfg.valueCol)
	if err != nil {
		return nil, valueErrorf("%v", err)
	}

	expanded, err := grid.Reindex(cfg.valueCol, keys, values, coord, cfg.fill, c.cmp)
	if err != nil {
		return nil, valueErrorf("%v", err)
	}
	return expanded, nil
}
