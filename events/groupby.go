package events

import (
	"github.com/banshee-data/gridevents/grid"
)

type groupConfig struct {
	column string
	fill   grid.FillMethod
}

// GroupOption customises GroupByEvents.
type GroupOption func(*groupConfig)

// WithGroupColumn overrides the table column used to expand event
// identities onto the grid. The default is the span's start column.
func WithGroupColumn(name string) GroupOption {
	return func(cfg *groupConfig) { cfg.column = name }
}

// WithGroupFill overrides the fill method used during expansion. The
// default is forward fill, so each label belongs to the most recently
// started event.
func WithGroupFill(m grid.FillMethod) GroupOption {
	return func(cfg *groupConfig) { cfg.fill = m }
}

// GroupByEvents partitions a data variable into per-event groups. The
// span-start column is expanded onto the mapped coordinate with
// forward fill (overridable via options) and the result is handed to
// the grid engine's group-by, whose reductions then operate per event.
//
// Overlapping spans would assign one coordinate label to two events,
// so grouping refuses them with *ConsistencyError; run FillGaps or fix
// the table first. A variable name that does not exist fails with
// *UnknownFieldError; a missing span mapping with *MappingError.
func (c *Correlated) GroupByEvents(variable string, opts ...GroupOption) (*grid.GroupBy, error) {
	arr, ok := c.ds.Var(variable)
	if !ok {
		return nil, &UnknownFieldError{Fields: []string{variable}}
	}

	_, startCol, _, err := c.mapping.spanEntry()
	if err != nil {
		return nil, err
	}

	cfg := groupConfig{column: startCol, fill: grid.FillForward}
	for _, opt := range opts {
		opt(&cfg)
	}

	overlaps, err := c.ContainsOverlaps()
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, &ConsistencyError{Detail: "overlapping spans make per-event groups ambiguous"}
	}

	key, err := c.ExpandToMatchDS(cfg.column, WithFill(cfg.fill))
	if err != nil {
		return nil, err
	}

	groups, err := arr.GroupBy(key)
	if err != nil {
		return nil, valueErrorf("%v", err)
	}
	return groups, nil
}
