package events

import (
	"github.com/banshee-data/gridevents/frame"
	"github.com/banshee-data/gridevents/grid"
)

// Target is one side of a dimension-mapping entry: either a single
// event-table column for point-in-time events, or a start/end column
// pair spanning a contiguous coordinate range.
type Target struct {
	col   string
	start string
	end   string
}

// Col maps a coordinate to a single event-table column.
func Col(name string) Target {
	return Target{col: name}
}

// Span maps a coordinate to an inclusive start/end column pair.
func Span(start, end string) Target {
	return Target{start: start, end: end}
}

// IsSpan reports whether the target is a start/end pair.
func (t Target) IsSpan() bool { return t.col == "" }

// Columns returns the event-table columns the target references.
func (t Target) Columns() []string {
	if t.IsSpan() {
		return []string{t.start, t.end}
	}
	return []string{t.col}
}

// Mapping declares the correspondence between grid coordinate names
// (keys) and event-table columns (values). It is supplied once at Load
// and reused by every subsequent operation. At most one entry may be a
// span: the span defines the event duration used for overlap checks
// and grouping.
type Mapping map[string]Target

// validate checks every entry against the dataset and table.
func (m Mapping) validate(ds *grid.Dataset, table *frame.Frame) error {
	spans := 0
	for coord, target := range m {
		if !ds.HasCoord(coord) {
			return mappingErrorf("%q is not a dataset coordinate", coord)
		}
		if target.IsSpan() {
			spans++
			if target.start == "" || target.end == "" {
				return mappingErrorf("span for coordinate %q must name exactly two columns", coord)
			}
		}
		for _, col := range target.Columns() {
			if !table.HasColumn(col) {
				return mappingErrorf("%q is not an event-table column", col)
			}
		}
	}
	if spans > 1 {
		return mappingErrorf("more than one span mapping given")
	}
	return nil
}

// coordFor resolves the coordinate a table column is registered under
// (the inverse lookup used during expansion).
func (m Mapping) coordFor(column string) (string, error) {
	if len(m) == 0 {
		return "", mappingErrorf("mapping not loaded")
	}
	for coord, target := range m {
		for _, col := range target.Columns() {
			if col == column {
				return coord, nil
			}
		}
	}
	return "", mappingErrorf("no match found for column %q", column)
}

// spanEntry returns the single span mapping, if one was declared.
func (m Mapping) spanEntry() (coord, start, end string, err error) {
	if len(m) == 0 {
		return "", "", "", mappingErrorf("mapping not loaded")
	}
	for c, target := range m {
		if target.IsSpan() {
			return c, target.start, target.end, nil
		}
	}
	return "", "", "", mappingErrorf("no span mapping given")
}

// clone returns a copy of the mapping so narrowed containers never
// share mutable state with their parents.
func (m Mapping) clone() Mapping {
	if m == nil {
		return nil
	}
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
