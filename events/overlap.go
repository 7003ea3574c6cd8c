package events

// Span overlap and gap detection over the coordinate declared by the
// span mapping. Two inclusive spans [a0,a1] and [b0,b1] overlap iff
// a0 <= b1 && b0 <= a1.

// ContainsOverlaps reports whether any two event spans intersect on
// the span-mapped coordinate. The check is mandatory before grouping
// (overlapping spans make the coordinate-to-event mapping ambiguous)
// and advisory elsewhere.
//
// Span values must be orderable under the container's comparator;
// otherwise an error is returned rather than a silent mis-comparison.
func (c *Correlated) ContainsOverlaps() (bool, error) {
	_, startCol, endCol, err := c.mapping.spanEntry()
	if err != nil {
		return false, err
	}

	sorted, err := c.table.SortBy(startCol, c.cmp)
	if err != nil {
		return false, valueErrorf("%v", err)
	}

	starts, err := sorted.Values(startCol)
	if err != nil {
		return false, valueErrorf("%v", err)
	}
	ends, err := sorted.Values(endCol)
	if err != nil {
		return false, valueErrorf("%v", err)
	}

	// Sorted by start, so a span overlaps a predecessor iff its start
	// does not pass the furthest end seen so far.
	var maxEnd any
	for i := range starts {
		if i > 0 {
			cmp, err := c.cmp(starts[i], maxEnd)
			if err != nil {
				return false, valueErrorf("span comparison: %v", err)
			}
			if cmp <= 0 {
				return true, nil
			}
		}
		if maxEnd == nil {
			maxEnd = ends[i]
		} else {
			cmp, err := c.cmp(ends[i], maxEnd)
			if err != nil {
				return false, valueErrorf("span comparison: %v", err)
			}
			if cmp > 0 {
				maxEnd = ends[i]
			}
		}
	}

	return false, nil
}

// ContainsGaps reports whether any label of the span-mapped coordinate
// is covered by no event span.
func (c *Correlated) ContainsGaps() (bool, error) {
	covered, _, err := c.coverage()
	if err != nil {
		return false, err
	}
	for _, ok := range covered {
		if !ok {
			return true, nil
		}
	}
	return false, nil
}

// coverage computes, per label of the span coordinate, whether some
// event span covers it.
func (c *Correlated) coverage() (covered []bool, coordName string, err error) {
	coordName, startCol, endCol, err := c.mapping.spanEntry()
	if err != nil {
		return nil, "", err
	}
	coord, ok := c.ds.Coord(coordName)
	if !ok {
		return nil, "", mappingErrorf("mapped coordinate %q no longer exists in the dataset", coordName)
	}

	starts, err := c.table.Values(startCol)
	if err != nil {
		return nil, "", valueErrorf("%v", err)
	}
	ends, err := c.table.Values(endCol)
	if err != nil {
		return nil, "", valueErrorf("%v", err)
	}

	covered = make([]bool, coord.Len())
	for i := 0; i < coord.Len(); i++ {
		label := coord.Label(i)
		for row := range starts {
			lo, err := c.cmp(starts[row], label)
			if err != nil {
				return nil, "", valueErrorf("span comparison: %v", err)
			}
			hi, err := c.cmp(label, ends[row])
			if err != nil {
				return nil, "", valueErrorf("span comparison: %v", err)
			}
			if lo <= 0 && hi <= 0 {
				covered[i] = true
				break
			}
		}
	}
	return covered, coordName, nil
}

type gapConfig struct {
	typeCol   string
	typeValue string
	extra     map[string]any
}

// GapOption customises FillGaps.
type GapOption func(*gapConfig)

// WithGapEventType sets the column and value identifying filler
// events. Defaults to column "event_type" with value "default".
func WithGapEventType(column, value string) GapOption {
	return func(cfg *gapConfig) {
		cfg.typeCol = column
		cfg.typeValue = value
	}
}

// WithGapValues supplies extra column values for the filler events.
func WithGapValues(values map[string]any) GapOption {
	return func(cfg *gapConfig) { cfg.extra = values }
}

// FillGaps appends one synthetic event per maximal uncovered run of
// the span coordinate, so that forward-filled expansion assigns every
// coordinate label to some event. Filler events take their span
// endpoints from the gap and are appended after the existing rows;
// row labels are renumbered 0..n-1 afterwards, matching the identity
// numbering expansion reports.
func (c *Correlated) FillGaps(opts ...GapOption) (*Correlated, error) {
	cfg := gapConfig{typeCol: "event_type", typeValue: "default"}
	for _, opt := range opts {
		opt(&cfg)
	}

	covered, coordName, err := c.coverage()
	if err != nil {
		return nil, err
	}
	_, startCol, endCol, err := c.mapping.spanEntry()
	if err != nil {
		return nil, err
	}
	coord, _ := c.ds.Coord(coordName)

	if !c.table.HasColumn(cfg.typeCol) {
		return nil, &UnknownFieldError{Fields: []string{cfg.typeCol}}
	}

	table := c.table
	for i := 0; i < len(covered); {
		if covered[i] {
			i++
			continue
		}
		j := i
		for j+1 < len(covered) && !covered[j+1] {
			j++
		}

		row := map[string]any{
			startCol:    coord.Label(i),
			endCol:      coord.Label(j),
			cfg.typeCol: cfg.typeValue,
		}
		for k, v := range cfg.extra {
			row[k] = v
		}

		appended, err := table.Append(row)
		if err != nil {
			return nil, valueErrorf("%v", err)
		}
		table = appended
		i = j + 1
	}

	return c.derive(c.ds, table.ResetLabels()), nil
}
