// Package frame implements the row-oriented event table: a small,
// immutable dataframe with typed columns, integer row labels, boolean
// mask filtering, stable sorting and index bookkeeping.
//
// Every operation returns a new Frame; the receiver is never modified.
// Row labels track original row positions through filtering and sorting
// so that event identities survive the sort/reset/reindex pipeline used
// during index expansion.
package frame

import (
	"fmt"
	"sort"

	"github.com/banshee-data/gridevents/scalar"
)

// Frame is an ordered collection of equally sized columns plus integer
// row labels. The zero value is not usable; construct with New.
type Frame struct {
	cols      []Series
	byName    map[string]int
	labels    []int
	indexName string
}

// New builds a Frame from the given columns. All columns must have the
// same length and distinct names. Row labels start at 0..n-1.
func New(cols ...Series) (*Frame, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("frame requires at least one column")
	}

	n := cols[0].Len()
	byName := make(map[string]int, len(cols))
	for i, c := range cols {
		if c.Len() != n {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name(), c.Len(), n)
		}
		if _, dup := byName[c.Name()]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name())
		}
		byName[c.Name()] = i
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}

	return &Frame{cols: append([]Series(nil), cols...), byName: byName, labels: labels}, nil
}

// MustNew is New that panics on error. Intended for fixtures and tests.
func MustNew(cols ...Series) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return f.cols[0].Len() }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name()
	}
	return names
}

// Column returns the named column, or false if it does not exist.
func (f *Frame) Column(name string) (Series, bool) {
	i, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Labels returns the row labels. The slice is shared; do not modify.
func (f *Frame) Labels() []int { return f.labels }

// IndexName returns the name of the row index, if one has been set.
func (f *Frame) IndexName() string { return f.indexName }

// WithIndexName returns a copy of the Frame whose row index carries the
// given name. The name is used as the default identity column during
// index expansion.
func (f *Frame) WithIndexName(name string) *Frame {
	out := f.shallowCopy()
	out.indexName = name
	return out
}

// Values returns the named column's values as dynamically typed scalars.
func (f *Frame) Values(name string) ([]any, error) {
	col, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	out := make([]any, col.Len())
	for i := range out {
		out[i] = col.Value(i)
	}
	return out, nil
}

// Floats returns a numeric column's values as float64.
func (f *Frame) Floats(name string) ([]float64, error) {
	col, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	out := make([]float64, col.Len())
	for i := range out {
		v, ok := scalar.Float(col.Value(i))
		if !ok {
			return nil, fmt.Errorf("column %q is not numeric (row %d holds %T)", name, i, col.Value(i))
		}
		out[i] = v
	}
	return out, nil
}

// Row returns one row as a column-name to value map.
func (f *Frame) Row(i int) map[string]any {
	out := make(map[string]any, len(f.cols))
	for _, c := range f.cols {
		out[c.Name()] = c.Value(i)
	}
	return out
}

// Filter returns the rows where mask is true. Row labels are preserved.
func (f *Frame) Filter(mask []bool) (*Frame, error) {
	if len(mask) != f.NumRows() {
		return nil, fmt.Errorf("mask length %d does not match %d rows", len(mask), f.NumRows())
	}
	var rows []int
	for i, keep := range mask {
		if keep {
			rows = append(rows, i)
		}
	}
	return f.Take(rows), nil
}

// Take returns the given row positions, in order. Row labels are preserved.
func (f *Frame) Take(rows []int) *Frame {
	cols := make([]Series, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Take(rows)
	}
	labels := make([]int, len(rows))
	for i, r := range rows {
		labels[i] = f.labels[r]
	}
	out := &Frame{cols: cols, byName: f.byName, labels: labels, indexName: f.indexName}
	return out
}

// SortBy returns the Frame stably sorted ascending by the named column.
// A nil comparator uses the default scalar ordering.
func (f *Frame) SortBy(name string, cmp scalar.Comparator) (*Frame, error) {
	col, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	if cmp == nil {
		cmp = scalar.Compare
	}

	rows := make([]int, f.NumRows())
	for i := range rows {
		rows[i] = i
	}

	var sortErr error
	sort.SliceStable(rows, func(a, b int) bool {
		c, err := cmp(col.Value(rows[a]), col.Value(rows[b]))
		if err != nil && sortErr == nil {
			sortErr = fmt.Errorf("sorting by %q: %w", name, err)
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}

	return f.Take(rows), nil
}

// ResetIndex materialises the row labels as a new leading integer column
// with the given name and renumbers the labels 0..n-1. An empty name
// defaults to "index".
func (f *Frame) ResetIndex(name string) (*Frame, error) {
	if name == "" {
		name = "index"
	}
	if f.HasColumn(name) {
		return nil, fmt.Errorf("cannot reset index: column %q already exists", name)
	}

	idx := make([]int64, len(f.labels))
	for i, l := range f.labels {
		idx[i] = int64(l)
	}

	cols := make([]Series, 0, len(f.cols)+1)
	cols = append(cols, NewInt(name, idx))
	cols = append(cols, f.cols...)

	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetIndex replaces the row labels with an integer column's values and
// removes that column, the inverse of ResetIndex. The column name
// becomes the index name.
func (f *Frame) SetIndex(name string) (*Frame, error) {
	i, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	col, ok := f.cols[i].(*IntSeries)
	if !ok {
		return nil, fmt.Errorf("column %q is not an integer column", name)
	}

	labels := make([]int, col.Len())
	for j, v := range col.Values() {
		labels[j] = int(v)
	}

	cols := make([]Series, 0, len(f.cols)-1)
	for j, c := range f.cols {
		if j != i {
			cols = append(cols, c)
		}
	}
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	out.labels = labels
	out.indexName = name
	return out, nil
}

// ResetLabels renumbers the row labels 0..n-1 without materialising them.
func (f *Frame) ResetLabels() *Frame {
	out := f.shallowCopy()
	out.labels = make([]int, f.NumRows())
	for i := range out.labels {
		out.labels[i] = i
	}
	return out
}

// Append returns the Frame with one extra row. Columns absent from the
// row map receive the zero (or missing) marker for their type. The new
// row's label continues from the current maximum.
func (f *Frame) Append(row map[string]any) (*Frame, error) {
	for name := range row {
		if !f.HasColumn(name) {
			return nil, fmt.Errorf("no column %q", name)
		}
	}

	cols := make([]Series, len(f.cols))
	for i, c := range f.cols {
		grown, err := appendValue(c, row[c.Name()])
		if err != nil {
			return nil, err
		}
		cols[i] = grown
	}

	maxLabel := -1
	for _, l := range f.labels {
		if l > maxLabel {
			maxLabel = l
		}
	}
	labels := append(append([]int(nil), f.labels...), maxLabel+1)

	return &Frame{cols: cols, byName: f.byName, labels: labels, indexName: f.indexName}, nil
}

// Equal reports whether two frames hold the same columns, values and labels.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil || f.NumRows() != other.NumRows() || f.NumCols() != other.NumCols() {
		return false
	}
	for i, l := range f.labels {
		if other.labels[i] != l {
			return false
		}
	}
	for _, c := range f.cols {
		oc, ok := other.Column(c.Name())
		if !ok {
			return false
		}
		for i := 0; i < c.Len(); i++ {
			if !scalar.Equal(c.Value(i), oc.Value(i)) {
				return false
			}
		}
	}
	return true
}

func (f *Frame) shallowCopy() *Frame {
	return &Frame{
		cols:      f.cols,
		byName:    f.byName,
		labels:    f.labels,
		indexName: f.indexName,
	}
}
