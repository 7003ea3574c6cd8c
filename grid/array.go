package grid

import (
	"fmt"
)

// DataArray is a named, dense float64 array indexed by one or more
// coordinates. Data is stored flat in row-major order; the dimension
// order is the coordinate order given at construction.
type DataArray struct {
	name    string
	dims    []string
	coords  map[string]*Coord
	shape   []int
	strides []int
	data    []float64
}

// NewDataArray builds an array over the given coordinates. The data
// length must equal the product of the coordinate lengths.
func NewDataArray(name string, coords []*Coord, data []float64) (*DataArray, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("array %q needs at least one coordinate", name)
	}

	dims := make([]string, len(coords))
	shape := make([]int, len(coords))
	byName := make(map[string]*Coord, len(coords))
	size := 1
	for i, c := range coords {
		if _, dup := byName[c.Name()]; dup {
			return nil, fmt.Errorf("array %q: duplicate dimension %q", name, c.Name())
		}
		dims[i] = c.Name()
		shape[i] = c.Len()
		byName[c.Name()] = c
		size *= c.Len()
	}
	if len(data) != size {
		return nil, fmt.Errorf("array %q: data has %d values, shape %v requires %d", name, len(data), shape, size)
	}

	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}

	return &DataArray{
		name:    name,
		dims:    dims,
		coords:  byName,
		shape:   shape,
		strides: strides,
		data:    append([]float64(nil), data...),
	}, nil
}

// Name returns the array name.
func (a *DataArray) Name() string { return a.name }

// Dims returns the dimension names in order.
func (a *DataArray) Dims() []string { return a.dims }

// Shape returns the length of each dimension.
func (a *DataArray) Shape() []int { return a.shape }

// Coord returns the coordinate for a dimension, or false if absent.
func (a *DataArray) Coord(dim string) (*Coord, bool) {
	c, ok := a.coords[dim]
	return c, ok
}

// Data returns the flat row-major values. The slice is shared; do not modify.
func (a *DataArray) Data() []float64 { return a.data }

// Len returns the total number of values.
func (a *DataArray) Len() int { return len(a.data) }

// At returns the value at the given multi-index.
func (a *DataArray) At(idx ...int) float64 {
	return a.data[a.flatIndex(idx)]
}

// Rename returns the array under a new name sharing the same data.
func (a *DataArray) Rename(name string) *DataArray {
	out := *a
	out.name = name
	return &out
}

// TakeAlong returns the array restricted to the given positions of one
// dimension, preserving all other dimensions.
func (a *DataArray) TakeAlong(dim string, rows []int) (*DataArray, error) {
	dimPos := -1
	for i, d := range a.dims {
		if d == dim {
			dimPos = i
			break
		}
	}
	if dimPos < 0 {
		return nil, fmt.Errorf("array %q has no dimension %q", a.name, dim)
	}

	newCoord, err := a.coords[dim].Take(rows)
	if err != nil {
		return nil, err
	}

	coords := make([]*Coord, len(a.dims))
	for i, d := range a.dims {
		if i == dimPos {
			coords[i] = newCoord
		} else {
			coords[i] = a.coords[d]
		}
	}

	newShape := append([]int(nil), a.shape...)
	newShape[dimPos] = len(rows)
	size := 1
	for _, s := range newShape {
		size *= s
	}

	data := make([]float64, 0, size)
	idx := make([]int, len(a.shape))
	var walk func(d int)
	walk = func(d int) {
		if d == len(newShape) {
			data = append(data, a.data[a.flatIndex(idx)])
			return
		}
		if d == dimPos {
			for _, r := range rows {
				idx[d] = r
				walk(d + 1)
			}
			return
		}
		for i := 0; i < a.shape[d]; i++ {
			idx[d] = i
			walk(d + 1)
		}
	}
	walk(0)

	return NewDataArray(a.name, coords, data)
}

func (a *DataArray) flatIndex(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("array %q: index rank %d, want %d", a.name, len(idx), len(a.shape)))
	}
	flat := 0
	for i, x := range idx {
		flat += x * a.strides[i]
	}
	return flat
}

// multiIndex decomposes a flat position into a multi-index.
func (a *DataArray) multiIndex(flat int, idx []int) {
	for i := range a.shape {
		idx[i] = flat / a.strides[i]
		flat %= a.strides[i]
	}
}
