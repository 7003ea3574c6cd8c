package grid

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GroupBy is a grouped view of a DataArray: positions along one
// dimension are partitioned by the integer values of a key array
// sharing that dimension. Reductions collapse the grouped dimension to
// one entry per group; all other dimensions pass through.
type GroupBy struct {
	arr     *DataArray
	dim     string
	dimPos  int
	keyName string
	ids     []int64 // sorted unique group identities
	groupOf []int   // per position along dim: index into ids, or -1
}

// GroupBy partitions the array by a one-dimensional key array. The
// key's dimension must be a dimension of the receiver with equal
// length; key values must be whole numbers, with NaN marking positions
// that belong to no group.
func (a *DataArray) GroupBy(key *DataArray) (*GroupBy, error) {
	if len(key.Dims()) != 1 {
		return nil, fmt.Errorf("group key %q must be one-dimensional, has dims %v", key.Name(), key.Dims())
	}
	dim := key.Dims()[0]

	dimPos := -1
	for i, d := range a.dims {
		if d == dim {
			dimPos = i
			break
		}
	}
	if dimPos < 0 {
		return nil, fmt.Errorf("array %q has no dimension %q to group along", a.name, dim)
	}
	if key.Len() != a.shape[dimPos] {
		return nil, fmt.Errorf("group key %q has %d values, dimension %q has %d", key.Name(), key.Len(), dim, a.shape[dimPos])
	}

	seen := make(map[int64]bool)
	groupOf := make([]int, key.Len())
	for i, v := range key.Data() {
		if math.IsNaN(v) {
			groupOf[i] = -1
			continue
		}
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("group key %q holds non-integer value %v at position %d", key.Name(), v, i)
		}
		seen[int64(v)] = true
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	pos := make(map[int64]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	for i, v := range key.Data() {
		if !math.IsNaN(v) {
			groupOf[i] = pos[int64(v)]
		}
	}

	return &GroupBy{
		arr:     a,
		dim:     dim,
		dimPos:  dimPos,
		keyName: key.Name(),
		ids:     ids,
		groupOf: groupOf,
	}, nil
}

// Len returns the number of groups.
func (g *GroupBy) Len() int { return len(g.ids) }

// Groups returns the sorted group identities.
func (g *GroupBy) Groups() []int64 {
	return append([]int64(nil), g.ids...)
}

// Mean reduces each group to its arithmetic mean.
func (g *GroupBy) Mean() (*DataArray, error) {
	return g.reduce(func(vs []float64) float64 { return stat.Mean(vs, nil) })
}

// Median reduces each group to its median: the middle order statistic,
// or the mean of the two middle ones for even-sized groups.
func (g *GroupBy) Median() (*DataArray, error) {
	return g.reduce(func(vs []float64) float64 {
		sorted := append([]float64(nil), vs...)
		sort.Float64s(sorted)
		n := len(sorted)
		if n%2 == 1 {
			return sorted[n/2]
		}
		return (sorted[n/2-1] + sorted[n/2]) / 2
	})
}

// Min reduces each group to its minimum.
func (g *GroupBy) Min() (*DataArray, error) {
	return g.reduce(floats.Min)
}

// Max reduces each group to its maximum.
func (g *GroupBy) Max() (*DataArray, error) {
	return g.reduce(floats.Max)
}

// Sum reduces each group to its sum.
func (g *GroupBy) Sum() (*DataArray, error) {
	return g.reduce(floats.Sum)
}

// Count reduces each group to the number of values it holds.
func (g *GroupBy) Count() (*DataArray, error) {
	return g.reduce(func(vs []float64) float64 { return float64(len(vs)) })
}

// Reduce applies a named reduction: mean, median, min, max, sum or count.
func (g *GroupBy) Reduce(statistic string) (*DataArray, error) {
	switch statistic {
	case "mean":
		return g.Mean()
	case "median":
		return g.Median()
	case "min":
		return g.Min()
	case "max":
		return g.Max()
	case "sum":
		return g.Sum()
	case "count":
		return g.Count()
	default:
		return nil, fmt.Errorf("unknown statistic %q (want mean, median, min, max, sum or count)", statistic)
	}
}

func (g *GroupBy) reduce(fn func([]float64) float64) (*DataArray, error) {
	a := g.arr

	// Output coordinates: the grouped dimension is replaced by a
	// coordinate of group identities under the key's name.
	idLabels := make([]any, len(g.ids))
	for i, id := range g.ids {
		idLabels[i] = id
	}
	groupCoord, err := NewCoord(g.keyName, idLabels)
	if err != nil {
		return nil, err
	}

	coords := make([]*Coord, len(a.dims))
	outShape := make([]int, len(a.dims))
	for i, d := range a.dims {
		if i == g.dimPos {
			coords[i] = groupCoord
			outShape[i] = len(g.ids)
		} else {
			coords[i] = a.coords[d]
			outShape[i] = a.shape[i]
		}
	}

	outSize := 1
	for _, s := range outShape {
		outSize *= s
	}
	outStrides := make([]int, len(outShape))
	stride := 1
	for i := len(outShape) - 1; i >= 0; i-- {
		outStrides[i] = stride
		stride *= outShape[i]
	}

	// Collect group members per output cell, then reduce.
	buckets := make([][]float64, outSize)
	idx := make([]int, len(a.shape))
	for flat, v := range a.data {
		a.multiIndex(flat, idx)
		gpos := g.groupOf[idx[g.dimPos]]
		if gpos < 0 {
			continue
		}
		outFlat := 0
		for i, x := range idx {
			if i == g.dimPos {
				outFlat += gpos * outStrides[i]
			} else {
				outFlat += x * outStrides[i]
			}
		}
		buckets[outFlat] = append(buckets[outFlat], v)
	}

	data := make([]float64, outSize)
	for i, vs := range buckets {
		if len(vs) == 0 {
			data[i] = math.NaN()
			continue
		}
		data[i] = fn(vs)
	}

	return NewDataArray(a.name, coords, data)
}
