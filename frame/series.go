package frame

import (
	"fmt"
	"math"

	"github.com/banshee-data/gridevents/scalar"
)

// Series is a single named column of homogeneous values. Concrete
// implementations exist for the cell types event tables carry; the
// interface lets a Frame hold heterogeneous columns side by side.
type Series interface {
	// Name returns the column name.
	Name() string
	// Len returns the number of values.
	Len() int
	// Value returns the value at row i as a dynamically typed scalar.
	Value(i int) any
	// Take returns a new Series containing the given row positions in order.
	Take(rows []int) Series
	// Rename returns a copy of the Series under a new name.
	Rename(name string) Series
}

// IntSeries is a column of 64-bit integers.
type IntSeries struct {
	name   string
	values []int64
}

// NewInt creates an IntSeries from a slice of values. The slice is copied.
func NewInt(name string, values []int64) *IntSeries {
	return &IntSeries{name: name, values: append([]int64(nil), values...)}
}

// NewIntFromInts creates an IntSeries from platform ints.
func NewIntFromInts(name string, values []int) *IntSeries {
	v := make([]int64, len(values))
	for i, x := range values {
		v[i] = int64(x)
	}
	return &IntSeries{name: name, values: v}
}

func (s *IntSeries) Name() string    { return s.name }
func (s *IntSeries) Len() int        { return len(s.values) }
func (s *IntSeries) Value(i int) any { return s.values[i] }

// Values returns the underlying int64 values. The slice is shared; do not modify.
func (s *IntSeries) Values() []int64 { return s.values }

func (s *IntSeries) Take(rows []int) Series {
	v := make([]int64, len(rows))
	for i, r := range rows {
		v[i] = s.values[r]
	}
	return &IntSeries{name: s.name, values: v}
}

func (s *IntSeries) Rename(name string) Series {
	return &IntSeries{name: name, values: s.values}
}

// FloatSeries is a column of float64 values. NaN marks a missing cell.
type FloatSeries struct {
	name   string
	values []float64
}

// NewFloat creates a FloatSeries from a slice of values. The slice is copied.
func NewFloat(name string, values []float64) *FloatSeries {
	return &FloatSeries{name: name, values: append([]float64(nil), values...)}
}

func (s *FloatSeries) Name() string    { return s.name }
func (s *FloatSeries) Len() int        { return len(s.values) }
func (s *FloatSeries) Value(i int) any { return s.values[i] }

// Values returns the underlying float64 values. The slice is shared; do not modify.
func (s *FloatSeries) Values() []float64 { return s.values }

func (s *FloatSeries) Take(rows []int) Series {
	v := make([]float64, len(rows))
	for i, r := range rows {
		v[i] = s.values[r]
	}
	return &FloatSeries{name: s.name, values: v}
}

func (s *FloatSeries) Rename(name string) Series {
	return &FloatSeries{name: name, values: s.values}
}

// StringSeries is a column of strings.
type StringSeries struct {
	name   string
	values []string
}

// NewString creates a StringSeries from a slice of values. The slice is copied.
func NewString(name string, values []string) *StringSeries {
	return &StringSeries{name: name, values: append([]string(nil), values...)}
}

func (s *StringSeries) Name() string    { return s.name }
func (s *StringSeries) Len() int        { return len(s.values) }
func (s *StringSeries) Value(i int) any { return s.values[i] }

// Values returns the underlying string values. The slice is shared; do not modify.
func (s *StringSeries) Values() []string { return s.values }

func (s *StringSeries) Take(rows []int) Series {
	v := make([]string, len(rows))
	for i, r := range rows {
		v[i] = s.values[r]
	}
	return &StringSeries{name: s.name, values: v}
}

func (s *StringSeries) Rename(name string) Series {
	return &StringSeries{name: name, values: s.values}
}

// BoolSeries is a column of booleans.
type BoolSeries struct {
	name   string
	values []bool
}

// NewBool creates a BoolSeries from a slice of values. The slice is copied.
func NewBool(name string, values []bool) *BoolSeries {
	return &BoolSeries{name: name, values: append([]bool(nil), values...)}
}

func (s *BoolSeries) Name() string    { return s.name }
func (s *BoolSeries) Len() int        { return len(s.values) }
func (s *BoolSeries) Value(i int) any { return s.values[i] }

func (s *BoolSeries) Take(rows []int) Series {
	v := make([]bool, len(rows))
	for i, r := range rows {
		v[i] = s.values[r]
	}
	return &BoolSeries{name: s.name, values: v}
}

func (s *BoolSeries) Rename(name string) Series {
	return &BoolSeries{name: name, values: s.values}
}

// appendValue grows a Series by one value, coercing compatible types.
// A nil value appends the zero (or missing) marker for the column type.
func appendValue(s Series, v any) (Series, error) {
	switch col := s.(type) {
	case *IntSeries:
		if v == nil {
			return &IntSeries{name: col.name, values: append(append([]int64(nil), col.values...), 0)}, nil
		}
		f, ok := scalar.Float(v)
		if !ok || f != math.Trunc(f) {
			return nil, fmt.Errorf("column %q: cannot append %v (%T) to integer column", col.name, v, v)
		}
		return &IntSeries{name: col.name, values: append(append([]int64(nil), col.values...), int64(f))}, nil
	case *FloatSeries:
		if v == nil {
			return &FloatSeries{name: col.name, values: append(append([]float64(nil), col.values...), math.NaN())}, nil
		}
		f, ok := scalar.Float(v)
		if !ok {
			return nil, fmt.Errorf("column %q: cannot append %v (%T) to float column", col.name, v, v)
		}
		return &FloatSeries{name: col.name, values: append(append([]float64(nil), col.values...), f)}, nil
	case *StringSeries:
		if v == nil {
			return &StringSeries{name: col.name, values: append(append([]string(nil), col.values...), "")}, nil
		}
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("column %q: cannot append %v (%T) to string column", col.name, v, v)
		}
		return &StringSeries{name: col.name, values: append(append([]string(nil), col.values...), str)}, nil
	case *BoolSeries:
		if v == nil {
			return &BoolSeries{name: col.name, values: append(append([]bool(nil), col.values...), false)}, nil
		}
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("column %q: cannot append %v (%T) to bool column", col.name, v, v)
		}
		return &BoolSeries{name: col.name, values: append(append([]bool(nil), col.values...), b)}, nil
	default:
		return nil, fmt.Errorf("column %q: unsupported series type %T", s.Name(), s)
	}
}
