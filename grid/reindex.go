package grid

import (
	"fmt"
	"math"

	"github.com/banshee-data/gridevents/scalar"
)

// FillMethod controls how Reindex synthesises values at target labels
// with no exact match.
type FillMethod int

const (
	// FillNone leaves unmatched labels as NaN.
	FillNone FillMethod = iota
	// FillForward propagates the nearest preceding value.
	FillForward
	// FillBackward uses the nearest following value.
	FillBackward
	// FillNearest uses whichever neighbouring value is closer. Requires
	// numeric labels.
	FillNearest
)

// String returns the conventional short name of the fill method.
func (m FillMethod) String() string {
	switch m {
	case FillNone:
		return "none"
	case FillForward:
		return "ffill"
	case FillBackward:
		return "bfill"
	case FillNearest:
		return "nearest"
	default:
		return fmt.Sprintf("FillMethod(%d)", int(m))
	}
}

// ParseFillMethod parses a fill method name. The empty string means no fill.
func ParseFillMethod(s string) (FillMethod, error) {
	switch s {
	case "", "none":
		return FillNone, nil
	case "ffill", "pad":
		return FillForward, nil
	case "bfill", "backfill":
		return FillBackward, nil
	case "nearest":
		return FillNearest, nil
	default:
		return FillNone, fmt.Errorf("unknown fill method %q (want ffill, bfill, nearest or none)", s)
	}
}

// Reindex aligns a one-dimensional labelled series onto a target
// coordinate. keys must be sorted ascending under cmp and parallel to
// values. For each target label the exact matching value is used when
// present; otherwise the fill method decides. The result is a 1-D
// DataArray named name over the target coordinate, with NaN at labels
// the policy could not fill.
func Reindex(name string, keys []any, values []float64, target *Coord, method FillMethod, cmp scalar.Comparator) (*DataArray, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("reindex %q: %d keys but %d values", name, len(keys), len(values))
	}
	if cmp == nil {
		cmp = scalar.Compare
	}

	out := make([]float64, target.Len())
	for i := 0; i < target.Len(); i++ {
		label := target.Label(i)

		// Binary search for the first key >= label.
		lo, hi := 0, len(keys)
		var searchErr error
		for lo < hi {
			mid := (lo + hi) / 2
			c, err := cmp(keys[mid], label)
			if err != nil {
				searchErr = fmt.Errorf("reindex %q: %w", name, err)
				break
			}
			if c < 0 {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if searchErr != nil {
			return nil, searchErr
		}

		if lo < len(keys) {
			if c, err := cmp(keys[lo], label); err != nil {
				return nil, fmt.Errorf("reindex %q: %w", name, err)
			} else if c == 0 {
				out[i] = values[lo]
				continue
			}
		}

		// No exact match: keys[lo-1] < label < keys[lo].
		switch method {
		case FillNone:
			out[i] = math.NaN()
		case FillForward:
			if lo > 0 {
				out[i] = values[lo-1]
			} else {
				out[i] = math.NaN()
			}
		case FillBackward:
			if lo < len(keys) {
				out[i] = values[lo]
			} else {
				out[i] = math.NaN()
			}
		case FillNearest:
			v, err := nearest(name, keys, values, label, lo)
			if err != nil {
				return nil, err
			}
			out[i] = v
		default:
			return nil, fmt.Errorf("reindex %q: unknown fill method %v", name, method)
		}
	}

	return NewDataArray(name, []*Coord{target}, out)
}

func nearest(name string, keys []any, values []float64, label any, lo int) (float64, error) {
	fl, ok := scalar.Float(label)
	if !ok {
		return 0, fmt.Errorf("reindex %q: nearest fill requires numeric labels, got %T", name, label)
	}

	best := math.NaN()
	bestDist := math.Inf(1)
	for _, j := range []int{lo - 1, lo} {
		if j < 0 || j >= len(keys) {
			continue
		}
		fk, ok := scalar.Float(keys[j])
		if !ok {
			return 0, fmt.Errorf("reindex %q: nearest fill requires numeric keys, got %T", name, keys[j])
		}
		if d := math.Abs(fk - fl); d < bestDist {
			bestDist = d
			best = values[j]
		}
	}
	return best, nil
}
