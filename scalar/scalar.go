// Package scalar provides comparison and conversion helpers for the cell
// and label values shared by grids and event tables.
//
// Grid coordinate labels and event-table cells are dynamically typed
// (frame numbers, player identifiers, category strings), so the engine
// needs one place that decides how two such values relate. Callers that
// correlate on a domain type with its own ordering can supply their own
// Comparator instead of relying on the default.
package scalar

import (
	"fmt"
	"math"
)

// Comparator orders two scalar values. It returns a negative number if
// a sorts before b, zero if they are equivalent and a positive number if
// a sorts after b. An error indicates the pair is not comparable.
type Comparator func(a, b any) (int, error)

// Compare is the default Comparator. Numeric values of any width compare
// by magnitude; strings compare lexicographically. Mixed numeric/string
// pairs and unsupported types return an error.
func Compare(a, b any) (int, error) {
	fa, aNum := Float(a)
	fb, bNum := Float(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			return -1, nil
		case fa > fb:
			return 1, nil
		default:
			return 0, nil
		}
	}

	sa, aStr := a.(string)
	sb, bStr := b.(string)
	if aStr && bStr {
		switch {
		case sa < sb:
			return -1, nil
		case sa > sb:
			return 1, nil
		default:
			return 0, nil
		}
	}

	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}

// Equal reports whether two scalar values are equivalent under the
// default ordering. Values that do not compare are never equal.
func Equal(a, b any) bool {
	c, err := Compare(a, b)
	if err != nil {
		// Fall back to strict equality for non-ordered types (bools).
		return a == b
	}
	return c == 0
}

// Float converts a numeric scalar to float64. The second return value
// reports whether the input was numeric.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// IsMissing reports whether v is the missing-value marker (a NaN float).
func IsMissing(v any) bool {
	f, ok := v.(float64)
	return ok && math.IsNaN(f)
}
