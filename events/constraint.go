package events

import (
	"github.com/banshee-data/gridevents/scalar"
)

type constraintKind int

const (
	kindEq constraintKind = iota
	kindIn
	kindBetween
	kindWhere
)

// Constraint is one selection criterion applied to a grid coordinate
// or an event-table column. The four shapes — exact value, set
// membership, ordered range and predicate — behave identically in both
// spaces. Construct with Eq, In, Between or Where.
type Constraint struct {
	kind constraintKind
	eq   any
	set  []any
	lo   any
	hi   any
	pred func(any) bool
}

// Eq matches values exactly equal to v.
func Eq(v any) Constraint {
	return Constraint{kind: kindEq, eq: v}
}

// In matches values equal to any member of vs.
func In(vs ...any) Constraint {
	return Constraint{kind: kindIn, set: vs}
}

// Between matches values in the inclusive ordered interval [lo, hi].
func Between(lo, hi any) Constraint {
	return Constraint{kind: kindBetween, lo: lo, hi: hi}
}

// Where matches values for which pred returns true.
func Where(pred func(v any) bool) Constraint {
	return Constraint{kind: kindWhere, pred: pred}
}

// mask evaluates the constraint elementwise over a value sequence.
func (c Constraint) mask(values []any, cmp scalar.Comparator) ([]bool, error) {
	if cmp == nil {
		cmp = scalar.Compare
	}
	out := make([]bool, len(values))

	switch c.kind {
	case kindEq:
		for i, v := range values {
			eq, err := equalUnder(cmp, v, c.eq)
			if err != nil {
				return nil, err
			}
			out[i] = eq
		}
	case kindIn:
		for i, v := range values {
			for _, m := range c.set {
				eq, err := equalUnder(cmp, v, m)
				if err != nil {
					return nil, err
				}
				if eq {
					out[i] = true
					break
				}
			}
		}
	case kindBetween:
		for i, v := range values {
			lo, err := cmp(c.lo, v)
			if err != nil {
				return nil, valueErrorf("range constraint: %v", err)
			}
			hi, err := cmp(v, c.hi)
			if err != nil {
				return nil, valueErrorf("range constraint: %v", err)
			}
			out[i] = lo <= 0 && hi <= 0
		}
	case kindWhere:
		if c.pred == nil {
			return nil, valueErrorf("predicate constraint has no function")
		}
		for i, v := range values {
			out[i] = c.pred(v)
		}
	default:
		return nil, valueErrorf("unknown constraint kind %d", int(c.kind))
	}

	return out, nil
}

// equalUnder tests equality through the comparator, falling back to
// strict equality for values the comparator cannot order (bools).
func equalUnder(cmp scalar.Comparator, a, b any) (bool, error) {
	c, err := cmp(a, b)
	if err != nil {
		// A mismatched type is simply not a match for Eq/In; it only
		// becomes an error for ordered (range) constraints.
		return a == b, nil
	}
	return c == 0, nil
}
