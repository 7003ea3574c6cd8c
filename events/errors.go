package events

import (
	"fmt"
	"sort"
)

// MappingError reports a dimension mapping that references a
// nonexistent coordinate or column, a span that does not name exactly
// two columns, or an operation that needs a mapping when none was
// loaded.
type MappingError struct {
	Detail string
}

func (e *MappingError) Error() string {
	return "invalid mapping: " + e.Detail
}

func mappingErrorf(format string, args ...any) *MappingError {
	return &MappingError{Detail: fmt.Sprintf(format, args...)}
}

// UnknownFieldError reports constraint keys or column references that
// name neither a grid coordinate nor an event-table column.
type UnknownFieldError struct {
	Fields []string
}

func (e *UnknownFieldError) Error() string {
	fields := append([]string(nil), e.Fields...)
	sort.Strings(fields)
	return fmt.Sprintf("unrecognisable fields: %v", fields)
}

// ConsistencyError reports an operation that requires non-overlapping
// event spans while overlaps exist.
type ConsistencyError struct {
	Detail string
}

func (e *ConsistencyError) Error() string {
	return "inconsistent events: " + e.Detail
}

// ValueError reports a constraint or column value that is incompatible
// with its target's domain, such as a range constraint over
// non-orderable values.
type ValueError struct {
	Detail string
}

func (e *ValueError) Error() string {
	return "invalid value: " + e.Detail
}

func valueErrorf(format string, args ...any) *ValueError {
	return &ValueError{Detail: fmt.Sprintf(format, args...)}
}
