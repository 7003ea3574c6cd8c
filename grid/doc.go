// Package grid owns the dense side of the correlation engine: named
// coordinates, label-indexed data arrays and the dataset composite.
//
// Responsibilities: label selection, alignment of one-dimensional
// labelled series onto a coordinate with a fill policy, and group-by
// with the standard reductions (mean, median, min, max, sum) computed
// through gonum.
// Key types: Coord, DataArray, Dataset, GroupBy.
//
// Dependency rule: grid may depend on scalar but never on frame or
// events. No table or persistence code is allowed in this package.
package grid
