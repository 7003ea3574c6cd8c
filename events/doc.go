// Package events correlates a dense, coordinate-indexed dataset with a
// sparse table of discrete occurrences, where each event spans a
// contiguous range of one grid coordinate.
//
// The entry point is Load, which attaches an event table to a dataset
// under an explicit coordinate-to-column mapping and returns a
// Correlated value. Correlated values chain:
//
//	c, err := events.Load(ds, table, events.Mapping{
//		"frame": events.Span("start_frame", "end_frame"),
//	})
//	...
//	c, err = c.Sel(map[string]events.Constraint{
//		"event_type": events.Eq("pass"),
//	})
//	...
//	groups, err := c.GroupByEvents("ball_trajectory")
//	means, err := groups.Mean()
//
// Every operation returns a new value; the receiver is never mutated,
// so independent query chains can safely share one loaded dataset.
//
// Responsibilities: mapping resolution, span overlap and gap
// validation, dual-space selection with heterogeneous constraints, and
// the expansion of event identities onto a grid coordinate that
// grouping is built on. Array math and table storage live in the grid
// and frame packages.
package events
