package events

import (
	"errors"
	"testing"

	"github.com/banshee-data/gridevents/internal/testutil"
)

func TestLoadValidMapping(t *testing.T) {
	ds := testutil.BallTrajectoryDataset(t, 2450)
	table := testutil.MatchEvents(t)

	c, err := Load(ds, table, Mapping{
		"frame":     Span("start_frame", "end_frame"),
		"player_id": Col("player_id"),
	})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// The attached table is the input table, verbatim.
	if !c.Table().Equal(table) {
		t.Error("attached table differs from input")
	}
	if c.Dataset() != ds {
		t.Error("attached dataset differs from input")
	}
	if len(c.Mapping()) != 2 {
		t.Errorf("mapping entries = %d, want 2", len(c.Mapping()))
	}
}

func TestLoadMappingErrors(t *testing.T) {
	ds := testutil.BallTrajectoryDataset(t, 250)
	table := testutil.SmallEvents(t)

	tests := []struct {
		name    string
		mapping Mapping
	}{
		{
			name:    "unknown coordinate",
			mapping: Mapping{"minute": Span("start_frame", "end_frame")},
		},
		{
			name:    "unknown column",
			mapping: Mapping{"frame": Span("start_frame", "final_frame")},
		},
		{
			name:    "unknown point column",
			mapping: Mapping{"frame": Col("kickoff_frame")},
		},
		{
			name: "two spans",
			mapping: Mapping{
				"frame":            Span("start_frame", "end_frame"),
				"cartesian_coords": Span("start_frame", "end_frame"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(ds, table, tt.mapping)
			var mapErr *MappingError
			if !errors.As(err, &mapErr) {
				t.Fatalf("error = %v, want *MappingError", err)
			}
		})
	}
}

func TestLoadNilArguments(t *testing.T) {
	ds := testutil.BallTrajectoryDataset(t, 250)
	table := testutil.SmallEvents(t)

	if _, err := Load(nil, table, nil); err == nil {
		t.Error("expected error for nil dataset")
	}
	if _, err := Load(ds, nil, nil); err == nil {
		t.Error("expected error for nil table")
	}
}

func TestLoadWithoutMapping(t *testing.T) {
	ds := testutil.BallTrajectoryDataset(t, 250)
	table := testutil.SmallEvents(t)

	c, err := Load(ds, table, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// Self-describing selection works without a mapping.
	got, err := c.SelRows(map[string]Constraint{"event_type": Eq("goal")})
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	if got.NumRows() != 1 {
		t.Errorf("rows = %d, want 1", got.NumRows())
	}

	// Expansion does not: it needs the mapping.
	_, err = c.ExpandToMatchDS("start_frame")
	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("error = %v, want *MappingError", err)
	}
}
