package events

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/gridevents/internal/testutil"
	"github.com/banshee-data/gridevents/scalar"
)

func matchContainer(t *testing.T) *Correlated {
	t.Helper()
	c, err := Load(
		testutil.BallTrajectoryDataset(t, 2450),
		testutil.MatchEvents(t),
		Mapping{"frame": Span("start_frame", "end_frame")},
	)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return c
}

func TestSelConstraintShapes(t *testing.T) {
	tests := []struct {
		name        string
		constraints map[string]Constraint
		wantRows    []int
	}{
		{
			name:        "exact value",
			constraints: map[string]Constraint{"event_type": Eq("pass")},
			wantRows:    []int{0, 2, 3, 4, 7, 8},
		},
		{
			name:        "set membership",
			constraints: map[string]Constraint{"player_id": In(2, 3)},
			wantRows:    []int{3, 4, 5, 6, 8},
		},
		{
			name: "predicates",
			constraints: map[string]Constraint{
				"start_frame": Where(func(v any) bool {
					f, ok := scalar.Float(v)
					return ok && f > 327
				}),
				"end_frame": Where(func(v any) bool {
					f, ok := scalar.Float(v)
					return ok && f < 1327
				}),
			},
			wantRows: []int{1, 2, 3, 4},
		},
		{
			name:        "interval",
			constraints: map[string]Constraint{"start_frame": Between(425, 1100)},
			wantRows:    []int{1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := matchContainer(t)
			got, err := c.SelRows(tt.constraints)
			if err != nil {
				t.Fatalf("selection failed: %v", err)
			}
			if diff := cmp.Diff(tt.wantRows, got.Labels()); diff != "" {
				t.Errorf("selected rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelIdempotence(t *testing.T) {
	c := matchContainer(t)
	constraints := map[string]Constraint{"event_type": Eq("penalty")}

	once, err := c.Sel(constraints)
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	twice, err := once.Sel(constraints)
	if err != nil {
		t.Fatalf("second selection failed: %v", err)
	}

	if !once.Table().Equal(twice.Table()) {
		t.Error("reapplying the same constraints changed the table")
	}
	a, _ := once.Dataset().Coord("frame")
	b, _ := twice.Dataset().Coord("frame")
	if a.Len() != b.Len() {
		t.Error("reapplying the same constraints changed the grid")
	}
}

func TestSelDualSpaceIndependence(t *testing.T) {
	c := matchContainer(t)

	// A table-only key leaves every coordinate untouched.
	byType, err := c.Sel(map[string]Constraint{"event_type": Eq("goal")})
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	for _, name := range c.Dataset().CoordNames() {
		before, _ := c.Dataset().Coord(name)
		after, _ := byType.Dataset().Coord(name)
		if before.Len() != after.Len() {
			t.Errorf("coordinate %q narrowed by a table-only key", name)
		}
	}
	if byType.Table().NumRows() != 2 {
		t.Errorf("rows = %d, want 2", byType.Table().NumRows())
	}

	// A grid-only key leaves the table untouched.
	byFrame, err := c.Sel(map[string]Constraint{"frame": Between(100, 200)})
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}
	if byFrame.Table().NumRows() != c.Table().NumRows() {
		t.Error("table narrowed by a grid-only key")
	}
	frames, _ := byFrame.Dataset().Coord("frame")
	if frames.Len() != 101 {
		t.Errorf("frame len = %d, want 101", frames.Len())
	}
	traj, _ := byFrame.Dataset().Var("ball_trajectory")
	if diff := cmp.Diff([]int{101, 2}, traj.Shape()); diff != "" {
		t.Errorf("variable shape mismatch (-want +got):\n%s", diff)
	}
}

func TestSelKeyInBothSpaces(t *testing.T) {
	c := matchContainer(t)

	// player_id is a grid coordinate and a table column: one constraint
	// narrows both.
	got, err := c.Sel(map[string]Constraint{"player_id": In(2, 3)})
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}

	players, _ := got.Dataset().Coord("player_id")
	if diff := cmp.Diff([]any{int64(2), int64(3)}, players.Labels()); diff != "" {
		t.Errorf("coordinate mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 4, 5, 6, 8}, got.Table().Labels()); diff != "" {
		t.Errorf("table rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSelEmptyResults(t *testing.T) {
	c := matchContainer(t)

	// Both spaces narrow to empty without error when nothing matches.
	empty, err := c.Sel(map[string]Constraint{
		"frame":      Between(5000, 6000),
		"event_type": Eq("corner"),
	})
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}

	frames, _ := empty.Dataset().Coord("frame")
	if frames.Len() != 0 {
		t.Errorf("frame len = %d, want 0", frames.Len())
	}
	traj, _ := empty.Dataset().Var("ball_trajectory")
	if diff := cmp.Diff([]int{0, 2}, traj.Shape()); diff != "" {
		t.Errorf("variable shape mismatch (-want +got):\n%s", diff)
	}
	if empty.Table().NumRows() != 0 {
		t.Errorf("rows = %d, want 0", empty.Table().NumRows())
	}

	// An empty result still chains.
	again, err := empty.Sel(map[string]Constraint{"event_type": Eq("pass")})
	if err != nil {
		t.Fatalf("selection on empty container failed: %v", err)
	}
	if again.Table().NumRows() != 0 {
		t.Errorf("rows = %d, want 0", again.Table().NumRows())
	}
}

func TestSelUnknownKeys(t *testing.T) {
	c := matchContainer(t)

	_, err := c.Sel(map[string]Constraint{
		"event_type": Eq("pass"),
		"minute":     Eq(3),
		"half":       Eq(1),
	})
	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *UnknownFieldError", err)
	}
	if len(unknown.Fields) != 2 {
		t.Errorf("unknown fields = %v, want both bad keys", unknown.Fields)
	}
}

func TestSelRangeOverText(t *testing.T) {
	c := matchContainer(t)

	_, err := c.Sel(map[string]Constraint{"event_type": Between(1, 9)})
	var valErr *ValueError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want *ValueError", err)
	}
}
