// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code
// duplication across test files, together with the football match
// fixture (a ball-trajectory dataset and its ten-event table) that
// most correlation tests are written against.
package testutil

import (
	"testing"

	"github.com/banshee-data/gridevents/frame"
	"github.com/banshee-data/gridevents/grid"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// BallTrajectoryDataset builds a dataset with a ball_trajectory
// variable over frames 1..frames and the two cartesian axes, plus a
// player_id coordinate. Values are deterministic: the x component at
// frame f is f, the y component is f+0.5, so per-span means are easy
// to compute by hand in tests.
func BallTrajectoryDataset(t *testing.T, frames int64) *grid.Dataset {
	t.Helper()

	frameCoord := grid.RangeCoord("frame", 1, frames)
	axes, err := grid.StringCoord("cartesian_coords", "x", "y")
	AssertNoError(t, err)
	players, err := grid.IntCoord("player_id", []int64{2, 3, 7, 19, 20, 21, 22, 28, 34, 79})
	AssertNoError(t, err)

	data := make([]float64, 0, frames*2)
	for f := int64(1); f <= frames; f++ {
		data = append(data, float64(f), float64(f)+0.5)
	}
	trajectory, err := grid.NewDataArray("ball_trajectory", []*grid.Coord{frameCoord, axes}, data)
	AssertNoError(t, err)

	ds := grid.NewDataset()
	AssertNoError(t, ds.AddCoord(frameCoord))
	AssertNoError(t, ds.AddCoord(axes))
	AssertNoError(t, ds.AddCoord(players))
	AssertNoError(t, ds.AddVar(trajectory))
	ds.SetAttr("match_id", 12)
	ds.SetAttr("resolution_fps", 25)

	return ds
}

// MatchEvents builds the ten-row football event table: event type,
// inclusive frame span and responsible player per event.
func MatchEvents(t *testing.T) *frame.Frame {
	t.Helper()

	f, err := frame.New(
		frame.NewString("event_type", []string{
			"pass", "goal", "pass", "pass", "pass",
			"penalty", "goal", "pass", "pass", "penalty",
		}),
		frame.NewInt("start_frame", []int64{1, 425, 600, 945, 1100, 1280, 1890, 2020, 2300, 2390}),
		frame.NewInt("end_frame", []int64{424, 599, 944, 1099, 1279, 1889, 2019, 2299, 2389, 2450}),
		frame.NewInt("player_id", []int64{79, 79, 19, 2, 3, 2, 3, 79, 2, 79}),
	)
	AssertNoError(t, err)
	return f
}

// SmallEvents builds the two-row pass/goal table used by the narrower
// selection and expansion tests (frames 1..250).
func SmallEvents(t *testing.T) *frame.Frame {
	t.Helper()

	f, err := frame.New(
		frame.NewString("event_type", []string{"pass", "goal"}),
		frame.NewInt("start_frame", []int64{1, 175}),
		frame.NewInt("end_frame", []int64{174, 250}),
	)
	AssertNoError(t, err)
	return f
}
