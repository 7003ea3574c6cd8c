package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func trajectoryArray(t *testing.T) *DataArray {
	t.Helper()
	frames := RangeCoord("frame", 1, 3)
	axes, err := StringCoord("cartesian_coords", "x", "y")
	if err != nil {
		t.Fatalf("failed to build coord: %v", err)
	}
	// Row-major over (frame, axis): x1 y1 x2 y2 x3 y3.
	arr, err := NewDataArray("ball_trajectory", []*Coord{frames, axes},
		[]float64{10, 11, 20, 21, 30, 31})
	if err != nil {
		t.Fatalf("failed to build array: %v", err)
	}
	return arr
}

func TestNewDataArrayValidation(t *testing.T) {
	frames := RangeCoord("frame", 1, 3)
	if _, err := NewDataArray("v", nil, nil); err == nil {
		t.Error("expected error for array without coordinates")
	}
	if _, err := NewDataArray("v", []*Coord{frames}, []float64{1, 2}); err == nil {
		t.Error("expected error for data/shape mismatch")
	}
	if _, err := NewDataArray("v", []*Coord{frames, frames}, make([]float64, 9)); err == nil {
		t.Error("expected error for duplicate dimension")
	}
}

func TestDataArrayAt(t *testing.T) {
	arr := trajectoryArray(t)

	if got := arr.At(1, 0); got != 20 {
		t.Errorf("At(1,0) = %v, want 20", got)
	}
	if got := arr.At(2, 1); got != 31 {
		t.Errorf("At(2,1) = %v, want 31", got)
	}
}

func TestTakeAlong(t *testing.T) {
	arr := trajectoryArray(t)

	got, err := arr.TakeAlong("frame", []int{2, 0})
	if err != nil {
		t.Fatalf("take failed: %v", err)
	}

	if diff := cmp.Diff([]int{2, 2}, got.Shape()); diff != "" {
		t.Fatalf("shape mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{30, 31, 10, 11}, got.Data()); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	coord, _ := got.Coord("frame")
	if diff := cmp.Diff([]any{int64(3), int64(1)}, coord.Labels()); diff != "" {
		t.Errorf("coord mismatch (-want +got):\n%s", diff)
	}

	if _, err := arr.TakeAlong("player_id", []int{0}); err == nil {
		t.Error("expected error for unknown dimension")
	}
}

func TestRename(t *testing.T) {
	arr := trajectoryArray(t)
	renamed := arr.Rename("trajectory")
	if renamed.Name() != "trajectory" || arr.Name() != "ball_trajectory" {
		t.Errorf("rename: got %q / %q", renamed.Name(), arr.Name())
	}
}
