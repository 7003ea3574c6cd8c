package grid

import (
	"math"
	"testing"
)

func TestReindexFillMethods(t *testing.T) {
	// Event identities 0 and 1 at their start frames, aligned onto 1..8.
	keys := []any{int64(2), int64(6)}
	values := []float64{0, 1}
	target := RangeCoord("frame", 1, 8)

	tests := []struct {
		method FillMethod
		want   []float64 // NaN marks unfilled
	}{
		{FillNone, []float64{nan, 0, nan, nan, nan, 1, nan, nan}},
		{FillForward, []float64{nan, 0, 0, 0, 0, 1, 1, 1}},
		{FillBackward, []float64{0, 0, 1, 1, 1, 1, nan, nan}},
		// Ties (frame 4) go to the preceding key.
		{FillNearest, []float64{0, 0, 0, 0, 1, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			got, err := Reindex("event_index", keys, values, target, tt.method, nil)
			if err != nil {
				t.Fatalf("reindex failed: %v", err)
			}
			assertFloatsEqualNaN(t, tt.want, got.Data())
		})
	}
}

var nan = math.NaN()

func assertFloatsEqualNaN(t *testing.T, want, got []float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.IsNaN(want[i]) != math.IsNaN(got[i]) ||
			(!math.IsNaN(want[i]) && want[i] != got[i]) {
			t.Errorf("position %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReindexValidation(t *testing.T) {
	target := RangeCoord("frame", 1, 3)

	if _, err := Reindex("v", []any{1}, []float64{1, 2}, target, FillNone, nil); err == nil {
		t.Error("expected error for keys/values length mismatch")
	}
	if _, err := Reindex("v", []any{"a"}, []float64{1}, target, FillNone, nil); err == nil {
		t.Error("expected error comparing string keys with int labels")
	}

	strings, err := StringCoord("axis", "x", "y")
	if err != nil {
		t.Fatalf("failed to build coord: %v", err)
	}
	if _, err := Reindex("v", []any{"x"}, []float64{1}, strings, FillNearest, nil); err == nil {
		t.Error("expected error for nearest fill over non-numeric labels")
	}
}

func TestParseFillMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    FillMethod
		wantErr bool
	}{
		{"", FillNone, false},
		{"none", FillNone, false},
		{"ffill", FillForward, false},
		{"pad", FillForward, false},
		{"bfill", FillBackward, false},
		{"backfill", FillBackward, false},
		{"nearest", FillNearest, false},
		{"sideways", FillNone, true},
	}
	for _, tt := range tests {
		got, err := ParseFillMethod(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFillMethod(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFillMethod(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}
