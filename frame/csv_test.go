package frame

import (
	"strings"
	"testing"
)

func TestReadCSVInference(t *testing.T) {
	in := strings.NewReader(
		"event_type,start_frame,confidence,reviewed\n" +
			"pass,1,0.91,true\n" +
			"goal,425,0.55,false\n")

	f, err := ReadCSV(in)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if f.NumRows() != 2 || f.NumCols() != 4 {
		t.Fatalf("shape = %dx%d, want 2x4", f.NumRows(), f.NumCols())
	}

	tests := []struct {
		column string
		want   any
	}{
		{"event_type", "goal"},
		{"start_frame", int64(425)},
		{"confidence", 0.55},
		{"reviewed", false},
	}
	for _, tt := range tests {
		col, ok := f.Column(tt.column)
		if !ok {
			t.Fatalf("no column %q", tt.column)
		}
		if got := col.Value(1); got != tt.want {
			t.Errorf("%s[1] = %v (%T), want %v (%T)", tt.column, got, got, tt.want, tt.want)
		}
	}
}

func TestReadCSVMixedNumericFallsBackToFloat(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("x\n1\n2.5\n"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if _, ok := f.cols[0].(*FloatSeries); !ok {
		t.Errorf("column type = %T, want *FloatSeries", f.cols[0])
	}
}

func TestReadCSVErrors(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("only,a,header\n")); err == nil {
		t.Error("expected error for csv without data rows")
	}
	if _, err := OpenCSV("does-not-exist.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}
