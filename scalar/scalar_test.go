package scalar

import (
	"math"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name    string
		a, b    any
		want    int
		wantErr bool
	}{
		{name: "ints", a: 1, b: 2, want: -1},
		{name: "equal ints", a: 5, b: 5, want: 0},
		{name: "mixed widths", a: int64(5), b: 5, want: 0},
		{name: "int and float", a: 3, b: 2.5, want: 1},
		{name: "uint and int", a: uint8(7), b: int32(9), want: -1},
		{name: "strings", a: "goal", b: "pass", want: -1},
		{name: "equal strings", a: "pass", b: "pass", want: 0},
		{name: "string vs int", a: "pass", b: 1, wantErr: true},
		{name: "bools", a: true, b: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Compare(%v, %v) = %d, want error", tt.a, tt.b, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compare(%v, %v) failed: %v", tt.a, tt.b, err)
			}
			if sign(got) != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want sign %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func TestEqual(t *testing.T) {
	if !Equal(int64(3), 3.0) {
		t.Error("int64(3) should equal 3.0")
	}
	if Equal("3", 3) {
		t.Error("string should not equal number")
	}
	if !Equal(true, true) {
		t.Error("identical bools should be equal via fallback")
	}
	if Equal(true, false) {
		t.Error("distinct bools should not be equal")
	}
}

func TestFloat(t *testing.T) {
	if v, ok := Float(uint16(12)); !ok || v != 12 {
		t.Errorf("Float(uint16(12)) = %v, %v", v, ok)
	}
	if _, ok := Float("12"); ok {
		t.Error("Float should reject strings")
	}
}

func TestIsMissing(t *testing.T) {
	if !IsMissing(math.NaN()) {
		t.Error("NaN is the missing marker")
	}
	if IsMissing(0.0) || IsMissing(nil) || IsMissing("") {
		t.Error("only NaN floats are missing")
	}
}
