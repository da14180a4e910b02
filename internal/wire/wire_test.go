package wire

import (
	"math"
	"testing"
)

func TestIsSpecialFloat(t *testing.T) {
	special := []float64{math.NaN(), math.Inf(1), math.Inf(-1), math.Copysign(0, -1)}
	for _, f := range special {
		if !IsSpecialFloat(f) {
			t.Fatalf("%v should be special", f)
		}
	}
	ordinary := []float64{0, 1.5, -1.5, math.MaxFloat64, math.SmallestNonzeroFloat64}
	for _, f := range ordinary {
		if IsSpecialFloat(f) {
			t.Fatalf("%v should not be special", f)
		}
	}
}

func TestInt64PackUnpack(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 123, math.MinInt64, math.MaxInt64} {
		got, err := UnpackInt64(PackInt64(v))
		if err != nil {
			t.Fatalf("UnpackInt64: %v", err)
		}
		if got != v {
			t.Fatalf("round-trip %d -> %d", v, got)
		}
	}
}

func TestInt64KnownEncoding(t *testing.T) {
	// 1 as 8 little-endian bytes
	if got := PackInt64(1); got != "AQAAAAAAAAA=" {
		t.Fatalf("PackInt64(1) = %q", got)
	}
}

func TestFloat64PackUnpack(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.Copysign(0, -1), 1.5} {
		got, err := UnpackFloat64(PackFloat64(v))
		if err != nil {
			t.Fatalf("UnpackFloat64: %v", err)
		}
		if got != v && !(math.IsNaN(got) && math.IsNaN(v)) {
			t.Fatalf("round-trip %v -> %v", v, got)
		}
	}
	nan, err := UnpackFloat64(PackFloat64(math.NaN()))
	if err != nil || !math.IsNaN(nan) {
		t.Fatalf("NaN round-trip: %v, %v", nan, err)
	}
}

func TestUnpackRejectsWrongLength(t *testing.T) {
	if _, err := UnpackInt64("AAAA"); err == nil { // 3 bytes
		t.Fatalf("expected length error")
	}
	if _, err := UnpackFloat64("!!!!"); err == nil {
		t.Fatalf("expected base64 error")
	}
}
