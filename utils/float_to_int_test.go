// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestSaturateInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "positive fraction truncates", input: 12.9, want: 12},
		{name: "negative fraction truncates toward zero", input: -12.9, want: -12},
		{name: "max", input: math.MaxInt16, want: math.MaxInt16},
		{name: "min", input: math.MinInt16, want: math.MinInt16},
		{name: "just over max", input: 32768, want: math.MaxInt16},
		{name: "just under min", input: -32769, want: math.MinInt16},
		{name: "doubled max saturates", input: 2 * 32767, want: math.MaxInt16},
		{name: "doubled min saturates", input: 2 * -32768, want: math.MinInt16},
		{name: "positive infinity", input: math.Inf(1), want: math.MaxInt16},
		{name: "negative infinity", input: math.Inf(-1), want: math.MinInt16},
		{name: "nan", input: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SaturateInt16(tt.input); got != tt.want {
				t.Errorf("SaturateInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "full scale negative", input: -1, want: math.MinInt16},
		{name: "full scale positive saturates", input: 1, want: math.MaxInt16},
		{name: "half positive", input: 0.5, want: 16384},
		{name: "half negative", input: -0.5, want: -16384},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -100, want: math.MinInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// Every int16 must survive the trip through the normalized float domain,
// otherwise buffered playback would alter equalized samples.
func TestInt16FloatRoundTrip(t *testing.T) {
	t.Parallel()

	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		in := int16(v)
		f := Int16ToFloat32(in)

		if f < -1 || f >= 1 {
			t.Fatalf("Int16ToFloat32(%d) = %v, outside [-1, 1)", in, f)
		}

		if out := Float32ToInt16(f); out != in {
			t.Fatalf("round trip of %d = %d", in, out)
		}
	}
}
