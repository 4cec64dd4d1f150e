// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

const pcm16Scale = 32768.0

// SaturateInt16 truncates x toward zero and clamps it into the int16 range.
// NaN maps to 0.
func SaturateInt16(x float64) int16 {
	if math.IsNaN(x) {
		return 0
	}

	x = math.Trunc(x)
	if x > math.MaxInt16 {
		return math.MaxInt16
	}
	if x < math.MinInt16 {
		return math.MinInt16
	}

	return int16(x)
}

// Float32ToInt16 converts a normalized sample in [-1, 1] back to 16-bit PCM.
// It is the exact inverse of Int16ToFloat32 for every int16 value; anything
// outside [-1, 1] saturates.
func Float32ToInt16(x float32) int16 {
	return SaturateInt16(float64(x) * pcm16Scale)
}

// Int16ToFloat32 normalizes a 16-bit PCM sample into [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / pcm16Scale
}
