// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Integer full-scale values. The positive and negative ranges are kept
// symmetric so that a gain of 1.0 round-trips without bias.
const (
	maxInt16 = 32767
	maxInt24 = 8388607
)

// Float32ToInt16 converts a float32 sample in [-1, 1] to a 16-bit PCM value.
// Out-of-range input saturates at the format boundaries; in-range input is
// rounded (half away from zero), not truncated.
func Float32ToInt16(x float32) int16 {
	if x >= 1 {
		return maxInt16
	}
	if x <= -1 {
		return -maxInt16
	}
	return int16(math.Round(float64(x) * maxInt16))
}

// Float32ToInt24 converts a float32 sample in [-1, 1] to a 24-bit PCM value
// held in an int32. Saturates and rounds like Float32ToInt16.
func Float32ToInt24(x float32) int32 {
	if x >= 1 {
		return maxInt24
	}
	if x <= -1 {
		return -maxInt24
	}
	return int32(math.Round(float64(x) * maxInt24))
}

// Int16ToFloat32 converts a 16-bit PCM value to float32 in [-1, 1].
func Int16ToFloat32(v int16) float32 {
	return float32(v) / maxInt16
}

// Int24ToFloat32 converts a 24-bit PCM value (in an int32) to float32 in [-1, 1].
func Int24ToFloat32(v int32) float32 {
	return float32(v) / maxInt24
}
