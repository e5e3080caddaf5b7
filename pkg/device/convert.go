package device

import "math"

// Int32ToFloat32 converts full scale int32 samples to [-1, 1].
func Int32ToFloat32(dst []float32, src []int32) {
	for i, v := range src[:min(len(src), len(dst))] {
		dst[i] = float32(float64(v) / math.MaxInt32)
	}
}

// Float32ToInt32 converts samples to full scale int32, clipping to [-1, 1].
func Float32ToInt32(dst []int32, src []float32) {
	for i, v := range src[:min(len(src), len(dst))] {
		dst[i] = int32(float64(clipf32(v)) * math.MaxInt32)
	}
}
