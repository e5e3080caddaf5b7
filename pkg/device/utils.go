package device

import (
	"time"

	"golang.org/x/exp/rand"
)

func randf32(a []float32) {
	for i := range a {
		a[i] = rand.Float32()*2 - 1
	}
}

// sumf32 adds b into a, clipping to [-1, 1].
func sumf32(a, b []float32) {
	for i := range a {
		a[i] = clipf32(a[i] + b[i])
	}
}

func clipf32(v float32) float32 {
	return max(-1, min(1, v))
}

func allocf32(n int) []float32 {
	return make([]float32, n)
}

// bufferPeriod is how long one buffer lasts at sampleRate.
func bufferPeriod(sampleRate float64) time.Duration {
	return time.Duration(float64(time.Second) * BufferSize / sampleRate)
}
