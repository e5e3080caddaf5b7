package modem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComparator(t *testing.T, cfg Config) *ComparatorDecoder {
	t.Helper()
	d, err := NewComparatorDecoder(cfg, testSampleRate)
	require.NoError(t, err)
	return d
}

func TestComparatorBands(t *testing.T) {
	d := newTestComparator(t, DefaultConfig())
	low, high := d.Bands()

	assert.InDelta(t, 6, low.Min, 1e-9)
	assert.InDelta(t, 14, low.Max, 1e-9)
	assert.InDelta(t, 18.0/7, high.Min, 1e-9)
	assert.InDelta(t, 6, high.Max, 1e-9)

	// nominal periods sit inside their bands
	assert.True(t, low.Contains(10))
	assert.True(t, high.Contains(48000.0/11200))
}

func TestComparatorExactBuffer(t *testing.T) {
	e := newTestEncoder(t, DefaultConfig(), testSampleRate)
	d := newTestComparator(t, DefaultConfig())

	var messages []string
	d.Subscribe(func(m string) { messages = append(messages, m) })

	samples := modulate(t, e, "A")
	require.Len(t, samples, 1080)
	d.Demodulate(samples)
	assert.Equal(t, []string{"A"}, messages, "no trailing silence is needed")
}

func TestComparatorIgnoresGlitches(t *testing.T) {
	e := newTestEncoder(t, DefaultConfig(), testSampleRate)

	for _, message := range []string{"A", "glitch proof"} {
		samples := modulate(t, e, message)
		glitched := append([]float32(nil), samples...)
		for i := 1; i < len(samples)-2; i++ {
			if samples[i-1] >= 0 && samples[i] < 0 && samples[i+1] < 0 && samples[i+2] < 0 {
				// a short positive spike right after each falling crossing
				glitched[i+1] = 0.3
			}
		}
		d := newTestComparator(t, DefaultConfig())
		assert.Equal(t, []string{message}, collect(d, glitched))
	}
}

func TestComparatorQuietInput(t *testing.T) {
	e := newTestEncoder(t, DefaultConfig(), testSampleRate)
	samples := modulate(t, e, "quiet")
	for i := range samples {
		samples[i] *= 0.1
	}
	assert.Equal(t, []string{"quiet"}, collect(newTestComparator(t, DefaultConfig()), samples))
}
