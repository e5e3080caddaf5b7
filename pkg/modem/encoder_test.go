package modem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicEncoderLength(t *testing.T) {
	e := newTestEncoder(t, DefaultConfig(), testSampleRate)
	spb := DefaultConfig().SamplesPerBaud(testSampleRate)

	tests := []struct {
		message string
		bytes   int
	}{
		{"", 0},
		{"A", 1},
		{"hello", 5},
		{"héllo", 6},
		{strings.Repeat("x", MaxMessageLength), MaxMessageLength},
	}
	for _, tt := range tests {
		samples := modulate(t, e, tt.message)
		assert.Len(t, samples, (PreambleBauds+(tt.bytes+1)*BitsPerFrame)*spb, "message %q", tt.message)
	}
	assert.Len(t, modulate(t, e, "A"), 1080)
}

func TestBasicEncoderTooLong(t *testing.T) {
	e := newTestEncoder(t, DefaultConfig(), testSampleRate)
	samples, err := e.Modulate(strings.Repeat("x", MaxMessageLength+1))
	assert.ErrorIs(t, err, ErrMessageTooLong)
	assert.Nil(t, samples)

	// the limit counts bytes, not characters
	_, err = e.Modulate(strings.Repeat("é", 129))
	assert.ErrorIs(t, err, ErrMessageTooLong)
}

func TestBasicEncoderWaveform(t *testing.T) {
	cfg := DefaultConfig()
	e := newTestEncoder(t, cfg, testSampleRate)
	spb := cfg.SamplesPerBaud(testSampleRate)
	high := CarrierConfig{Amplitude: -1, Freq: float64(cfg.FreqHigh), SampleRate: testSampleRate, Size: spb}.New()
	low := CarrierConfig{Amplitude: -1, Freq: float64(cfg.FreqLow), SampleRate: testSampleRate, Size: spb}.New()

	samples := modulate(t, e, "A")
	bauds := "111111111111" + NewFrameWord(1, true).String() + NewFrameWord('A', false).String()
	require.Len(t, samples, len(bauds)*spb)
	for i, c := range bauds {
		expected := low
		if c == '1' {
			expected = high
		}
		assert.Equal(t, expected, samples[i*spb:(i+1)*spb], "baud %d", i)
	}

	for _, s := range samples {
		assert.LessOrEqual(t, s, float32(1))
		assert.GreaterOrEqual(t, s, float32(-1))
	}
}

func TestBasicEncoderSetConfig(t *testing.T) {
	e := newTestEncoder(t, DefaultConfig(), testSampleRate)

	err := e.SetConfig(Config{Baud: 1600, FreqLow: 4800, FreqHigh: 30000})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, DefaultConfig(), e.Config(), "a rejected config leaves the old one in place")

	slow := Config{Baud: 300, FreqLow: 1200, FreqHigh: 2400}
	require.NoError(t, e.SetConfig(slow))
	assert.Equal(t, slow, e.Config())
	assert.Len(t, modulate(t, e, "A"), 36*160)
}

func TestNewEncoder(t *testing.T) {
	e, err := NewEncoder(BasicEncoderType, DefaultConfig(), testSampleRate)
	require.NoError(t, err)
	assert.IsType(t, &BasicEncoder{}, e)

	_, err = NewEncoder("fancy", DefaultConfig(), testSampleRate)
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = NewEncoder(BasicEncoderType, Config{}, testSampleRate)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
