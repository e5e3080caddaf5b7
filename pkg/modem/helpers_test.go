package modem

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const testSampleRate = 48000

func newTestEncoder(t *testing.T, cfg Config, sampleRate int) *BasicEncoder {
	t.Helper()
	e, err := NewBasicEncoder(cfg, sampleRate)
	require.NoError(t, err)
	return e
}

func newTestDecoder(t *testing.T, typ DecoderType, cfg Config, sampleRate int) Decoder {
	t.Helper()
	d, err := NewDecoder(typ, cfg, sampleRate)
	require.NoError(t, err)
	return d
}

func modulate(t *testing.T, e Encoder, message string) []float32 {
	t.Helper()
	samples, err := e.Modulate(message)
	require.NoError(t, err)
	return samples
}

// collect feeds the chunks to d, flushes it and returns what was published.
func collect(d Decoder, chunks ...[]float32) []string {
	var messages []string
	unsubscribe := d.Subscribe(func(message string) {
		messages = append(messages, message)
	})
	defer unsubscribe()
	for _, chunk := range chunks {
		d.Demodulate(chunk)
	}
	d.Flush()
	return messages
}

func concat(parts ...[]float32) []float32 {
	var out []float32
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func addNoise(samples []float32, sigma float64, seed uint64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = s + float32(rng.NormFloat64()*sigma)
	}
	return out
}

var decoderTypes = []DecoderType{ComparatorDecoderType, DFTDecoderType}
