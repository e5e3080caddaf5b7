package callbacks

import (
	"testing"
	"time"

	"Aethermodem/pkg/device"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer(t *testing.T) {
	p := &Player{Track: []float32{1, 2, 3, 4, 5}}
	out := []float32{9, 9, 9}

	p.Update(nil, out)
	assert.Equal(t, []float32{1, 2, 3}, out)
	assert.False(t, p.Done())

	p.Update(nil, out)
	assert.Equal(t, []float32{4, 5, 0}, out)
	assert.True(t, p.Done())

	p.Update(nil, out)
	assert.Equal(t, []float32{0, 0, 0}, out)

	p.Reset()
	p.Update(nil, out)
	assert.Equal(t, []float32{1, 2, 3}, out)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{Limit: 5}
	r.Update([]float32{1, 2, 3}, nil)
	assert.False(t, r.Full())
	r.Update([]float32{4, 5, 6}, nil)
	assert.True(t, r.Full())
	r.Update([]float32{7}, nil)
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, r.Track())

	unlimited := &Recorder{}
	unlimited.Update([]float32{1}, nil)
	unlimited.Update([]float32{2}, nil)
	assert.Equal(t, []float32{1, 2}, unlimited.Track())
}

func TestPlayAndRecordLoopback(t *testing.T) {
	track := make([]float32, 3*device.BufferSize)
	for i := range track {
		track[i] = float32(i%100) / 100
	}
	player := &Player{Track: track}
	recorder := &Recorder{Limit: 5 * device.BufferSize}

	dev := &device.Loopback{}
	require.NoError(t, dev.Start(Chain(recorder.Update, player.Update)))
	require.Eventually(t, recorder.Full, time.Second, time.Millisecond)
	dev.Stop()

	// the first buffer is silence, then the track comes back one buffer late
	recorded := recorder.Track()
	assert.Equal(t, make([]float32, device.BufferSize), recorded[:device.BufferSize])
	assert.Equal(t, track, recorded[device.BufferSize:4*device.BufferSize])
	assert.Equal(t, make([]float32, device.BufferSize), recorded[4*device.BufferSize:])
}
