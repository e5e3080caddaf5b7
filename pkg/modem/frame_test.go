package modem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOddParity(t *testing.T) {
	tests := []struct {
		value    uint16
		expected bool
	}{
		{0, true},
		{1, false},
		{0b11, true},
		{0x41, true},
		{0x101, true},
		{0x1FF, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, OddParity(tt.value, 9), "value %#x", tt.value)
	}
}

func TestNewFrameWord(t *testing.T) {
	tests := []struct {
		name    string
		payload byte
		control bool
		bits    string
	}{
		{"data A", 'A', false, "010000010011"},
		{"header 1", 1, true, "010000000111"},
		{"zero", 0, false, "000000000011"},
		{"all ones", 0xFF, false, "011111111011"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewFrameWord(tt.payload, tt.control)
			assert.Equal(t, tt.bits, w.String())
			assert.Equal(t, tt.payload, w.Payload())
			assert.Equal(t, tt.control, w.Control())
			assert.False(t, w.IsSet(startBit))
			assert.True(t, w.IsSet(stopBit))

			ones := strings.Count(w.String()[1:11], "1")
			assert.Equal(t, 1, ones%2, "data, control and parity must hold an odd number of ones")
		})
	}
}

type receivedByte struct {
	payload byte
	control bool
}

func newRecordingReceiver(layout FrameLayout) (*FrameReceiver, *[]receivedByte) {
	var got []receivedByte
	r := &FrameReceiver{
		Layout: layout,
		OnByte: func(payload byte, control bool) {
			got = append(got, receivedByte{payload, control})
		},
	}
	return r, &got
}

func pushWord(r *FrameReceiver, w FrameWord) {
	w.ForEach(r.Push, BitsPerFrame)
}

func TestFrameReceiverUnsynced(t *testing.T) {
	r, got := newRecordingReceiver(FrameLayout{})

	// idle ones are ignored
	for range 5 {
		r.Push(true)
	}
	pushWord(r, NewFrameWord('A', false))
	pushWord(r, NewFrameWord(3, true))

	assert.Equal(t, []receivedByte{{'A', false}, {3, true}}, *got)
	assert.True(t, r.Idle())
}

func TestFrameReceiverSynced(t *testing.T) {
	r, got := newRecordingReceiver(FrameLayout{SyncedStart: true})

	pushWord(r, NewFrameWord('A', false))
	assert.Empty(t, *got, "an unarmed receiver ignores bits")

	r.Arm()
	pushWord(r, NewFrameWord('B', false))
	assert.Equal(t, []receivedByte{{'B', false}}, *got)

	r.Arm()
	r.Push(true)
	assert.True(t, r.Idle(), "a 1 in the start slot aborts the frame")
}

func TestFrameReceiverRejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(w *FrameWord)
	}{
		{"parity", func(w *FrameWord) { *w ^= 1 << parityBit }},
		{"data bit", func(w *FrameWord) { *w ^= 1 << 4 }},
		{"control bit", func(w *FrameWord) { *w ^= 1 << controlBit }},
		{"stop", func(w *FrameWord) { w.Clear(stopBit) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, got := newRecordingReceiver(FrameLayout{})
			w := NewFrameWord('Z', false)
			tt.edit(&w)
			pushWord(r, w)
			assert.Empty(t, *got)
			assert.True(t, r.Idle())

			pushWord(r, NewFrameWord('Y', false))
			assert.Equal(t, []receivedByte{{'Y', false}}, *got)
		})
	}
}

func TestMessageAssembler(t *testing.T) {
	var messages []string
	a := messageAssembler{publish: func(m string) { messages = append(messages, m) }}

	// data without a header is dropped
	a.dispatch('x', false)
	assert.Empty(t, messages)

	a.dispatch(2, true)
	a.dispatch('h', false)
	a.dispatch('i', false)
	a.dispatch('!', false)
	assert.Equal(t, []string{"hi"}, messages)

	// a new header discards a partial message
	a.dispatch(3, true)
	a.dispatch('a', false)
	a.dispatch(1, true)
	a.dispatch('b', false)
	assert.Equal(t, []string{"hi", "b"}, messages)
}

func TestMessageAssemblerMaxLength(t *testing.T) {
	var messages []string
	a := messageAssembler{publish: func(m string) { messages = append(messages, m) }}

	a.dispatch(0, true)
	for range MaxMessageLength - 1 {
		a.dispatch('q', false)
	}
	require.Empty(t, messages)
	a.dispatch('q', false)
	assert.Equal(t, []string{strings.Repeat("q", MaxMessageLength)}, messages)
}
