package modem

import "github.com/sirupsen/logrus"

const (
	// BitsPerFrame is start, eight data bits, control, parity and stop.
	BitsPerFrame = 12
	// PreambleBauds of the high tone precede every message.
	PreambleBauds = 12
	// MaxMessageLength is the largest payload one header can announce.
	// A length of 256 travels as header payload 0.
	MaxMessageLength = 256
)

const (
	startBit   = 0
	controlBit = 9
	parityBit  = 10
	stopBit    = 11
)

// OddParity returns the bit that makes the number of ones among the low n
// bits of v plus the parity bit odd.
func OddParity(v uint16, n int) bool {
	parity := true
	for i := range n {
		if v&(1<<i) != 0 {
			parity = !parity
		}
	}
	return parity
}

// NewFrameWord lays out one byte for the line.
func NewFrameWord(payload byte, control bool) FrameWord {
	v := uint16(payload)
	if control {
		v |= 1 << 8
	}
	w := FrameWord(v << 1)
	if OddParity(v, 9) {
		w.Set(parityBit)
	}
	w.Set(stopBit)
	return w
}

func (w FrameWord) Payload() byte {
	return byte(w >> 1)
}

func (w FrameWord) Control() bool {
	return w.IsSet(controlBit)
}

type ReceiveStateEnum int

const (
	receiveIdle ReceiveStateEnum = iota
	receiveStart
	receiveData
	receiveControl
	receiveParity
	receiveStop
)

func (s ReceiveStateEnum) String() string {
	switch s {
	case receiveIdle:
		return "idle"
	case receiveStart:
		return "start"
	case receiveData:
		return "data"
	case receiveControl:
		return "control"
	case receiveParity:
		return "parity"
	case receiveStop:
		return "stop"
	}
	return "unknown"
}

// FrameLayout selects how a receiver finds the start of a frame.
type FrameLayout struct {
	// SyncedStart means the decoder locates start bits itself and calls Arm.
	// Otherwise an idle receiver treats any 0 bit as a start bit.
	SyncedStart bool
}

// FrameReceiver turns a bit stream into validated frame bytes.
type FrameReceiver struct {
	Layout FrameLayout
	OnByte func(payload byte, control bool)

	state   ReceiveStateEnum
	data    byte
	count   int
	control bool
	parity  bool
}

func (r *FrameReceiver) Idle() bool {
	return r.state == receiveIdle
}

// Arm expects the next bit to be a start bit.
func (r *FrameReceiver) Arm() {
	r.state = receiveStart
}

func (r *FrameReceiver) Reset() {
	r.state = receiveIdle
}

func (r *FrameReceiver) Push(bit bool) {
	switch r.state {
	case receiveIdle:
		if r.Layout.SyncedStart || bit {
			return
		}
		r.begin()
	case receiveStart:
		if bit {
			r.abort("start")
			return
		}
		r.begin()
	case receiveData:
		r.data >>= 1
		if bit {
			r.data |= 0x80
			r.parity = !r.parity
		}
		r.count++
		if r.count == 8 {
			r.state = receiveControl
		}
	case receiveControl:
		r.control = bit
		if bit {
			r.parity = !r.parity
		}
		r.state = receiveParity
	case receiveParity:
		if bit != r.parity {
			r.abort("parity")
			return
		}
		r.state = receiveStop
	case receiveStop:
		if !bit {
			r.abort("stop")
			return
		}
		r.state = receiveIdle
		if r.OnByte != nil {
			r.OnByte(r.data, r.control)
		}
	}
}

func (r *FrameReceiver) begin() {
	r.state = receiveData
	r.data = 0
	r.count = 0
	r.control = false
	r.parity = true
}

func (r *FrameReceiver) abort(field string) {
	debugLog(logrus.Fields{"field": field, "state": r.state, "data": r.data}, "frame dropped")
	r.state = receiveIdle
}

// messageAssembler collects data bytes after a header until the announced
// length is reached.
type messageAssembler struct {
	publish func(message string)

	expected int
	pending  bool
	buffer   []byte
}

func (a *messageAssembler) dispatch(payload byte, control bool) {
	if control {
		a.expected = int(payload)
		if a.expected == 0 {
			a.expected = MaxMessageLength
		}
		a.pending = true
		a.buffer = a.buffer[:0]
		return
	}
	if !a.pending {
		return
	}
	a.buffer = append(a.buffer, payload)
	if len(a.buffer) == a.expected {
		message := string(a.buffer)
		a.pending = false
		a.buffer = a.buffer[:0]
		if a.publish != nil {
			a.publish(message)
		}
	}
}

func (a *messageAssembler) reset() {
	a.pending = false
	a.expected = 0
	a.buffer = a.buffer[:0]
}
