package modem

import "strings"

// FrameWord holds the line bits of one frame. Bit 0 goes out first.
type FrameWord uint16

func (w *FrameWord) Set(pos int) {
	*w |= 1 << pos
}

func (w *FrameWord) Clear(pos int) {
	*w &^= 1 << pos
}

func (w FrameWord) IsSet(pos int) bool {
	return w&(1<<pos) != 0
}

// ForEach calls f with the first n bits in transmission order.
func (w FrameWord) ForEach(f func(bit bool), n int) {
	for i := range n {
		f(w.IsSet(i))
	}
}

func (w FrameWord) String() string {
	var sb strings.Builder
	for i := range BitsPerFrame {
		if w.IsSet(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
