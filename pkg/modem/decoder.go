package modem

import (
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

// Handler receives each decoded message.
type Handler func(message string)

// Decoder turns a stream of audio samples into messages. Samples may be fed
// in chunks of any size; the result does not depend on how the stream was
// split.
type Decoder interface {
	Demodulate(samples []float32)
	// Flush feeds trailing silence so a message at the very end of the
	// stream is completed.
	Flush()
	// SetConfig drops any partially received frame or message.
	// Subscriptions are kept.
	SetConfig(cfg Config) error
	Config() Config
	Subscribe(h Handler) (unsubscribe func())
}

type DecoderType string

const (
	ComparatorDecoderType DecoderType = "comparator"
	DFTDecoderType        DecoderType = "dft"
)

func NewDecoder(t DecoderType, cfg Config, sampleRate int) (Decoder, error) {
	switch t {
	case ComparatorDecoderType:
		return NewComparatorDecoder(cfg, sampleRate)
	case DFTDecoderType:
		return NewDFTDecoder(cfg, sampleRate)
	}
	return nil, fmt.Errorf("%w: decoder %q", ErrUnknownVariant, t)
}

type subscription struct {
	id      int
	handler Handler
}

// subject delivers messages to subscribers in subscription order.
type subject struct {
	mu            sync.Mutex
	nextID        int
	subscriptions []subscription
}

func (s *subject) Subscribe(h Handler) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscriptions = append(s.subscriptions, subscription{id: id, handler: h})
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.subscriptions = slices.DeleteFunc(s.subscriptions, func(sub subscription) bool {
				return sub.id == id
			})
		})
	}
}

func (s *subject) publish(message string) {
	s.mu.Lock()
	subscriptions := slices.Clone(s.subscriptions)
	s.mu.Unlock()
	for _, sub := range subscriptions {
		sub.handler(message)
	}
}

// decoderBase is the part every decoder shares: the frame receiver, the
// message assembler and the subscribers.
type decoderBase struct {
	subject

	name       string
	sampleRate int
	config     Config

	receiver  FrameReceiver
	assembler messageAssembler
}

func (b *decoderBase) setup(name string, sampleRate int, layout FrameLayout) {
	b.name = name
	b.sampleRate = sampleRate
	b.receiver = FrameReceiver{Layout: layout, OnByte: b.assembler.dispatch}
	b.assembler.publish = b.deliver
}

func (b *decoderBase) deliver(message string) {
	debugLog(logrus.Fields{"decoder": b.name, "length": len(message)}, "message decoded")
	b.publish(message)
}

func (b *decoderBase) resetFrames() {
	b.receiver.Reset()
	b.assembler.reset()
}

func (b *decoderBase) Config() Config {
	return b.config
}
