package layers

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"Aethermodem/pkg/async"
	"Aethermodem/pkg/device"
	"Aethermodem/pkg/modem"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotOpen = errors.New("physical layer is not open")
	ErrClosed  = errors.New("physical layer closed before the message was played")
)

const transmitQueueSize = 16

var logger = logrus.WithField("component", "physical")

// PhysicalLayer connects an encoder and a decoder to a full duplex audio
// device. Decoding runs on the device callback, so messages come out in
// the order they were heard.
type PhysicalLayer struct {
	Device  device.Device
	Encoder modem.Encoder
	Decoder modem.Decoder

	BufferSize int // capacity of the received message channel

	mu          sync.Mutex
	outputChan  chan string
	closed      chan struct{} // closed by Close, nil before Open
	queue       chan *transmission
	current     *transmission
	unsubscribe func()
	listening   bool
}

type transmission struct {
	samples []float32
	done    chan struct{}
	once    sync.Once
	err     error
}

// finish records err and closes done. Only the first call counts.
func (t *transmission) finish(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.done)
	})
}

func (p *PhysicalLayer) Open() error {
	p.mu.Lock()
	p.output()
	p.closed = make(chan struct{})
	p.queue = make(chan *transmission, transmitQueueSize)
	p.current = nil
	p.listening = true
	p.unsubscribe = p.Decoder.Subscribe(p.deliver)
	p.mu.Unlock()

	if err := p.Device.Start(p.callback); err != nil {
		p.mu.Lock()
		p.unsubscribe()
		p.unsubscribe = nil
		p.closed = nil
		p.queue = nil
		p.mu.Unlock()
		return fmt.Errorf("start device: %w", err)
	}
	logger.WithField("config", p.Encoder.Config().String()).Info("physical layer opened")
	return nil
}

func (p *PhysicalLayer) Close() {
	p.Device.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	if p.closed != nil {
		close(p.closed)
		p.closed = nil
	}
	// nothing plays the pending transmissions any more
	if p.current != nil {
		p.current.finish(ErrClosed)
		p.current = nil
	}
	for pending := true; pending && p.queue != nil; {
		select {
		case t := <-p.queue:
			t.finish(ErrClosed)
		default:
			pending = false
		}
	}
	p.queue = nil
	logger.Info("physical layer closed")
}

func (p *PhysicalLayer) callback(in, out []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listening {
		p.Decoder.Demodulate(in)
	}
	p.write(out)
}

// try to consume the queue and write some samples to out
func (p *PhysicalLayer) write(out []float32) {
	i := 0
	for i < len(out) {
		if p.current == nil {
			select {
			case p.current = <-p.queue:
			default:
			}
			if p.current == nil {
				break
			}
		}
		n := copy(out[i:], p.current.samples)
		p.current.samples = p.current.samples[n:]
		i += n
		if len(p.current.samples) == 0 {
			p.current.finish(nil)
			p.current = nil
		}
	}
	clear(out[i:])
}

func (p *PhysicalLayer) deliver(message string) {
	select {
	case p.outputChan <- message:
	default:
		logger.WithField("length", len(message)).Warn("output channel is full, message dropped")
	}
}

// SendAsync queues message for playback. The returned channel is closed
// once its last sample has been handed to the device, or when the layer
// is closed first.
func (p *PhysicalLayer) SendAsync(message string) (<-chan struct{}, error) {
	t, err := p.enqueue(message)
	if err != nil {
		return nil, err
	}
	return t.done, nil
}

// Send blocks until message is played. It fails with ErrClosed if the
// layer is closed in the meantime.
func (p *PhysicalLayer) Send(message string) error {
	t, err := p.enqueue(message)
	if err != nil {
		return err
	}
	<-t.done
	return t.err
}

func (p *PhysicalLayer) SendWithTimeout(message string, timeout time.Duration) error {
	t, err := p.enqueue(message)
	if err != nil {
		return err
	}
	if _, err := async.AwaitTimeout(t.done, timeout); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return t.err
}

func (p *PhysicalLayer) enqueue(message string) (*transmission, error) {
	p.mu.Lock()
	queue, closed := p.queue, p.closed
	samples, err := p.Encoder.Modulate(message)
	p.mu.Unlock()
	if queue == nil {
		return nil, ErrNotOpen
	}
	if err != nil {
		return nil, err
	}
	t := &transmission{samples: samples, done: make(chan struct{})}
	select {
	case queue <- t:
	case <-closed:
		return nil, ErrClosed
	}
	// Close may have drained the queue before t got in
	select {
	case <-closed:
		t.finish(ErrClosed)
	default:
	}
	logger.WithFields(logrus.Fields{"length": len(message), "samples": len(samples)}).Debug("message queued")
	return t, nil
}

// Receive blocks until a message is decoded. Before Open it waits for the
// layer to be opened.
func (p *PhysicalLayer) Receive() string {
	return <-p.ReceiveAsync()
}

// ReceiveAsync returns the channel decoded messages arrive on. The channel
// is the same for the lifetime of the layer.
func (p *PhysicalLayer) ReceiveAsync() <-chan string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.output()
}

// output must be called with p.mu held.
func (p *PhysicalLayer) output() chan string {
	if p.outputChan == nil {
		p.outputChan = make(chan string, max(p.BufferSize, 1))
	}
	return p.outputChan
}

func (p *PhysicalLayer) ReceiveWithTimeout(timeout time.Duration) (string, error) {
	message, err := async.AwaitTimeout(p.ReceiveAsync(), timeout)
	if err != nil {
		return "", fmt.Errorf("receive: %w", err)
	}
	return message, nil
}

// SetConfig applies cfg to both ends, or to neither if either rejects it.
func (p *PhysicalLayer) SetConfig(cfg modem.Config) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.Encoder.Config()
	if err := p.Encoder.SetConfig(cfg); err != nil {
		return err
	}
	if err := p.Decoder.SetConfig(cfg); err != nil {
		p.Encoder.SetConfig(old)
		return err
	}
	logger.WithField("config", cfg.String()).Info("config changed")
	return nil
}

func (p *PhysicalLayer) Config() modem.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Encoder.Config()
}

func (p *PhysicalLayer) SetEncoder(e modem.Encoder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Encoder = e
}

// SetDecoder moves the subscription to d. Partial input held by the old
// decoder is discarded.
func (p *PhysicalLayer) SetDecoder(d modem.Decoder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = d.Subscribe(p.deliver)
	}
	p.Decoder = d
}

// Listen turns decoding of captured input on or off. Playback continues
// either way.
func (p *PhysicalLayer) Listen(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listening = on
}

func (p *PhysicalLayer) Listening() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listening
}
