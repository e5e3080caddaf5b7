package layers

import (
	"sync"
	"time"

	"Aethermodem/pkg/async"

	"github.com/sirupsen/logrus"
)

// Packet is a message together with the address of the node that sent it.
type Packet struct {
	Source  byte
	Message string
}

// NaiveDataLinkLayer prefixes every message with the sender address. On a
// shared medium a node hears its own transmissions, and those are dropped.
// The usable message length is one byte less than the physical layer's.
type NaiveDataLinkLayer struct {
	PhysicalLayer

	Address    byte
	BufferSize int

	mu      sync.Mutex
	outChan chan Packet
	done    chan struct{}
}

func (l *NaiveDataLinkLayer) Open() error {
	if err := l.PhysicalLayer.Open(); err != nil {
		return err
	}
	done := make(chan struct{})
	l.mu.Lock()
	l.done = done
	out := l.packets()
	l.mu.Unlock()
	in := l.PhysicalLayer.ReceiveAsync()
	go func() {
		for {
			select {
			case <-done:
				return
			case data := <-in:
				if len(data) == 0 || data[0] == l.Address {
					// the packet was sent by us
					continue
				}
				select {
				case out <- Packet{Source: data[0], Message: data[1:]}:
				default:
					logger.WithFields(logrus.Fields{"address": l.Address, "source": data[0]}).Warn("data link channel is full, packet dropped")
				}
			}
		}
	}()
	return nil
}

func (l *NaiveDataLinkLayer) Close() {
	l.mu.Lock()
	if l.done != nil {
		close(l.done)
		l.done = nil
	}
	l.mu.Unlock()
	l.PhysicalLayer.Close()
}

func (l *NaiveDataLinkLayer) SendAsync(message string) (<-chan struct{}, error) {
	return l.PhysicalLayer.SendAsync(string([]byte{l.Address}) + message)
}

func (l *NaiveDataLinkLayer) Send(message string) error {
	return l.PhysicalLayer.Send(string([]byte{l.Address}) + message)
}

func (l *NaiveDataLinkLayer) SendWithTimeout(message string, timeout time.Duration) error {
	return l.PhysicalLayer.SendWithTimeout(string([]byte{l.Address})+message, timeout)
}

// ReceiveAsync returns the channel packets from other nodes arrive on. It
// is valid before Open.
func (l *NaiveDataLinkLayer) ReceiveAsync() <-chan Packet {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.packets()
}

// packets must be called with l.mu held.
func (l *NaiveDataLinkLayer) packets() chan Packet {
	if l.outChan == nil {
		l.outChan = make(chan Packet, max(l.BufferSize, 1))
	}
	return l.outChan
}

func (l *NaiveDataLinkLayer) Receive() Packet {
	return <-l.ReceiveAsync()
}

func (l *NaiveDataLinkLayer) ReceiveWithTimeout(timeout time.Duration) (Packet, error) {
	return async.AwaitTimeout(l.ReceiveAsync(), timeout)
}
