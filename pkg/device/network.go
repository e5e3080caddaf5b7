package device

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

type NetworkConfig[BufferIDType comparable] []struct {
	In  BufferIDType
	Out BufferIDType
}

// Channel is applied to every shared buffer after the outputs are mixed.
type Channel struct {
	Gain  float32 // 0 means unity
	Noise float64 // standard deviation of additive white Gaussian noise
	Seed  uint64
}

func (c Channel) apply(buf []float32, rng *rand.Rand) {
	gain := c.Gain
	if gain == 0 {
		gain = 1
	}
	for i, v := range buf {
		v *= gain
		if c.Noise > 0 {
			v += float32(rng.NormFloat64() * c.Noise)
		}
		buf[i] = clipf32(v)
	}
}

type networkNode[BufferIDType comparable] struct {
	network  *Network[BufferIDType]
	input    []float32
	output   []float32
	callback func(in, out []float32)
}

// Network simulates devices sharing acoustic buffers. Every node reads the
// buffer named by its In and mixes its output into the buffer named by its
// Out, one buffer period later.
type Network[BufferIDType comparable] struct {
	SampleRate float64                     // the fake sample rate, 0 means no limit
	Config     NetworkConfig[BufferIDType] // the topology of the network
	Channel    Channel
	LateUpdate func() // the post process function

	mu      sync.Mutex
	rng     *rand.Rand
	buffers map[BufferIDType][]float32
	order   []BufferIDType // buffer names in creation order
	devices []*networkNode[BufferIDType]
	running int
	done    chan struct{}
	wg      sync.WaitGroup
}

func (n *Network[BufferIDType]) GetBuffer(name BufferIDType) []float32 {
	buf, ok := n.buffers[name]
	if !ok {
		buf = allocf32(BufferSize)
		n.buffers[name] = buf
		n.order = append(n.order, name)
	}
	return buf
}

// Build creates one device per Config entry, in order.
func (n *Network[BufferIDType]) Build() []Device {
	n.buffers = make(map[BufferIDType][]float32)
	n.order = n.order[:0]
	n.rng = rand.New(rand.NewSource(n.Channel.Seed))
	n.devices = n.devices[:0]
	devices := make([]Device, 0, len(n.Config))
	for _, deviceConfig := range n.Config {
		d := &networkNode[BufferIDType]{
			network: n,
			input:   n.GetBuffer(deviceConfig.In),
			output:  allocf32(BufferSize),
		}
		n.GetBuffer(deviceConfig.Out)
		n.devices = append(n.devices, d)
		devices = append(devices, d)
	}
	return devices
}

// Stop stops every node.
func (n *Network[BufferIDType]) Stop() {
	for _, d := range n.devices {
		d.Stop()
	}
}

func (n *Network[BufferIDType]) update() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, d := range n.devices {
		if d.callback != nil {
			d.callback(d.input, d.output)
		} else {
			clear(d.output)
		}
	}

	for _, buf := range n.buffers {
		clear(buf)
	}

	// sum up the output of all the devices to the input buffer
	for i, deviceConfig := range n.Config {
		sumf32(n.buffers[deviceConfig.Out], n.devices[i].output)
	}

	// a fixed order keeps the seeded noise reproducible
	for _, name := range n.order {
		n.Channel.apply(n.buffers[name], n.rng)
	}

	if n.LateUpdate != nil {
		n.LateUpdate()
	}
}

// run must be called with n.mu held.
func (n *Network[BufferIDType]) run() {
	done := make(chan struct{})
	n.done = done
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if n.SampleRate == 0 {
			for {
				select {
				case <-done:
					return
				default:
					n.update()
				}
			}
		}
		ticker := time.NewTicker(bufferPeriod(n.SampleRate))
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				n.update()
			}
		}
	}()
}

func (d *networkNode[BufferIDType]) Start(callback func(in, out []float32)) error {
	n := d.network
	n.mu.Lock()
	defer n.mu.Unlock()
	if d.callback != nil {
		return ErrAlreadyStarted
	}
	d.callback = callback
	n.running++
	if n.running == 1 {
		n.run()
	}
	return nil
}

// Stop detaches the node. The clock stops with the last node.
func (d *networkNode[BufferIDType]) Stop() {
	n := d.network
	n.mu.Lock()
	if d.callback == nil {
		n.mu.Unlock()
		return
	}
	d.callback = nil
	n.running--
	var done chan struct{}
	if n.running == 0 {
		done, n.done = n.done, nil
	}
	n.mu.Unlock()

	if done != nil {
		close(done)
		n.wg.Wait()
	}
}
