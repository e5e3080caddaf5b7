package device

import (
	"sync"
	"time"
)

// Loopback feeds every output buffer back as the next input buffer.
type Loopback struct {
	SampleRate float64 // the fake sample rate, 0 means no limit

	mu   sync.Mutex
	done chan struct{}
	wg   sync.WaitGroup
}

func (d *Loopback) Start(callback func(in, out []float32)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done != nil {
		return ErrAlreadyStarted
	}
	done := make(chan struct{})
	d.done = done

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		buf := [2][]float32{allocf32(BufferSize), allocf32(BufferSize)}

		swap := true
		update := func() {
			if swap {
				callback(buf[0], buf[1])
			} else {
				callback(buf[1], buf[0])
			}
			swap = !swap
		}

		if d.SampleRate == 0 {
			for {
				select {
				case <-done:
					return
				default:
					update()
				}
			}
		}
		ticker := time.NewTicker(bufferPeriod(d.SampleRate))
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				update()
			}
		}
	}()
	return nil
}

// Stop returns once the callback is no longer running.
func (d *Loopback) Stop() {
	d.mu.Lock()
	done := d.done
	d.done = nil
	d.mu.Unlock()
	if done == nil {
		return
	}
	close(done)
	d.wg.Wait()
}
