//go:build portaudio

package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudio plays and records through the default host devices.
type PortAudio struct {
	SampleRate float64

	stream *portaudio.Stream
}

func NewPortAudio(sampleRate float64) (Device, error) {
	return &PortAudio{SampleRate: sampleRate}, nil
}

func (p *PortAudio) Start(callback func(in, out []float32)) error {
	if p.stream != nil {
		return ErrAlreadyStarted
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio initialize: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(1, 1, p.SampleRate, BufferSize, callback)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("portaudio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("portaudio start: %w", err)
	}
	p.stream = stream
	return nil
}

func (p *PortAudio) Stop() {
	if p.stream == nil {
		return
	}
	p.stream.Stop()
	p.stream.Close()
	portaudio.Terminate()
	p.stream = nil
}
