//go:build !portaudio

package device

import "fmt"

// NewPortAudio needs the portaudio build tag and the PortAudio C library.
func NewPortAudio(sampleRate float64) (Device, error) {
	return nil, fmt.Errorf("portaudio: %w", ErrUnsupportedBackend)
}
