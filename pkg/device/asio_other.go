//go:build !windows

package device

import "fmt"

func NewASIO(name string, sampleRate float64, inChannel, outChannel int) (Device, error) {
	return nil, fmt.Errorf("asio %q: %w", name, ErrUnsupportedBackend)
}
