package device

import "errors"

// Device drives a callback with one buffer of captured samples and one
// buffer to fill for playback. Samples are mono floats in [-1, 1].
type Device interface {
	Start(callback func(in, out []float32)) error
	Stop()
}

const BufferSize = 512

var (
	ErrUnsupportedBackend = errors.New("audio backend not available in this build")
	ErrAlreadyStarted     = errors.New("device already started")
)
