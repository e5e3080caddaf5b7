package modem

import "errors"

var (
	ErrMessageTooLong = errors.New("message too long")
	ErrInvalidConfig  = errors.New("invalid modem config")
	ErrUnknownVariant = errors.New("unknown modem variant")
)
