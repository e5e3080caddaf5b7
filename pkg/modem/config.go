package modem

import "fmt"

// Config holds the signalling parameters shared by the sender and the
// receiver. Both ends must agree on every field.
type Config struct {
	Baud     int `yaml:"baud"`
	FreqLow  int `yaml:"freq_low"`
	FreqHigh int `yaml:"freq_high"`
}

func DefaultConfig() Config {
	return Config{
		Baud:     1600,
		FreqLow:  4800,
		FreqHigh: 11200,
	}
}

// SamplesPerBaud is the integer number of samples one baud occupies.
func (c Config) SamplesPerBaud(sampleRate int) int {
	return sampleRate / c.Baud
}

// Validate reports whether the config can be modulated and demodulated at
// sampleRate. The returned error wraps ErrInvalidConfig.
func (c Config) Validate(sampleRate int) error {
	switch {
	case sampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, sampleRate)
	case c.Baud <= 0:
		return fmt.Errorf("%w: baud %d must be positive", ErrInvalidConfig, c.Baud)
	case c.FreqLow <= 0:
		return fmt.Errorf("%w: low frequency %d must be positive", ErrInvalidConfig, c.FreqLow)
	case c.FreqHigh <= c.FreqLow:
		return fmt.Errorf("%w: high frequency %d must exceed low frequency %d", ErrInvalidConfig, c.FreqHigh, c.FreqLow)
	case 2*c.FreqHigh >= sampleRate:
		return fmt.Errorf("%w: high frequency %d is above Nyquist for sample rate %d", ErrInvalidConfig, c.FreqHigh, sampleRate)
	case c.FreqLow < 2*c.Baud:
		return fmt.Errorf("%w: low frequency %d must carry at least two cycles per baud at %d baud", ErrInvalidConfig, c.FreqLow, c.Baud)
	case c.SamplesPerBaud(sampleRate) < 2:
		return fmt.Errorf("%w: baud %d leaves fewer than two samples per baud", ErrInvalidConfig, c.Baud)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("%d baud, %d/%d Hz", c.Baud, c.FreqLow, c.FreqHigh)
}
