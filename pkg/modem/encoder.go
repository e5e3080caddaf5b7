package modem

import "fmt"

// Encoder turns text into audio samples.
type Encoder interface {
	Modulate(message string) ([]float32, error)
	SetConfig(cfg Config) error
	Config() Config
}

type EncoderType string

const BasicEncoderType EncoderType = "basic"

func NewEncoder(t EncoderType, cfg Config, sampleRate int) (Encoder, error) {
	switch t {
	case BasicEncoderType:
		return NewBasicEncoder(cfg, sampleRate)
	}
	return nil, fmt.Errorf("%w: encoder %q", ErrUnknownVariant, t)
}

// BasicEncoder emits a high tone preamble, a header frame carrying the
// message length and one frame per message byte.
type BasicEncoder struct {
	sampleRate    int
	config        Config
	samplesPerBit int
	carriers      [2][]float32 // low tone for 0, high tone for 1
}

func NewBasicEncoder(cfg Config, sampleRate int) (*BasicEncoder, error) {
	e := &BasicEncoder{sampleRate: sampleRate}
	if err := e.SetConfig(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *BasicEncoder) SetConfig(cfg Config) error {
	if err := cfg.Validate(e.sampleRate); err != nil {
		return err
	}
	e.config = cfg
	e.samplesPerBit = cfg.SamplesPerBaud(e.sampleRate)
	tone := func(freq int) []float32 {
		return CarrierConfig{
			Amplitude:  -1,
			Freq:       float64(freq),
			SampleRate: float64(e.sampleRate),
			Size:       e.samplesPerBit,
		}.New()
	}
	e.carriers = [2][]float32{tone(cfg.FreqLow), tone(cfg.FreqHigh)}
	return nil
}

func (e *BasicEncoder) Config() Config {
	return e.config
}

func (e *BasicEncoder) Modulate(message string) ([]float32, error) {
	payload := []byte(message)
	if len(payload) > MaxMessageLength {
		return nil, fmt.Errorf("%w: %d bytes, at most %d", ErrMessageTooLong, len(payload), MaxMessageLength)
	}
	words := make([]FrameWord, 0, len(payload)+1)
	// 256 wraps to 0 in the header byte
	words = append(words, NewFrameWord(byte(len(payload)), true))
	for _, b := range payload {
		words = append(words, NewFrameWord(b, false))
	}
	return e.modulateFrames(words), nil
}

func (e *BasicEncoder) modulateFrames(words []FrameWord) []float32 {
	samples := make([]float32, 0, (PreambleBauds+len(words)*BitsPerFrame)*e.samplesPerBit)
	for range PreambleBauds {
		samples = append(samples, e.carriers[1]...)
	}
	modulateBit := func(bit bool) {
		samples = append(samples, e.getCarrier(bit)...)
	}
	for _, w := range words {
		w.ForEach(modulateBit, BitsPerFrame)
	}
	return samples
}

func (e *BasicEncoder) getCarrier(bit bool) []float32 {
	if bit {
		return e.carriers[1]
	}
	return e.carriers[0]
}
