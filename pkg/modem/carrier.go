package modem

import "math"

// CarrierConfig describes one baud of a sine tone.
type CarrierConfig struct {
	Amplitude  float64
	Freq       float64
	Phase      float64
	SampleRate float64
	Size       int
}

func (p CarrierConfig) New() []float32 {
	signal := make([]float32, p.Size)
	for i := range p.Size {
		t := float64(i) / p.SampleRate
		signal[i] = float32(p.Amplitude * math.Sin(2*math.Pi*p.Freq*t+p.Phase))
	}
	return signal
}
