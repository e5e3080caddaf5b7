package modem

import (
	"math"
	"slices"

	"github.com/sirupsen/logrus"
)

// DefaultNoiseFloor is the smallest discriminator peak that counts as a tone.
const DefaultNoiseFloor = 5.0

// DFTDecoder correlates the input against both tones over a sliding window
// of one baud. The sign of the smoothed magnitude difference selects the
// bit and the length of each run of one sign gives the bit count.
type DFTDecoder struct {
	decoderBase

	// Normalize scales every chunk by its peak before correlation. Off by
	// default: thresholds are tuned for full scale input, so quiet input
	// falls under NoiseFloor and is ignored.
	Normalize  bool
	NoiseFloor float64

	samplesPerBaud int
	sinLow         []float32
	cosLow         []float32
	sinHigh        []float32
	cosHigh        []float32

	// circular buffers of the products in the current window
	lowReal  []float32
	lowImag  []float32
	highReal []float32
	highImag []float32
	index    int

	sumLowReal  float64
	sumLowImag  float64
	sumHighReal float64
	sumHighImag float64

	history [2]float32
	filled  int

	started bool
	last    float32
	run     int
	peak    float32

	scratch []float32
}

func NewDFTDecoder(cfg Config, sampleRate int) (*DFTDecoder, error) {
	d := &DFTDecoder{NoiseFloor: DefaultNoiseFloor}
	d.setup("dft", sampleRate, FrameLayout{SyncedStart: false})
	if err := d.SetConfig(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DFTDecoder) SetConfig(cfg Config) error {
	if err := cfg.Validate(d.sampleRate); err != nil {
		return err
	}
	d.config = cfg
	d.samplesPerBaud = cfg.SamplesPerBaud(d.sampleRate)

	table := func(freq int, phase float64) []float32 {
		return CarrierConfig{
			Amplitude:  1,
			Freq:       float64(freq),
			Phase:      phase,
			SampleRate: float64(d.sampleRate),
			Size:       d.samplesPerBaud,
		}.New()
	}
	d.sinLow = table(cfg.FreqLow, 0)
	d.cosLow = table(cfg.FreqLow, math.Pi/2)
	d.sinHigh = table(cfg.FreqHigh, 0)
	d.cosHigh = table(cfg.FreqHigh, math.Pi/2)

	d.lowReal = make([]float32, d.samplesPerBaud)
	d.lowImag = make([]float32, d.samplesPerBaud)
	d.highReal = make([]float32, d.samplesPerBaud)
	d.highImag = make([]float32, d.samplesPerBaud)

	d.reset()
	logger.WithFields(logrus.Fields{"decoder": d.name, "config": cfg.String()}).Debug("decoder configured")
	return nil
}

func (d *DFTDecoder) reset() {
	clear(d.lowReal)
	clear(d.lowImag)
	clear(d.highReal)
	clear(d.highImag)
	d.index = 0
	d.sumLowReal, d.sumLowImag = 0, 0
	d.sumHighReal, d.sumHighImag = 0, 0
	d.history = [2]float32{}
	d.filled = 0
	d.started = false
	d.last = 0
	d.run = 0
	d.peak = 0
	d.resetFrames()
}

func (d *DFTDecoder) Demodulate(samples []float32) {
	if d.Normalize {
		samples = d.normalize(samples)
	}
	for _, sample := range samples {
		smoothed, ok := d.smooth(d.correlate(sample))
		if ok {
			d.detect(smoothed)
		}
	}
}

// Flush feeds two bauds of silence and closes the run still open.
func (d *DFTDecoder) Flush() {
	d.Demodulate(make([]float32, 2*d.samplesPerBaud))
	if d.run > 0 {
		d.closeRun()
	}
}

func (d *DFTDecoder) normalize(samples []float32) []float32 {
	var peak float32
	for _, s := range samples {
		peak = max(peak, abs32(s))
	}
	if peak == 0 {
		return samples
	}
	d.scratch = slices.Grow(d.scratch[:0], len(samples))[:len(samples)]
	for i, s := range samples {
		d.scratch[i] = s / peak
	}
	return d.scratch
}

// correlate slides the window by one sample and returns the high tone
// magnitude minus the low tone magnitude.
func (d *DFTDecoder) correlate(sample float32) float32 {
	i := d.index
	d.lowReal[i] = sample * d.cosLow[i]
	d.lowImag[i] = sample * d.sinLow[i]
	d.highReal[i] = sample * d.cosHigh[i]
	d.highImag[i] = sample * d.sinHigh[i]
	d.sumLowReal += float64(d.lowReal[i])
	d.sumLowImag += float64(d.lowImag[i])
	d.sumHighReal += float64(d.highReal[i])
	d.sumHighImag += float64(d.highImag[i])

	value := float32(math.Hypot(d.sumHighReal, d.sumHighImag) - math.Hypot(d.sumLowReal, d.sumLowImag))

	d.index++
	if d.index == d.samplesPerBaud {
		d.index = 0
	}
	// the oldest product leaves the window
	j := d.index
	d.sumLowReal -= float64(d.lowReal[j])
	d.sumLowImag -= float64(d.lowImag[j])
	d.sumHighReal -= float64(d.highReal[j])
	d.sumHighImag -= float64(d.highImag[j])
	return value
}

// smooth is a centered three point moving average, one sample late.
func (d *DFTDecoder) smooth(value float32) (float32, bool) {
	prev2, prev1 := d.history[0], d.history[1]
	d.history[0], d.history[1] = prev1, value
	if d.filled < 2 {
		d.filled++
		return 0, false
	}
	return float32((float64(prev2) + float64(prev1) + float64(value)) / 3), true
}

func (d *DFTDecoder) detect(value float32) {
	if !d.started {
		d.started = true
		d.last = value
		return
	}
	d.run++
	if abs32(value) > abs32(d.peak) {
		d.peak = value
	}
	if float64(d.last)*float64(value) <= 0 {
		d.closeRun()
	}
	d.last = value
}

func (d *DFTDecoder) closeRun() {
	if float64(abs32(d.peak)) < d.NoiseFloor {
		// no tone in this run, wait for the next start bit
		d.receiver.Reset()
	} else {
		bits := int(math.Round(float64(d.run) / float64(d.samplesPerBaud)))
		bit := d.peak > 0
		for range bits {
			d.receiver.Push(bit)
		}
	}
	d.run = 0
	d.peak = 0
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
