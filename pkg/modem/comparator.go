package modem

import "github.com/sirupsen/logrus"

// comparatorSyncLead is how many samples the baud clock is advanced when a
// start bit is found, so the stop bit closes inside the message's own samples.
const comparatorSyncLead = 2

// Band is an inclusive range of zero crossing periods, in samples.
type Band struct {
	Min float64
	Max float64
}

func (b Band) Contains(period float64) bool {
	return period >= b.Min && period <= b.Max
}

// ComparatorDecoder classifies tones by the distance between falling zero
// crossings. It needs no arithmetic beyond counting, so it keeps working on
// quiet input.
type ComparatorDecoder struct {
	decoderBase

	samplesPerBaud int
	lowBand        Band
	highBand       Band

	lastOnTop     bool
	periodCounter int // samples since the last accepted crossing
	baudCounter   int
	lowCounter    int // samples of low tone in the current baud
	highCounter   int // samples of high tone in the current baud
}

func NewComparatorDecoder(cfg Config, sampleRate int) (*ComparatorDecoder, error) {
	d := &ComparatorDecoder{}
	d.setup("comparator", sampleRate, FrameLayout{SyncedStart: true})
	if err := d.SetConfig(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *ComparatorDecoder) SetConfig(cfg Config) error {
	if err := cfg.Validate(d.sampleRate); err != nil {
		return err
	}
	d.config = cfg
	d.samplesPerBaud = cfg.SamplesPerBaud(d.sampleRate)

	// split the gap between the two nominal periods in proportion to them
	sampleRate := float64(d.sampleRate)
	low := sampleRate / float64(cfg.FreqLow)
	high := sampleRate / float64(cfg.FreqHigh)
	ratio := float64(cfg.FreqHigh) / float64(cfg.FreqLow)
	lowRadius := (low - high) / (1/ratio + 1)
	highRadius := (low - high) - lowRadius
	d.lowBand = Band{Min: low - lowRadius, Max: low + lowRadius}
	d.highBand = Band{Min: high - highRadius, Max: high + highRadius}

	d.reset()
	logger.WithFields(logrus.Fields{
		"decoder": d.name,
		"config":  cfg.String(),
		"low":     d.lowBand,
		"high":    d.highBand,
	}).Debug("decoder configured")
	return nil
}

// Bands returns the accepted crossing periods for the low and the high tone.
func (d *ComparatorDecoder) Bands() (low, high Band) {
	return d.lowBand, d.highBand
}

func (d *ComparatorDecoder) reset() {
	d.lastOnTop = false
	d.periodCounter = 0
	d.baudCounter = 0
	d.lowCounter = 0
	d.highCounter = 0
	d.resetFrames()
}

func (d *ComparatorDecoder) Demodulate(samples []float32) {
	for _, sample := range samples {
		d.periodCounter++
		d.baudCounter++
		if d.lastOnTop && sample < 0 {
			d.crossing()
		}
		if !d.receiver.Idle() && d.baudCounter >= d.samplesPerBaud {
			d.baudCounter -= d.samplesPerBaud
			bit := d.highCounter >= d.lowCounter
			d.lowCounter = 0
			d.highCounter = 0
			d.receiver.Push(bit)
		}
		d.lastOnTop = sample >= 0
	}
}

func (d *ComparatorDecoder) crossing() {
	period := float64(d.periodCounter)
	if period < d.highBand.Min {
		// glitch, keep measuring from the previous crossing
		return
	}
	d.periodCounter = 0
	switch {
	case period > d.lowBand.Max:
	case period > d.lowBand.Min:
		d.lowCounter += int(period)
		if d.receiver.Idle() && d.lowCounter > d.samplesPerBaud/2 {
			d.receiver.Arm()
			d.highCounter = 0
			d.baudCounter = d.lowCounter + comparatorSyncLead
		}
	case d.highBand.Contains(period):
		if d.receiver.Idle() {
			d.lowCounter = 0
			d.highCounter = 0
		} else {
			d.highCounter += int(period)
		}
	}
}

// Flush feeds two bauds of silence.
func (d *ComparatorDecoder) Flush() {
	d.Demodulate(make([]float32, 2*d.samplesPerBaud))
}
