//go:build windows

package device

import "github.com/xsjk/go-asio"

// ASIOMono uses one input and one output channel of an ASIO driver.
type ASIOMono struct {
	DeviceName string
	SampleRate float64
	InChannel  int
	OutChannel int

	device asio.Device
	in     []float32
	out    []float32
}

func NewASIO(name string, sampleRate float64, inChannel, outChannel int) (Device, error) {
	return &ASIOMono{
		DeviceName: name,
		SampleRate: sampleRate,
		InChannel:  inChannel,
		OutChannel: outChannel,
	}, nil
}

func (a *ASIOMono) Start(callback func(in, out []float32)) error {
	a.device.Load(a.DeviceName)
	a.device.SetSampleRate(a.SampleRate)
	a.device.Open()
	a.device.Start(func(in, out [][]int32) {
		src, dst := in[a.InChannel], out[a.OutChannel]
		a.in = resize(a.in, len(src))
		a.out = resize(a.out, len(dst))
		Int32ToFloat32(a.in, src)
		callback(a.in, a.out)
		Float32ToInt32(dst, a.out)
	})
	return nil
}

func (a *ASIOMono) Stop() {
	a.device.Stop()
	a.device.Close()
	a.device.Unload()
}

func resize(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return allocf32(n)
	}
	return buf[:n]
}
