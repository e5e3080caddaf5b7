package callbacks

import "sync"

// Recorder appends the input to its track. A positive Limit caps the
// number of samples kept.
type Recorder struct {
	Limit int

	mu    sync.Mutex
	track []float32
}

func (r *Recorder) Update(in, out []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Limit > 0 {
		in = in[:min(len(in), max(r.Limit-len(r.track), 0))]
	}
	r.track = append(r.track, in...)
}

func (r *Recorder) Full() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Limit > 0 && len(r.track) >= r.Limit
}

// Track returns a copy of what has been recorded so far.
func (r *Recorder) Track() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float32(nil), r.track...)
}
