package callbacks

import "sync"

// Player writes Track to the output once, then silence.
type Player struct {
	Track []float32

	mu  sync.Mutex
	idx int
}

func (p *Player) Update(in, out []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := copy(out, p.Track[p.idx:])
	p.idx += n
	clear(out[n:])
}

func (p *Player) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idx >= len(p.Track)
}

func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idx = 0
}
