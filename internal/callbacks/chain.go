package callbacks

// Chain runs the callbacks in order on the same buffers.
func Chain(callbacks ...func(in, out []float32)) func(in, out []float32) {
	return func(in, out []float32) {
		for _, f := range callbacks {
			f(in, out)
		}
	}
}
