package async

// Promise runs f in a goroutine. The channel is buffered so the goroutine
// finishes even if nobody reads the result.
func Promise[R any](f func() R) <-chan R {
	out := make(chan R, 1)
	go func() {
		out <- f()
	}()
	return out
}

// Result carries the value and error of a fallible call.
type Result[R any] struct {
	Value R
	Err   error
}

// Try is Promise for functions that can fail.
func Try[R any](f func() (R, error)) <-chan Result[R] {
	return Promise(func() Result[R] {
		v, err := f()
		return Result[R]{Value: v, Err: err}
	})
}
