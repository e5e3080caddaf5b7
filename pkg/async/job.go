package async

// Job runs f in a goroutine and closes the channel when it returns.
func Job(f func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f()
	}()
	return done
}
