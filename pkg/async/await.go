package async

import (
	"errors"
	"time"
)

var ErrTimeout = errors.New("timed out")

func Await[R any](a <-chan R) R {
	return <-a
}

// AwaitTimeout waits for one value from a. A closed channel yields the zero
// value and no error.
func AwaitTimeout[R any](a <-chan R, timeout time.Duration) (R, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-a:
		return r, nil
	case <-timer.C:
		var zero R
		return zero, ErrTimeout
	}
}
