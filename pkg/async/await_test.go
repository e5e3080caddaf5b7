package async

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwait(t *testing.T) {
	f := Promise(func() int {
		time.Sleep(10 * time.Millisecond)
		return 1
	})
	assert.Equal(t, 1, Await(f))
}

func TestAwaitTimeout(t *testing.T) {
	fast := Promise(func() string { return "fast" })
	r, err := AwaitTimeout(fast, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "fast", r)

	never := make(chan string)
	start := time.Now()
	r, err = AwaitTimeout(never, 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, r)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestLine(t *testing.T) {
	select {
	case <-Line(strings.NewReader("\n")):
	case <-time.After(time.Second):
		t.Fatal("newline not seen")
	}
	select {
	case <-Line(strings.NewReader("")):
	case <-time.After(time.Second):
		t.Fatal("end of input not seen")
	}
}
