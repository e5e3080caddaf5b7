package async

import (
	"bufio"
	"io"
	"os"
)

// Line closes the returned channel once r yields a newline or ends.
func Line(r io.Reader) <-chan struct{} {
	return Job(func() {
		bufio.NewReader(r).ReadBytes('\n')
	})
}

func EnterKey() <-chan struct{} {
	return Line(os.Stdin)
}
