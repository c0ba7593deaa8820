// Package pipe provides a wrapper to create a pipe and collect at most
// max bytes from the reader side, used to keep a bounded copy of the
// target's diagnostic output.
package pipe

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Buffer is used to create a writable pipe and read
// at most max bytes to a buffer
type Buffer struct {
	W      *os.File
	Max    int64
	Buffer *bytes.Buffer
	Done   <-chan struct{}
}

// NewPipe creates a pipe with a goroutine copying its read end to writer,
// up to n bytes. The rest is drained so the writing process never blocks
// on a full pipe. Caller needs to close w
func NewPipe(writer io.Writer, n int64) (<-chan struct{}, *os.File, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	done := make(chan struct{})
	go func() {
		io.CopyN(writer, r, n)
		close(done)
		// ensure no blocking / SIGPIPE on the other end
		io.Copy(io.Discard, r)
		r.Close()
	}()
	return done, w, nil
}

// NewBuffer creates an os pipe collecting at most max bytes (plus one to
// mark truncation). Caller needs to close W; Done closes after the write
// end is fully closed in both processes
func NewBuffer(max int64) (*Buffer, error) {
	buffer := new(bytes.Buffer)
	done, w, err := NewPipe(buffer, max+1)
	if err != nil {
		return nil, err
	}
	return &Buffer{
		W:      w,
		Max:    max,
		Buffer: buffer,
		Done:   done,
	}, nil
}

// Truncated reports whether the writer produced more than Max bytes
func (b Buffer) Truncated() bool {
	return int64(b.Buffer.Len()) > b.Max
}

func (b Buffer) String() string {
	return fmt.Sprintf("Buffer[%d/%d]", b.Buffer.Len(), b.Max)
}
