package subprocess

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

const (
	// maxLineSize is the maximum size of a single engine output line.
	maxLineSize = 64 * 1024
	// maxBufferSize caps the unread output. Older text is trimmed from the
	// front at a line boundary once the cap is exceeded.
	maxBufferSize = 1024 * 1024
)

// outputBuffer accumulates engine output between commands.
type outputBuffer struct {
	mu    sync.Mutex
	b     strings.Builder
	limit int
}

func newOutputBuffer(limit int) *outputBuffer {
	return &outputBuffer{limit: limit}
}

func (o *outputBuffer) write(s string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.b.WriteString(s)

	if o.b.Len() <= o.limit {
		return
	}

	text := o.b.String()
	tail := text[len(text)-o.limit:]

	if i := strings.IndexByte(tail, '\n'); i >= 0 {
		tail = tail[i+1:]
	}

	o.b.Reset()
	o.b.WriteString(tail)
}

// text returns the buffered output without consuming it.
func (o *outputBuffer) text() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.b.String()
}

// drain returns the buffered output and empties the buffer.
func (o *outputBuffer) drain() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	text := o.b.String()
	o.b.Reset()

	return text
}

// pump copies r into buf line by line until r is exhausted.
// Lines are stored with their trailing newline.
func pump(r io.Reader, buf *outputBuffer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for scanner.Scan() {
		buf.write(scanner.Text() + "\n")
	}

	err := scanner.Err()
	if err != nil {
		// Keep reading until EOF so the engine never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, r)
	}

	return err
}
