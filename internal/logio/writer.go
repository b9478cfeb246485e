package logio

import (
	"bytes"
	"sync"
)

// Writer buffers written bytes, passing each completed line to Logf without
// its line feed. It is safe to use from multiple goroutines.
type Writer struct {
	Logf func(string, ...interface{})

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write logs every line completed by p.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	for {
		i := bytes.IndexByte(lw.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		lw.Logf("%s", lw.buf.Next(i))
		lw.buf.Next(1)
	}
	return len(p), nil
}

// Flush logs any final partial line.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.buf.Len() > 0 {
		lw.Logf("%s", lw.buf.Next(lw.buf.Len()))
	}
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error { return lw.Flush() }
