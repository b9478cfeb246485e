// Package flushio provides buffered writers that must be explicitly flushed,
// and fan out over several of them.
package flushio

import (
	"bufio"
	"io"
	"io/ioutil"
)

// WriteFlusher is an io.Writer that may buffer until Flush.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w itself if it is already a WriteFlusher. In-memory
// buffers like bytes.Buffer and ioutil.Discard get a no-op Flush. Anything
// else is wrapped in a bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case memBuffer:
		return nopFlusher{w}
	}
	if w == ioutil.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

// memBuffer matches types like bytes.Buffer and strings.Builder.
type memBuffer interface {
	io.Writer
	Cap() int
	Len() int
	Grow(n int)
	Reset()
}

type nopFlusher struct{ io.Writer }

func (nopFlusher) Flush() error { return nil }

// WriteFlushers combines WriteFlushers into one that writes to, and flushes,
// each of them in order. Nil arguments are skipped, and nested combinations
// are flattened.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all multiWriteFlusher
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case multiWriteFlusher:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type multiWriteFlusher []WriteFlusher

func (all multiWriteFlusher) Write(p []byte) (int, error) {
	for _, wf := range all {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (all multiWriteFlusher) Flush() (err error) {
	for _, wf := range all {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
