package main

import (
	"fmt"

	"github.com/jcorbin/treeforth/internal/flushio"
)

// printer writes program output, remembering the last byte written so that
// the "ok" acknowledgment can be spaced like the classic Forth prompt.
type printer struct {
	flushio.WriteFlusher
	last  byte
	wrote bool
}

// Write passes b through; an empty write forgets the last byte, so that a
// following acknowledgment is not spaced.
func (p *printer) Write(b []byte) (n int, err error) {
	n, err = p.WriteFlusher.Write(b)
	if n > 0 {
		p.last, p.wrote = b[n-1], true
	} else if len(b) == 0 {
		p.wrote = false
	}
	return n, err
}

func (p *printer) WriteString(s string) (n int, err error) {
	return p.Write([]byte(s))
}

func (p *printer) Flush() error {
	if p.WriteFlusher == nil {
		return nil
	}
	return p.WriteFlusher.Flush()
}

// trailingSpace is true when there is no last byte, or when it was a space
// or line feed.
func (p *printer) trailingSpace() bool {
	return !p.wrote || p.last == ' ' || p.last == '\n'
}

func (p *printer) acknowledge() error {
	if p.trailingSpace() {
		_, err := p.WriteString("ok\n")
		return err
	}
	_, err := p.WriteString(" ok\n")
	return err
}

func (p *printer) reportError(err error) error {
	_, werr := fmt.Fprintf(p, "error: %v\n", err)
	return werr
}

func (vm *VM) print(s string) error {
	_, err := vm.out.WriteString(s)
	return err
}
