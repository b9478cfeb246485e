// Package fileinput reads runes through a queue of named input streams,
// tracking the location of each rune read for use in diagnostics.
package fileinput

import (
	"fmt"
	"io"

	"github.com/jcorbin/treeforth/internal/runeio"
)

// Location names a rune position within an input stream. Lines and columns
// count from 1; the zero Location means "nowhere".
type Location struct {
	Name   string
	Line   int
	Column int
}

func (loc Location) String() string {
	if loc.Column == 0 {
		return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
	}
	return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Column)
}

// Input reads runes sequentially from a Queue of input streams, like a
// concatenation of them, except that a 0 rune is returned at each boundary
// between two streams. Streams that implement io.Closer are closed once
// exhausted.
type Input struct {
	Queue []io.Reader

	// Last is the location of the most recently read rune, and Next of the
	// one after it.
	Last Location
	Next Location

	cur io.Reader
	rr  io.RuneReader
}

// ReadRune reads one rune, returning io.EOF only after every queued stream
// has been exhausted.
func (in *Input) ReadRune() (rune, int, error) {
	if in.rr == nil && !in.nextIn() {
		return 0, 0, io.EOF
	}

	r, n, err := in.rr.ReadRune()
	if err == io.EOF && n == 0 {
		if in.nextIn() {
			return 0, 0, nil
		}
		return 0, 0, io.EOF
	} else if err != nil {
		return 0, n, err
	}

	in.Last = in.Next
	if r == '\n' {
		in.Next.Line++
		in.Next.Column = 1
	} else {
		in.Next.Column++
	}
	return r, n, nil
}

// Close closes the current stream and any still queued, returning the first
// close error.
func (in *Input) Close() (err error) {
	err = in.closeCur()
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) closeCur() (err error) {
	if cl, ok := in.cur.(io.Closer); ok {
		err = cl.Close()
	}
	in.cur, in.rr = nil, nil
	return err
}

func (in *Input) nextIn() bool {
	in.closeCur()
	if len(in.Queue) == 0 {
		return false
	}
	in.cur = in.Queue[0]
	in.Queue = in.Queue[1:]
	in.rr = runeio.NewReader(in.cur)
	in.Next = Location{Name: runeio.NameOf(in.cur), Line: 1, Column: 1}
	return true
}
