// Package runeio provides rune level reading and writing helpers.
package runeio

import (
	"bufio"
	"fmt"
	"io"
)

// Reader is an io.Reader that can also read runes.
type Reader interface {
	io.Reader
	io.RuneReader
}

// NewReader returns r itself if it already reads runes, otherwise it wraps r
// in a bufio.Reader.
func NewReader(r io.Reader) Reader {
	if impl, ok := r.(Reader); ok {
		return impl
	}
	return bufio.NewReader(r)
}

// NameOf returns the Name() of a reader like an *os.File, or a placeholder
// naming its type.
func NameOf(r io.Reader) string {
	if nom, ok := r.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", r)
}
