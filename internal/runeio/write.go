package runeio

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// InvalidRuneError reports an integer that is not a valid unicode code point.
type InvalidRuneError int64

func (r InvalidRuneError) Error() string {
	return fmt.Sprintf("invalid character code %d", int64(r))
}

// WriteRune writes the utf8 encoding of the code point c to w, using the
// cheapest writing interface that w implements. Returns InvalidRuneError for
// negative, surrogate, or out of range code points.
func WriteRune(w io.Writer, c int64) (n int, err error) {
	type runeWriter interface {
		WriteRune(r rune) (n int, err error)
	}
	if c < 0 || c > utf8.MaxRune || !utf8.ValidRune(rune(c)) {
		return 0, InvalidRuneError(c)
	}
	r := rune(c)
	if r < utf8.RuneSelf {
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	}
	if rw, ok := w.(runeWriter); ok {
		return rw.WriteRune(r)
	}
	if sw, ok := w.(io.StringWriter); ok {
		return sw.WriteString(string(r))
	}
	return w.Write([]byte(string(r)))
}
