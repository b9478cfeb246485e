package main

import "strconv"

// Value is a single stack or heap cell: either an integer or a text string.
// Truth is encoded as -1 (all bits set) and falsehood as 0.
type Value struct {
	Int    int    `cbor:"int,omitempty"`
	Text   string `cbor:"text,omitempty"`
	IsText bool   `cbor:"is_text,omitempty"`
}

// Int returns an integer Value.
func Int(n int) Value { return Value{Int: n} }

// Text returns a string Value.
func Text(s string) Value { return Value{Text: s, IsText: true} }

func boolValue(b bool) Value {
	if b {
		return Int(-1)
	}
	return Int(0)
}

func (v Value) String() string {
	if v.IsText {
		return v.Text
	}
	return strconv.Itoa(v.Int)
}

func (v Value) truth() bool { return v.IsText || v.Int != 0 }

func (v Value) integer() (int, error) {
	if v.IsText {
		return 0, errTypeMismatch
	}
	return v.Int, nil
}

// parseLiteral accepts only tokens that exactly round trip through base 10
// formatting, so "+5" and "007" are not integers.
func parseLiteral(token string) (Value, bool) {
	n, err := strconv.ParseInt(token, 10, strconv.IntSize)
	if err != nil || strconv.FormatInt(n, 10) != token {
		return Value{}, false
	}
	return Int(int(n)), true
}
