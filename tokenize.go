package main

import (
	"io"
	"strings"
	"unicode"

	"github.com/jcorbin/treeforth/internal/fileinput"
)

// tokenize reads all queued input, splitting it into whitespace delimited
// words with an end of command marker after each line. A line holding only
// whitespace still counts, but empty lines at the very end of input produce
// no markers. Comments run from a word starting
// with "(" through a word ending with ")", and swallow any line ends in
// between.
func (vm *VM) tokenize() ([]rawToken, error) {
	var (
		tokens  []rawToken
		sb      strings.Builder
		at      fileinput.Location
		lineLen int
		blanks  int
		comment bool
	)

	emit := func(tok rawToken) {
		if !tok.EOC && strings.HasPrefix(tok.Text, "(") {
			comment = true
		}
		if !comment {
			vm.logf("<", "%v %v", tok.Loc, tok)
			tokens = append(tokens, tok)
		}
		if !tok.EOC && strings.HasSuffix(tok.Text, ")") {
			comment = false
		}
	}

	word := func() {
		if sb.Len() > 0 {
			emit(rawToken{Text: sb.String(), Loc: at})
			sb.Reset()
		}
	}

	for {
		r, _, err := vm.in.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if r == 0 {
			// fileinput yields a 0 rune between queued sources
			word()
			continue
		}

		if r == '\n' {
			word()
			if lineLen == 0 {
				blanks++
			} else {
				emit(rawToken{EOC: true, Loc: vm.in.Last})
			}
			lineLen = 0
			continue
		}

		if lineLen == 0 {
			for ; blanks > 0; blanks-- {
				emit(rawToken{EOC: true, Loc: vm.in.Last})
			}
		}
		lineLen++

		if unicode.IsSpace(r) {
			word()
			continue
		}
		if sb.Len() == 0 {
			at = vm.in.Last
		}
		sb.WriteRune(r)
	}

	word()
	if lineLen > 0 {
		emit(rawToken{EOC: true, Loc: vm.in.Next})
	}
	return tokens, nil
}
