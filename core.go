package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/treeforth/internal/fileinput"
)

// VM is a tree-walking Forth interpreter. A VM exclusively owns all of its
// state: the operand stack, the heap of named cells, the user word
// dictionary, and the DO LOOP frames. None of it is safe to share between
// goroutines.
type VM struct {
	logging
	in      fileinput.Input
	out     printer
	closers []io.Closer

	// The operand stack holds integer and text Values.
	stack []Value

	// User words are bodies of already structured nodes, keyed by their
	// upper cased name. A word is reserved with an empty body while its own
	// definition is being parsed, so that it may call itself.
	words map[string][]Node

	heap heap

	// operating is the address of the variable selected for the next ! or @
	operating uint
	selected  bool

	loops []loopFrame

	depth    int
	maxDepth int

	image *Image
}

type loopFrame struct {
	lower, upper, index int
}

// Close flushes any buffered output, and closes any owned resources like
// input files or tee writers.
func (vm *VM) Close() (err error) {
	if ferr := vm.out.Flush(); ferr != nil {
		err = ferr
	}
	if cerr := vm.in.Close(); err == nil {
		err = cerr
	}
	for i := len(vm.closers) - 1; i >= 0; i-- {
		if cerr := vm.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	vm.closers = nil
	return err
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	if logfn == nil {
		return func() {}
	}
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
