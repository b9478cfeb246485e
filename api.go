package main

import (
	"context"
	"io"
	"strings"

	"github.com/jcorbin/treeforth/internal/panicerr"
)

// New creates a VM, ready to Run once input has been given by WithInput.
func New(opts ...VMOption) *VM {
	var vm VM
	vm.words = make(map[string][]Node)
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run parses all queued input, then executes it one command at a time,
// writing program output, "ok" acknowledgments, and "error: ..." reports to
// the VM's output. Parse errors, fatal execution errors, and context errors
// are returned; ordinary execution errors are only reported.
//
// State persists between runs: later input may use words and variables
// defined by earlier input.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		return vm.run(ctx)
	})
	switch {
	case panicerr.IsPanic(err):
		vm.logf("!", "%v\npanic stack: %s", err, panicerr.PanicStack(err))
	case panicerr.IsExit(err):
		vm.logf("!", "%v", err)
	}
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

// Interpret queues src as input, and then runs it.
func (vm *VM) Interpret(ctx context.Context, src string) error {
	withInput(NamedReader("<interpret>", strings.NewReader(src))).apply(vm)
	return vm.Run(ctx)
}

func (vm *VM) run(ctx context.Context) error {
	if img := vm.image; img != nil {
		vm.image = nil
		if err := vm.restore(img); err != nil {
			return err
		}
	}

	prog, err := vm.parse()
	if err != nil {
		vm.logf("!", "parse error: %v", err)
		if rerr := vm.out.reportError(err); rerr != nil {
			return rerr
		}
		return err
	}

	defer vm.withLogPrefix("\t")()
	return vm.interpret(ctx, prog)
}

// parse tokenizes, classifies, and structures all queued input.
func (vm *VM) parse() ([]Node, error) {
	tokens, err := vm.tokenize()
	if err != nil {
		return nil, err
	}
	nodes, err := vm.classify(tokens)
	if err != nil {
		return nil, err
	}
	return vm.structure(nodes)
}

// Stack returns a copy of the operand stack, bottom first.
func (vm *VM) Stack() []Value {
	return append([]Value(nil), vm.stack...)
}

// NamedReader attaches a name to r, used to identify it in input locations.
func NamedReader(name string, r io.Reader) io.Reader {
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func WithInput(r io.Reader) VMOption  { return withInput(r) }
func WithOutput(w io.Writer) VMOption { return withOutput(w) }
func WithTee(w io.Writer) VMOption    { return withTee(w) }
func WithHeapBase(base uint) VMOption { return withHeapBase(base) }
func WithHeapLimit(n uint) VMOption   { return withHeapLimit(n) }
func WithMaxDepth(depth int) VMOption { return withMaxDepth(depth) }
func WithImage(img *Image) VMOption   { return imageOption{img} }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
