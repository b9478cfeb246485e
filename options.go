package main

import (
	"io"
	"io/ioutil"

	"github.com/jcorbin/treeforth/internal/flushio"
)

type VMOption interface{ apply(vm *VM) }

// VMOptions combines any number of options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	return res
}

var defaultOptions = VMOptions(
	withOutput(ioutil.Discard),
	withHeapBase(defaultHeapBase),
)

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type heapBaseOption uint
type heapLimitOption uint
type maxDepthOption int
type imageOption struct{ *Image }

func withInput(r io.Reader) inputOption     { return inputOption{r} }
func withOutput(w io.Writer) outputOption   { return outputOption{w} }
func withTee(w io.Writer) teeOption         { return teeOption{w} }
func withHeapBase(base uint) heapBaseOption { return heapBaseOption(base) }
func withHeapLimit(n uint) heapLimitOption  { return heapLimitOption(n) }
func withMaxDepth(depth int) maxDepthOption { return maxDepthOption(depth) }

// Inputs queue up, to be read in order by the next Run.
func (i inputOption) apply(vm *VM) {
	vm.in.Queue = append(vm.in.Queue, i.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out.WriteFlusher != nil {
		vm.out.Flush()
	}
	vm.out.WriteFlusher = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out.WriteFlusher = flushio.WriteFlushers(vm.out.WriteFlusher, flushio.NewWriteFlusher(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

// The heap base may only change before any variable has been declared.
func (base heapBaseOption) apply(vm *VM) {
	if vm.heap.names.len() == 0 {
		vm.heap.cells.Base = uint(base)
	}
}

func (n heapLimitOption) apply(vm *VM) { vm.heap.cells.Limit = uint(n) }

func (depth maxDepthOption) apply(vm *VM) { vm.maxDepth = int(depth) }

func (img imageOption) apply(vm *VM) { vm.image = img.Image }
