package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/treeforth/internal/logio"
	"github.com/jcorbin/treeforth/internal/panicerr"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		t.Run(vmt.name, vmt.run)
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	opts    []interface{}
	ops     []func(vm *VM) error
	expect  []func(t *testing.T, vm *VM)
	timeout time.Duration

	wantErr    error
	wantErrMsg string

	exclusive   bool
	nextInputID int
	hasInput    bool
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withStack(values ...int) vmTestCase {
	return vmt.withValues(ints(values...)...)
}

func (vmt vmTestCase) withValues(values ...Value) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.push(values...)
	}))
	return vmt
}

func (vmt vmTestCase) withVariable(name string, val Value) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		addr, err := vm.heap.declare(name)
		if err == nil {
			err = vm.heap.stor(addr, val)
		}
		if err != nil {
			panic(err)
		}
	}))
	return vmt
}

func (vmt vmTestCase) withInput(input string) vmTestCase {
	vmt.hasInput = true
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		name := t.Name() + "/input"
		if id := vmt.nextInputID; id > 0 {
			name += "_" + strconv.Itoa(id+1)
		}
		vmt.nextInputID++
		return WithInput(NamedReader(name, strings.NewReader(input)))
	})
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

// do adds operations to run directly against the VM, before any input.
func (vmt vmTestCase) do(ops ...func(vm *VM) error) vmTestCase {
	vmt.ops = append(vmt.ops, ops...)
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectErrorMessage(mess string) vmTestCase {
	vmt.wantErrMsg = mess
	return vmt
}

func (vmt vmTestCase) expectStack(values ...int) vmTestCase {
	return vmt.expectValues(ints(values...)...)
}

func (vmt vmTestCase) expectValues(values ...Value) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if len(values) == 0 {
			assert.Empty(t, vm.stack, "expected empty stack")
		} else {
			assert.Equal(t, values, vm.Stack(), "expected stack values")
		}
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectWord(name string, source string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		body, defined := vm.words[name]
		if assert.True(t, defined, "expected word %v to be defined", name) {
			assert.Equal(t, source, formatNodes(body), "expected word %v body", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectVariable(name string, addr uint, val Value) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		at, declared := vm.heap.address(name)
		if assert.True(t, declared, "expected variable %v to be declared", name) {
			assert.Equal(t, addr, at, "expected variable %v address", name)
			got, err := vm.heap.load(at)
			assert.NoError(t, err, "unexpected variable %v load error", name)
			assert.Equal(t, val, got, "expected variable %v value", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectDump(dump string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	const defaultTimeout = time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var trace []string
	vm := vmt.buildVM(t, WithLogf(func(mess string, args ...interface{}) {
		trace = append(trace, fmt.Sprintf(mess, args...))
	}))

	defer func() {
		if t.Failed() {
			for _, line := range trace {
				t.Log(line)
			}
			vmt.dumpToTest(t, vm)
		}
	}()

	err := vmt.runVM(ctx, vm)
	switch {
	case vmt.wantErr != nil:
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	case vmt.wantErrMsg != "":
		assert.EqualError(t, err, vmt.wantErrMsg, "expected error message")
	default:
		assert.NoError(t, err, "unexpected VM run error")
	}

	for _, expect := range vmt.expect {
		expect(t, vm)
	}
}

func (vmt vmTestCase) runVM(ctx context.Context, vm *VM) (rerr error) {
	defer func() {
		if err := vm.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("vm.Close failed: %w", err)
		}
	}()

	if err := panicerr.Recover("vmTestCase.ops", func() error {
		for i, op := range vmt.ops {
			vm.logf(">", "do[%v]", i)
			if err := op(vm); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if vmt.hasInput || len(vmt.ops) == 0 {
		return vm.Run(ctx)
	}
	return nil
}

func (vmt vmTestCase) buildVM(t *testing.T, opts ...VMOption) *VM {
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opts = append(opts, impl(&vmt, t))
		case VMOption:
			opts = append(opts, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(opts...)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

func ints(values ...int) []Value {
	vals := make([]Value, len(values))
	for i, n := range values {
		vals[i] = Int(n)
	}
	return vals
}

func builtinOp(name string) func(vm *VM) error {
	return func(vm *VM) error { return vm.builtin(name) }
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
