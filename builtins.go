package main

import (
	"strings"

	"github.com/jcorbin/treeforth/internal/runeio"
)

//// Integer Operations

// + pops n2 then n1, and pushes n1 + n2.
func (vm *VM) add() error { return vm.binary(func(a, b int) int { return a + b }) }

// - pushes n1 - n2.
func (vm *VM) sub() error { return vm.binary(func(a, b int) int { return a - b }) }

// * pushes n1 * n2.
func (vm *VM) mul() error { return vm.binary(func(a, b int) int { return a * b }) }

// / pushes n1 / n2, truncated toward zero.
func (vm *VM) div() error {
	n1, n2, err := vm.pop2Ints()
	if err == nil && n2 == 0 {
		vm.push(Int(n1), Int(n2))
		err = errDivideByZero
	}
	if err == nil {
		vm.push(Int(n1 / n2))
	}
	return err
}

// MOD pushes the remainder of n1 / n2.
func (vm *VM) mod() error {
	n1, n2, err := vm.pop2Ints()
	if err == nil && n2 == 0 {
		vm.push(Int(n1), Int(n2))
		err = errDivideByZero
	}
	if err == nil {
		vm.push(Int(n1 % n2))
	}
	return err
}

//// Comparison and Logic; flags are -1 for true and 0 for false

func (vm *VM) equal() error {
	a, b, err := vm.pop2()
	if err == nil {
		vm.push(boolValue(a == b))
	}
	return err
}

func (vm *VM) greater() error { return vm.compare(func(a, b int) bool { return a > b }) }
func (vm *VM) less() error    { return vm.compare(func(a, b int) bool { return a < b }) }
func (vm *VM) and() error     { return vm.binary(func(a, b int) int { return a & b }) }
func (vm *VM) or() error      { return vm.binary(func(a, b int) int { return a | b }) }
func (vm *VM) xor() error     { return vm.binary(func(a, b int) int { return a ^ b }) }

func (vm *VM) invert() error {
	n, err := vm.popInt()
	if err == nil {
		vm.push(Int(^n))
	}
	return err
}

//// Stack Operations

func (vm *VM) dup() error {
	if err := vm.need(1); err != nil {
		return err
	}
	vm.push(vm.stack[len(vm.stack)-1])
	return nil
}

func (vm *VM) swap() error {
	a, b, err := vm.pop2()
	if err == nil {
		vm.push(b, a)
	}
	return err
}

func (vm *VM) drop() error {
	_, err := vm.pop()
	return err
}

func (vm *VM) over() error {
	if err := vm.need(2); err != nil {
		return err
	}
	vm.push(vm.stack[len(vm.stack)-2])
	return nil
}

// ROT brings the third value from the top up to the top: ( a b c -- b c a )
func (vm *VM) rot() error {
	if err := vm.need(3); err != nil {
		return err
	}
	s := vm.stack[len(vm.stack)-3:]
	s[0], s[1], s[2] = s[1], s[2], s[0]
	return nil
}

//// Output Operations

// . pops and prints a value followed by a space.
func (vm *VM) dot() error {
	val, err := vm.pop()
	if err == errStackUnderflow {
		return errEmptyStack
	} else if err != nil {
		return err
	}
	return vm.print(val.String() + " ")
}

// DUMP prints the whole stack, bottom first, like "[1, 2, 3]" and a newline.
func (vm *VM) dump() error {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, val := range vm.stack {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(val.String())
	}
	sb.WriteString("]\n")
	return vm.print(sb.String())
}

// EMIT pops a code point and prints it as one character.
func (vm *VM) emit() error {
	n, err := vm.popInt()
	if err == nil {
		_, err = runeio.WriteRune(&vm.out, int64(n))
	}
	return err
}

// CR prints a newline.
func (vm *VM) cr() error { return vm.print("\n") }

type builtinCode uint8

const (
	builtinAdd builtinCode = iota
	builtinSub
	builtinMul
	builtinDiv
	builtinMod
	builtinDot
	builtinDup
	builtinSwap
	builtinDrop
	builtinDump
	builtinOver
	builtinRot
	builtinEmit
	builtinCR
	builtinEqual
	builtinGreater
	builtinLess
	builtinAnd
	builtinOr
	builtinXor
	builtinInvert

	builtinMax
)

var builtinTable [builtinMax]func(vm *VM) error

var builtinNames = [builtinMax]string{
	"+",
	"-",
	"*",
	"/",
	"MOD",
	".",
	"DUP",
	"SWAP",
	"DROP",
	"DUMP",
	"OVER",
	"ROT",
	"EMIT",
	"CR",
	"=",
	">",
	"<",
	"AND",
	"OR",
	"XOR",
	"INVERT",
}

var builtinCodes = make(map[string]builtinCode, builtinMax)

func init() {
	builtinTable = [...]func(vm *VM) error{
		(*VM).add,
		(*VM).sub,
		(*VM).mul,
		(*VM).div,
		(*VM).mod,
		(*VM).dot,
		(*VM).dup,
		(*VM).swap,
		(*VM).drop,
		(*VM).dump,
		(*VM).over,
		(*VM).rot,
		(*VM).emit,
		(*VM).cr,
		(*VM).equal,
		(*VM).greater,
		(*VM).less,
		(*VM).and,
		(*VM).or,
		(*VM).xor,
		(*VM).invert,
	}
	for code, name := range builtinNames {
		builtinCodes[name] = builtinCode(code)
	}
}

// lookupBuiltin resolves a builtin by its case insensitive name.
func lookupBuiltin(name string) (builtinCode, bool) {
	code, ok := builtinCodes[strings.ToUpper(name)]
	return code, ok
}

func (vm *VM) builtin(name string) error {
	code, ok := lookupBuiltin(name)
	if !ok {
		return unknownWordError(name)
	}
	return builtinTable[code](vm)
}

func (code builtinCode) String() string {
	if code < builtinMax {
		return builtinNames[code]
	}
	return "<invalid builtin>"
}
