package main

// The operand stack is a plain LIFO of Values. Every pop checks its arity
// up front, so an underflowing operator leaves the stack untouched.

func (vm *VM) push(vals ...Value) {
	vm.stack = append(vm.stack, vals...)
}

func (vm *VM) need(n int) error {
	if len(vm.stack) < n {
		return errStackUnderflow
	}
	return nil
}

func (vm *VM) pop() (val Value, err error) {
	if err := vm.need(1); err != nil {
		return val, err
	}
	i := len(vm.stack) - 1
	val, vm.stack = vm.stack[i], vm.stack[:i]
	return val, nil
}

// pop2 returns the second and first values from the top, in push order.
func (vm *VM) pop2() (a, b Value, err error) {
	if err := vm.need(2); err != nil {
		return a, b, err
	}
	i := len(vm.stack) - 2
	a, b = vm.stack[i], vm.stack[i+1]
	vm.stack = vm.stack[:i]
	return a, b, nil
}

func (vm *VM) popInt() (int, error) {
	if err := vm.need(1); err != nil {
		return 0, err
	}
	n, err := vm.stack[len(vm.stack)-1].integer()
	if err != nil {
		return 0, err
	}
	vm.stack = vm.stack[:len(vm.stack)-1]
	return n, nil
}

// pop2Ints returns n1 and n2 for a "( n1 n2 -- )" stack effect.
func (vm *VM) pop2Ints() (n1, n2 int, err error) {
	if err := vm.need(2); err != nil {
		return 0, 0, err
	}
	i := len(vm.stack) - 2
	if n1, err = vm.stack[i].integer(); err != nil {
		return 0, 0, err
	}
	if n2, err = vm.stack[i+1].integer(); err != nil {
		return 0, 0, err
	}
	vm.stack = vm.stack[:i]
	return n1, n2, nil
}

// truth pops a flag for IF and UNTIL; an empty stack reads as false.
func (vm *VM) truth() bool {
	val, err := vm.pop()
	return err == nil && val.truth()
}

func (vm *VM) binary(op func(n1, n2 int) int) error {
	n1, n2, err := vm.pop2Ints()
	if err == nil {
		vm.push(Int(op(n1, n2)))
	}
	return err
}

func (vm *VM) compare(op func(n1, n2 int) bool) error {
	n1, n2, err := vm.pop2Ints()
	if err == nil {
		vm.push(boolValue(op(n1, n2)))
	}
	return err
}
