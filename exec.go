package main

import (
	"context"
	"fmt"
)

// interpret runs a structured program one command at a time. A command is
// everything up to and including a top level end marker, whose execution
// prints the "ok" acknowledgment. An error aborts the rest of its command,
// and is reported in place of "ok"; execution then carries on with the next
// command, keeping whatever state the failed command left behind. Fatal
// errors, and context errors, end the run.
func (vm *VM) interpret(ctx context.Context, prog []Node) error {
	for len(prog) > 0 {
		cmd := prog
		prog = nil
		for i, node := range cmd {
			if node.Kind == endNode {
				cmd, prog = cmd[:i+1], cmd[i+1:]
				break
			}
		}

		err := vm.execute(ctx, cmd)
		if err == nil {
			continue
		}
		vm.logf("!", "error: %v", err)
		if ferr := vm.out.reportError(err); ferr != nil {
			return ferr
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if isFatal(err) {
			return err
		}
		vm.selected = false
	}
	return nil
}

func (vm *VM) execute(ctx context.Context, nodes []Node) error {
	for i := range nodes {
		if err := vm.step(ctx, &nodes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) step(ctx context.Context, node *Node) error {
	if vm.logfn != nil {
		vm.logf(">", "%v -- s:%v", node, vm.stack)
	}

	switch node.Kind {
	case literalNode:
		vm.push(node.Value)

	case printNode:
		return vm.print(node.Value.Text)

	case builtinNode:
		return vm.builtin(node.Name)

	case userWordNode:
		return vm.call(ctx, node.Name)

	case conditionalNode:
		if vm.truth() {
			return vm.execute(ctx, node.Then)
		}
		return vm.execute(ctx, node.Else)

	case beginUntilNode:
		// An empty stack at the UNTIL check reads as false, so the loop
		// keeps going.
		for {
			if err := ctx.Err(); err != nil {
				return fatalError{err}
			}
			if err := vm.execute(ctx, node.Body); err != nil {
				return err
			}
			if vm.truth() {
				return nil
			}
		}

	case doLoopNode:
		return vm.doLoop(ctx, node.Body)

	case variableNode:
		addr, declared := vm.heap.address(node.Name)
		if !declared {
			return unknownVariableError(node.Name)
		}
		vm.operating, vm.selected = addr, true

	case storeNode:
		if !vm.selected {
			return fatalError{errNoVariable}
		}
		val, err := vm.pop()
		if err != nil {
			return err
		}
		vm.selected = false
		return vm.heap.stor(vm.operating, val)

	case fetchNode:
		if !vm.selected {
			return fatalError{errNoVariable}
		}
		val, err := vm.heap.load(vm.operating)
		if err != nil {
			return err
		}
		vm.selected = false
		vm.push(val)

	case loopIndexNode:
		i := len(vm.loops) - 1
		if i < 0 {
			return fatalError{errNoLoop}
		}
		vm.push(Int(vm.loops[i].index))

	case endNode:
		return vm.out.acknowledge()

	default:
		panic(fmt.Sprintf("invalid %v node %v", node.Kind, node))
	}

	return nil
}

// call runs a user word body on the Go stack; recursion depth is bounded
// only by maxDepth, when set.
func (vm *VM) call(ctx context.Context, name string) error {
	body, defined := vm.words[name]
	if !defined {
		return unknownUserWordError(name)
	}
	if err := ctx.Err(); err != nil {
		return fatalError{err}
	}
	if vm.maxDepth > 0 && vm.depth >= vm.maxDepth {
		return errRetOverflow
	}
	vm.depth++
	defer func() { vm.depth-- }()
	return vm.execute(ctx, body)
}

// doLoop pops the start index, then the limit, as in "limit start DO".
// The body runs at least once, and repeats until the incremented index
// equals the limit; a limit at or below the start never terminates on its
// own.
func (vm *VM) doLoop(ctx context.Context, body []Node) error {
	limit, start, err := vm.pop2Ints()
	if err != nil {
		return err
	}

	vm.loops = append(vm.loops, loopFrame{lower: start, upper: limit, index: start})
	fi := len(vm.loops) - 1
	defer func() { vm.loops = vm.loops[:fi] }()

	for {
		if err := ctx.Err(); err != nil {
			return fatalError{err}
		}
		if err := vm.execute(ctx, body); err != nil {
			return err
		}
		vm.loops[fi].index++
		if vm.loops[fi].index == vm.loops[fi].upper {
			return nil
		}
	}
}
