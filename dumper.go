package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
)

// vmDumper renders VM state for debugging: the operand stack, any active
// loop frames, the heap, and the user word dictionary.
type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	dump.dumpStack()
	dump.dumpLoops()
	dump.dumpHeap()
	dump.dumpWords()
}

func (dump vmDumper) dumpStack() {
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
	if dump.vm.selected {
		name, _ := dump.vm.heap.name(dump.vm.operating)
		fmt.Fprintf(dump.out, "  operating: @%v %v\n", dump.vm.operating, name)
	}
}

func (dump vmDumper) dumpLoops() {
	for i := len(dump.vm.loops) - 1; i >= 0; i-- {
		frame := dump.vm.loops[i]
		fmt.Fprintf(dump.out, "  loop[%v]: I=%v in [%v, %v)\n", i, frame.index, frame.lower, frame.upper)
	}
}

func (dump vmDumper) dumpHeap() {
	if dump.vm.heap.names.len() == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Heap @%v\n", dump.vm.heap.base())
	width := dump.addrWidth
	if width == 0 {
		last := dump.vm.heap.base() + uint(dump.vm.heap.names.len()) - 1
		width = len(strconv.FormatUint(uint64(last), 10))
	}
	dump.vm.heap.each(func(name string, addr uint, val Value) {
		fmt.Fprintf(dump.out, "  @%*v %v %v\n", width, addr, name, formatValue(val))
	})
}

func (dump vmDumper) dumpWords() {
	if len(dump.vm.words) == 0 {
		return
	}
	names := make([]string, 0, len(dump.vm.words))
	for name := range dump.vm.words {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(dump.out, "# Dictionary\n")
	for _, name := range names {
		if body := dump.vm.words[name]; len(body) > 0 {
			fmt.Fprintf(dump.out, "  : %v %v ;\n", name, formatNodes(body))
		} else {
			fmt.Fprintf(dump.out, "  : %v ;\n", name)
		}
	}
}

// formatValue quotes text values, so that they may be told apart from
// integers.
func formatValue(val Value) string {
	if val.IsText {
		return strconv.Quote(val.Text)
	}
	return strconv.Itoa(val.Int)
}
