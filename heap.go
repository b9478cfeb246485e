package main

import (
	"strconv"

	"github.com/jcorbin/treeforth/internal/mem"
)

const defaultHeapBase = 1000

// heap holds named variable cells. Each declared name gets the next synthetic
// address, counting up from the cells' base; addresses never change once
// assigned.
type heap struct {
	names symbols
	cells mem.Cells[Value]
}

func newHeap(base, limit uint) heap {
	return heap{cells: mem.Cells[Value]{Base: base, Limit: limit}}
}

func (h *heap) base() uint { return h.cells.Base }

// declare returns the address of the named cell, allocating a zero cell for
// names not seen before.
func (h *heap) declare(name string) (uint, error) {
	id, isNew := h.names.symbolicate(name)
	addr := h.base() + id - 1
	if isNew {
		if err := h.cells.Stor(addr, Value{}); err != nil {
			h.names.unsymbolicate()
			return 0, err
		}
	}
	return addr, nil
}

func (h *heap) address(name string) (uint, bool) {
	if id := h.names.symbol(name); id != 0 {
		return h.base() + id - 1, true
	}
	return 0, false
}

func (h *heap) name(addr uint) (string, bool) {
	if addr < h.base() {
		return "", false
	}
	name := h.names.string(addr - h.base() + 1)
	return name, name != ""
}

func (h *heap) load(addr uint) (Value, error) {
	if _, ok := h.name(addr); !ok {
		return Value{}, unknownVariableError(addrString(addr))
	}
	return h.cells.Load(addr)
}

func (h *heap) stor(addr uint, val Value) error {
	if _, ok := h.name(addr); !ok {
		return unknownVariableError(addrString(addr))
	}
	return h.cells.Stor(addr, val)
}

// each calls f for every cell in address order.
func (h *heap) each(f func(name string, addr uint, val Value)) {
	for i := 0; i < h.cells.Len(); i++ {
		addr := h.base() + uint(i)
		val, _ := h.cells.Load(addr)
		f(h.names.string(uint(i)+1), addr, val)
	}
}

func addrString(addr uint) string {
	return "@" + strconv.FormatUint(uint64(addr), 10)
}
