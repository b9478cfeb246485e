// Package mem provides dense cell memory, addressed by uint counting up from
// a base address.
package mem

import "fmt"

// Cells holds a contiguous run of cell values, the first at Base.
// Addresses that have never been stored read as the zero V.
type Cells[V any] struct {
	// Base is the address of the first cell.
	Base uint

	// Limit bounds how many cells may be used past Base; zero means no bound.
	Limit uint

	cells []V
}

// LimitError indicates that a memory operation, like load or store, fell
// outside of usable memory.
type LimitError struct {
	Addr uint
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", lim.Op, lim.Addr)
}

// Len returns how many cells are held, counting up from Base through the
// highest address stored so far.
func (m *Cells[V]) Len() int { return len(m.cells) }

// Load returns the value at addr.
// Returns an error if addr exceeds any Limit.
func (m *Cells[V]) Load(addr uint) (val V, err error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return val, err
	}
	if i := addr - m.Base; addr >= m.Base && i < uint(len(m.cells)) {
		val = m.cells[i]
	}
	return val, nil
}

// Stor stores values starting at addr, growing memory with zero cells to
// reach it. Returns an error if addr is below Base or the store would pass
// Limit; no partial store is done.
func (m *Cells[V]) Stor(addr uint, values ...V) error {
	if len(values) == 0 {
		return nil
	}
	if addr < m.Base {
		return LimitError{addr, "stor"}
	}
	end := addr + uint(len(values))
	if err := m.checkLimit(end-1, "stor"); err != nil {
		return err
	}
	if need := int(end - m.Base); need > len(m.cells) {
		if need <= cap(m.cells) {
			m.cells = m.cells[:need]
		} else {
			cells := make([]V, need, 2*need)
			copy(cells, m.cells)
			m.cells = cells
		}
	}
	copy(m.cells[addr-m.Base:], values)
	return nil
}

func (m *Cells[V]) checkLimit(addr uint, op string) error {
	if m.Limit != 0 && addr >= m.Base && addr-m.Base >= m.Limit {
		return LimitError{addr, op}
	}
	return nil
}
