package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

const imageVersion = 1

// Image is a snapshot of a VM's durable state: its operand stack, heap
// cells, and user word dictionary. Images are encoded as canonical CBOR, so
// equal states encode to equal bytes.
type Image struct {
	Version  int     `cbor:"version"`
	HeapBase uint    `cbor:"heap_base"`
	Stack    []Value `cbor:"stack,omitempty"`
	Cells    []Cell  `cbor:"cells,omitempty"`
	Words    []Word  `cbor:"words,omitempty"`
}

// Cell is one named heap variable.
type Cell struct {
	Name  string `cbor:"name"`
	Addr  uint   `cbor:"addr"`
	Value Value  `cbor:"value"`
}

// Word is one user word definition.
type Word struct {
	Name string `cbor:"name"`
	Body []Node `cbor:"body,omitempty"`
}

// imageWire has Image's fields without its methods, so that encoding it
// does not loop back through MarshalBinary.
type imageWire Image

var imageEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: failed to create CBOR enc mode: %v", err))
	}
	imageEncMode = em
}

var errImageCell = errors.New("image cell out of order")

type imageVersionError int

func (v imageVersionError) Error() string {
	return fmt.Sprintf("unsupported image version %d", int(v))
}

// Snapshot captures the VM's current state; words are sorted by name.
func (vm *VM) Snapshot() *Image {
	img := &Image{
		Version:  imageVersion,
		HeapBase: vm.heap.base(),
		Stack:    vm.Stack(),
	}
	vm.heap.each(func(name string, addr uint, val Value) {
		img.Cells = append(img.Cells, Cell{name, addr, val})
	})
	for name, body := range vm.words {
		img.Words = append(img.Words, Word{name, body})
	}
	sort.Slice(img.Words, func(i, j int) bool {
		return img.Words[i].Name < img.Words[j].Name
	})
	return img
}

// MarshalBinary encodes the image as canonical CBOR.
func (img *Image) MarshalBinary() ([]byte, error) {
	return imageEncMode.Marshal((*imageWire)(img))
}

// WriteTo writes the encoded image to w.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	data, err := img.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadImage decodes an image written by Image.WriteTo.
func ReadImage(r io.Reader) (*Image, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var wire imageWire
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("image: unmarshal: %w", err)
	}
	img := Image(wire)
	if img.Version != imageVersion {
		return nil, imageVersionError(img.Version)
	}
	return &img, nil
}

// restore replaces the VM's heap, dictionary, and stack with the image's.
// Cells must be listed in address order, as Snapshot does, since addresses
// are reassigned by declaring each name in turn.
func (vm *VM) restore(img *Image) error {
	h := newHeap(img.HeapBase, vm.heap.cells.Limit)
	for _, cell := range img.Cells {
		addr, err := h.declare(cell.Name)
		if err != nil {
			return err
		}
		if addr != cell.Addr {
			return fmt.Errorf("%w: %v @%v restored @%v", errImageCell, cell.Name, cell.Addr, addr)
		}
		if err := h.stor(addr, cell.Value); err != nil {
			return err
		}
	}

	words := make(map[string][]Node, len(img.Words))
	for _, word := range img.Words {
		words[word.Name] = word.Body
	}

	vm.heap = h
	vm.words = words
	vm.stack = append(vm.stack[:0], img.Stack...)
	vm.logf("#", "restored image: %v cells %v words %v values", len(img.Cells), len(img.Words), len(img.Stack))
	return nil
}
