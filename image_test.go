package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const imageTestSource = `VARIABLE COUNT
VARIABLE NAME
: INC COUNT @ 1 + COUNT ! ;
: TWICE INC INC ;
TWICE 7
`

func imageTestVM(t *testing.T) *VM {
	vm := New()
	require.NoError(t, vm.Interpret(context.Background(), imageTestSource))
	return vm
}

func TestImage_snapshot(t *testing.T) {
	img := imageTestVM(t).Snapshot()
	assert.Equal(t, imageVersion, img.Version)
	assert.Equal(t, uint(defaultHeapBase), img.HeapBase)
	assert.Equal(t, []Value{Int(7)}, img.Stack)
	assert.Equal(t, []Cell{
		{Name: "COUNT", Addr: 1000, Value: Int(2)},
		{Name: "NAME", Addr: 1001},
	}, img.Cells)
	if assert.Len(t, img.Words, 2) {
		assert.Equal(t, "INC", img.Words[0].Name)
		assert.Equal(t, "COUNT @ 1 + COUNT !", formatNodes(img.Words[0].Body))
		assert.Equal(t, "TWICE", img.Words[1].Name)
		assert.Equal(t, "INC INC", formatNodes(img.Words[1].Body))
	}
}

func TestImage_roundTrip(t *testing.T) {
	var buf bytes.Buffer
	_, err := imageTestVM(t).Snapshot().WriteTo(&buf)
	require.NoError(t, err)

	img, err := ReadImage(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	vmTestCases{
		vmTest("restored session").
			withOptions(WithImage(img)).
			withInput("TWICE COUNT @ .").
			apply(
				expectVMOutput("4 ok\n"),
				expectVMStack(7),
				expectVMVariable("COUNT", 1000, Int(4)),
				expectVMWord("TWICE", "INC INC"),
			),

		vmTest("new variables follow restored ones").
			withOptions(WithImage(img)).
			withInput("VARIABLE MORE 3 MORE !").
			apply(
				expectVMVariable("MORE", 1002, Int(3)),
				expectVMVariable("NAME", 1001, Int(0)),
			),

		vmTest("restore replaces prior state").
			withStack(1, 2, 3).
			withVariable("OLD", Int(9)).
			withOptions(WithImage(img)).
			withInput("OLD").
			expectError(unknownTokenError("OLD")).
			expectStack(7),
	}.run(t)
}

func TestImage_writeTo(t *testing.T) {
	img := New().Snapshot()
	var buf bytes.Buffer
	n, err := img.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	// the encoding is a plain CBOR map, not a byte string wrapping one
	var fields map[string]interface{}
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &fields))
	assert.Equal(t, uint64(imageVersion), fields["version"])
	assert.Equal(t, uint64(defaultHeapBase), fields["heap_base"])

	back, err := ReadImage(&buf)
	require.NoError(t, err)
	assert.Equal(t, img, back)
}

func TestImage_canonical(t *testing.T) {
	a, err := imageTestVM(t).Snapshot().MarshalBinary()
	require.NoError(t, err)
	b, err := imageTestVM(t).Snapshot().MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestImage_textValues(t *testing.T) {
	vm := New(WithOutput(&strings.Builder{}))
	vm.push(Text("hello"), Int(-1))
	data, err := vm.Snapshot().MarshalBinary()
	require.NoError(t, err)

	img, err := ReadImage(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []Value{Text("hello"), Int(-1)}, img.Stack)
}

func TestImage_errors(t *testing.T) {
	t.Run("version", func(t *testing.T) {
		data, err := (&Image{Version: 99}).MarshalBinary()
		require.NoError(t, err)
		_, err = ReadImage(bytes.NewReader(data))
		assert.Equal(t, imageVersionError(99), err)
		assert.EqualError(t, err, "unsupported image version 99")
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ReadImage(strings.NewReader("not cbor"))
		assert.Error(t, err)
	})

	t.Run("cell order", func(t *testing.T) {
		img := &Image{
			Version:  imageVersion,
			HeapBase: defaultHeapBase,
			Cells: []Cell{
				{Name: "B", Addr: 1001},
				{Name: "A", Addr: 1000},
			},
		}
		vm := New(WithImage(img))
		err := vm.Interpret(context.Background(), "")
		assert.True(t, errors.Is(err, errImageCell), "expected image cell error, got: %v", err)
	})
}
