package flushio

import (
	"bufio"
	"bytes"
	"errors"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainWriter struct{ buf bytes.Buffer }

func (pw *plainWriter) Write(p []byte) (int, error) { return pw.buf.Write(p) }

type failWriter struct{ err error }

func (fw failWriter) Write(p []byte) (int, error) { return 0, fw.err }
func (fw failWriter) Flush() error                { return fw.err }

func TestNewWriteFlusher(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, nopFlusher{&buf}, NewWriteFlusher(&buf))

	var sb strings.Builder
	assert.Equal(t, nopFlusher{&sb}, NewWriteFlusher(&sb))

	assert.Equal(t, nopFlusher{ioutil.Discard}, NewWriteFlusher(ioutil.Discard))

	bw := bufio.NewWriter(&buf)
	assert.Same(t, bw, NewWriteFlusher(bw))

	var pw plainWriter
	wf := NewWriteFlusher(&pw)
	_, err := wf.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "", pw.buf.String(), "expected buffering")
	require.NoError(t, wf.Flush())
	assert.Equal(t, "hello", pw.buf.String())
}

func TestWriteFlushers(t *testing.T) {
	assert.Nil(t, WriteFlushers())
	assert.Nil(t, WriteFlushers(nil, nil))

	var a, b bytes.Buffer
	one := NewWriteFlusher(&a)
	assert.Equal(t, one, WriteFlushers(nil, one))

	two := NewWriteFlusher(&b)
	both := WriteFlushers(one, two)
	assert.Len(t, WriteFlushers(both, nil, both), 4, "expected flattening")

	_, err := both.Write([]byte("hi"))
	require.NoError(t, err)
	require.NoError(t, both.Flush())
	assert.Equal(t, "hi", a.String())
	assert.Equal(t, "hi", b.String())

	boom := errors.New("boom")
	broken := WriteFlushers(failWriter{boom}, two)
	_, err = broken.Write([]byte("more"))
	assert.Equal(t, boom, err)
	assert.Equal(t, "hi", b.String(), "write stops at first failure")
	assert.Equal(t, boom, broken.Flush())
}
