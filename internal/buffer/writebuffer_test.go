package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NeuroJSON/pybj/bjerr"
)

func TestWriteBufferInMemory(t *testing.T) {
	w := NewWriteBuffer()
	_, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.WriteByte(' '))
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)

	out, err := w.Finalize()
	require.NoError(t, err)
	require.Equal(t, "hello world", string(out))
}

func TestWriteBufferSinkFlushesPastThreshold(t *testing.T) {
	var sink bytes.Buffer
	w := NewSinkWriteBuffer(&sink, 4)

	_, err := w.Write([]byte("ab"))
	require.NoError(t, err)
	require.Equal(t, 0, sink.Len(), "below threshold, nothing flushed yet")

	_, err = w.Write([]byte("cde"))
	require.NoError(t, err)
	require.Equal(t, "abcde", sink.String())

	out, err := w.Finalize()
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestWriteBufferSinkZeroThresholdFlushesImmediately(t *testing.T) {
	var sink bytes.Buffer
	w := NewSinkWriteBuffer(&sink, 0)

	_, err := w.Write([]byte("x"))
	require.NoError(t, err)
	require.Equal(t, "x", sink.String())
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, fmt.Errorf("disk full") }

func TestWriteBufferSinkErrorWrapsAsIOError(t *testing.T) {
	w := NewSinkWriteBuffer(failingSink{}, 0)

	_, err := w.Write([]byte("x"))
	require.Error(t, err)

	var ioErr *bjerr.IOError
	require.True(t, errors.As(err, &ioErr))
}

func TestWriteBufferFinalizeFlushesRemainder(t *testing.T) {
	var sink bytes.Buffer
	w := NewSinkWriteBuffer(&sink, 1024)

	_, err := w.Write([]byte("tail"))
	require.NoError(t, err)
	require.Equal(t, 0, sink.Len())

	_, err = w.Finalize()
	require.NoError(t, err)
	require.Equal(t, "tail", sink.String())
}
