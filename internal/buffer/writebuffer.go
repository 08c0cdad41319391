package buffer

import (
	"io"

	"github.com/NeuroJSON/pybj/bjerr"
)

// WriteBuffer is the encoder's front door for emitting wire bytes: an
// in-memory Buffer that optionally drains to a Sink once it grows past
// Threshold, so an encoder writing to an io.Writer (spec.md section 6's
// Dump, as opposed to Dumpb) never has to hold an entire large document
// in memory at once.
type WriteBuffer struct {
	buf       *Buffer
	sink      io.Writer
	threshold int
	pool      *Pool
}

// NewWriteBuffer returns a WriteBuffer that accumulates in memory and
// exposes the accumulated bytes via Finalize. Used for Dumpb.
func NewWriteBuffer() *WriteBuffer {
	return &WriteBuffer{buf: Get(), pool: defaultPool}
}

// NewSinkWriteBuffer returns a WriteBuffer that flushes to sink whenever
// its in-memory buffer grows past threshold bytes. Used for Dump. A
// threshold of 0 disables buffering and flushes on every Write.
func NewSinkWriteBuffer(sink io.Writer, threshold int) *WriteBuffer {
	return &WriteBuffer{buf: Get(), sink: sink, threshold: threshold, pool: defaultPool}
}

// Write appends p to the buffer, flushing to the configured Sink if the
// buffer has grown past its threshold.
func (w *WriteBuffer) Write(p []byte) (int, error) {
	n, _ := w.buf.Write(p)
	if err := w.maybeFlush(); err != nil {
		return n, err
	}

	return n, nil
}

// WriteByte appends a single byte, flushing if necessary.
func (w *WriteBuffer) WriteByte(c byte) error {
	_ = w.buf.WriteByte(c)

	return w.maybeFlush()
}

func (w *WriteBuffer) maybeFlush() error {
	if w.sink == nil {
		return nil
	}
	if w.threshold > 0 && w.buf.Len() < w.threshold {
		return nil
	}

	return w.flush()
}

func (w *WriteBuffer) flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	if _, err := w.sink.Write(w.buf.Bytes()); err != nil {
		return bjerr.NewIOError(err)
	}
	w.buf.Reset()

	return nil
}

// Len returns the number of bytes currently held in memory (not counting
// bytes already flushed to a Sink).
func (w *WriteBuffer) Len() int { return w.buf.Len() }

// Bytes returns the bytes accumulated so far. It is only meaningful for a
// WriteBuffer with no Sink (NewWriteBuffer); a sink-backed WriteBuffer may
// have already flushed most of its content elsewhere.
func (w *WriteBuffer) Bytes() []byte { return w.buf.Bytes() }

// Finalize flushes any remaining buffered bytes to the Sink (if any) and
// returns the accumulated bytes for a sink-less WriteBuffer, then returns
// the underlying Buffer to the pool. The WriteBuffer must not be used
// after calling Finalize.
func (w *WriteBuffer) Finalize() ([]byte, error) {
	if w.sink != nil {
		err := w.flush()
		w.pool.Put(w.buf)
		w.buf = nil

		return nil, err
	}

	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	w.pool.Put(w.buf)
	w.buf = nil

	return out, nil
}
