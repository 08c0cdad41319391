// Package buffer implements the encoder's Write Buffer component
// (spec.md section 4.2): a growable, poolable byte buffer that the
// encoder appends wire bytes to, adapted from
// github.com/arloliu/mebo's internal/pool.ByteBuffer.
package buffer

import "sync"

// Default and ceiling sizes mirror the teacher's blob buffer tiers; BJData
// documents are typically small compared to mebo's metric blobs, so both
// tiers here are smaller.
const (
	DefaultSize  = 1024 * 4  // 4KiB
	MaxThreshold = 1024 * 64 // 64KiB
)

// Buffer is a growable byte slice with amortized growth, reused via Pool
// to avoid repeated allocation across Dump/Dumpb calls.
type Buffer struct {
	B []byte
}

// New returns a Buffer with the given initial capacity.
func New(initialCap int) *Buffer {
	return &Buffer{B: make([]byte, 0, initialCap)}
}

// Bytes returns the underlying slice.
func (b *Buffer) Bytes() []byte { return b.B }

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.B) }

// Cap returns the buffer's current capacity.
func (b *Buffer) Cap() int { return cap(b.B) }

// Reset empties the buffer, retaining its allocated memory.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// Grow ensures the buffer can accept n more bytes without reallocating.
func (b *Buffer) Grow(n int) {
	available := cap(b.B) - len(b.B)
	if available >= n {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > 4*DefaultSize {
		growBy = cap(b.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	next := make([]byte, len(b.B), len(b.B)+growBy)
	copy(next, b.B)
	b.B = next
}

// Write appends data, growing the buffer as needed. It always returns
// len(data), nil, satisfying io.Writer.
func (b *Buffer) Write(data []byte) (int, error) {
	b.Grow(len(data))
	b.B = append(b.B, data...)

	return len(data), nil
}

// WriteByte appends a single byte, satisfying io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.Grow(1)
	b.B = append(b.B, c)

	return nil
}

// Pool recycles Buffers to reduce allocation pressure on the encoder's hot
// path, mirroring the teacher's ByteBufferPool.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose Buffers start at defaultSize and are
// discarded, rather than recycled, once they grow past maxThreshold.
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return New(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns a Buffer from the pool, ready to use.
func (p *Pool) Get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)

	return buf
}

// Put returns buf to the pool. Buffers that grew past maxThreshold are
// dropped instead, so one oversized document doesn't inflate the pool's
// steady-state footprint.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}
	if p.maxThreshold > 0 && buf.Cap() > p.maxThreshold {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

var defaultPool = NewPool(DefaultSize, MaxThreshold)

// Get returns a Buffer from the package-level default pool.
func Get() *Buffer { return defaultPool.Get() }

// Put returns buf to the package-level default pool.
func Put(buf *Buffer) { defaultPool.Put(buf) }
