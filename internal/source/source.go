// Package source implements the decoder's Read Source component
// (spec.md section 4.3): a pull-style byte reader over either an
// in-memory slice or an io.Reader, with one-byte lookahead for marker
// peeking. It mirrors the buffer package's role on the encode side —
// the decoder never touches an io.Reader or byte slice directly, it
// calls through here.
package source

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnexpectedEOF is returned when fewer bytes are available than
// requested and no more can be read.
var ErrUnexpectedEOF = errors.New("source: unexpected end of input")

// Source is a pull-style byte reader with one-byte pushback, used by the
// decoder to read fixed-width fields and peek at markers.
type Source struct {
	r        io.Reader
	buf      []byte // in-memory fast path, nil when reading from r
	pos      int
	pending  []byte // pushed-back bytes, consumed before buf/r
	consumed int
}

// FromBytes returns a Source that reads directly from data without
// copying, the fast path used by Loadb.
func FromBytes(data []byte) *Source {
	return &Source{buf: data}
}

// FromReader returns a Source that pulls from r as needed, used by Load.
func FromReader(r io.Reader) *Source {
	return &Source{r: r}
}

// Consumed returns the total number of bytes read out of the source so
// far, including pushed-back bytes that were re-read.
func (s *Source) Consumed() int { return s.consumed }

// ReadByte reads and returns the next byte, satisfying io.ByteReader.
func (s *Source) ReadByte() (byte, error) {
	buf, err := s.Read(1)
	if err != nil {
		return 0, err
	}

	return buf[0], nil
}

// PeekByte returns the next byte without consuming it.
func (s *Source) PeekByte() (byte, error) {
	b, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	s.pushback(b)

	return b, nil
}

// pushback returns a single byte to the front of the stream, for use
// right after ReadByte/PeekByte.
func (s *Source) pushback(b byte) {
	s.pending = append(s.pending, b)
	s.consumed--
}

// Read returns the next n bytes. For an in-memory Source the returned
// slice aliases the backing array; for a reader-backed Source it is a
// freshly allocated slice. Read returns ErrUnexpectedEOF wrapped with
// context if fewer than n bytes remain.
func (s *Source) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("source: negative read length %d", n)
	}
	if n == 0 {
		return nil, nil
	}

	out := make([]byte, 0, n)

	for len(out) < n && len(s.pending) > 0 {
		take := len(s.pending)
		if need := n - len(out); take > need {
			take = need
		}
		out = append(out, s.pending[:take]...)
		s.pending = s.pending[take:]
	}

	if len(out) == n {
		s.consumed += n

		return out, nil
	}

	remaining := n - len(out)

	if s.buf != nil {
		if s.pos+remaining > len(s.buf) {
			return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrUnexpectedEOF, remaining, len(s.buf)-s.pos)
		}
		if len(out) == 0 {
			// Fast path: no pending bytes, return an aliased slice.
			chunk := s.buf[s.pos : s.pos+remaining]
			s.pos += remaining
			s.consumed += n

			return chunk, nil
		}
		out = append(out, s.buf[s.pos:s.pos+remaining]...)
		s.pos += remaining
		s.consumed += n

		return out, nil
	}

	chunk := make([]byte, remaining)
	if _, err := io.ReadFull(s.r, chunk); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedEOF, err)
		}

		return nil, fmt.Errorf("source: read: %w", err)
	}
	out = append(out, chunk...)
	s.consumed += n

	return out, nil
}
