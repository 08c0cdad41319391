// Package decoder implements the BJData/UBJSON decoder: a grammar-directed
// pull parser that reads one marker at a time and dispatches on it,
// following spec.md section 4.6, adapted to arloliu/mebo's
// Decoder-type-plus-functional-options shape and its internal reader
// conventions.
package decoder

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/NeuroJSON/pybj/bjerr"
	"github.com/NeuroJSON/pybj/endian"
	"github.com/NeuroJSON/pybj/internal/options"
	"github.com/NeuroJSON/pybj/internal/source"
	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/numeric"
	"github.com/NeuroJSON/pybj/value"
)

// Decoder translates BJData wire bytes into value.Value trees. A Decoder
// is not safe for concurrent use; create one per goroutine.
type Decoder struct {
	cfg       *config
	engine    endian.EndianEngine
	src       *source.Source
	keyIntern map[string]string
}

// New constructs a Decoder with the given options applied over the
// package defaults (little-endian, last-key-wins, no declared limits
// beyond the built-in ceiling).
func New(opts ...Option) (*Decoder, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg, engine: endian.EngineFor(cfg.littleEndian)}, nil
}

// DecodeBytes parses data in-memory and returns the resulting value tree
// (loadb).
func (d *Decoder) DecodeBytes(data []byte) (value.Value, error) {
	d.src = source.FromBytes(data)

	return d.decodeValue()
}

// DecodeFrom pulls bytes from r as needed and returns the resulting value
// tree (load).
func (d *Decoder) DecodeFrom(r io.Reader) (value.Value, error) {
	d.src = source.FromReader(r)

	return d.decodeValue()
}

func (d *Decoder) fail(err error) error {
	return bjerr.NewDecoderError(d.src.Consumed(), err)
}

func (d *Decoder) readByte() (byte, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		return 0, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
	}

	return b, nil
}

func (d *Decoder) readMarker() (marker.Marker, error) {
	b, err := d.readByte()
	if err != nil {
		return 0, err
	}

	return marker.Marker(b), nil
}

func (d *Decoder) peekMarker() (marker.Marker, error) {
	b, err := d.src.PeekByte()
	if err != nil {
		return 0, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
	}

	return marker.Marker(b), nil
}

// decodeValue reads one complete value starting at the next marker,
// spec.md section 4.6's grammar-directed dispatch.
func (d *Decoder) decodeValue() (value.Value, error) {
	m, err := d.readMarker()
	if err != nil {
		return value.Value{}, err
	}

	return d.decodeAfterMarker(m)
}

func (d *Decoder) decodeAfterMarker(m marker.Marker) (value.Value, error) {
	switch m {
	case marker.Null, marker.NoOp:
		return value.Null(), nil
	case marker.BoolTrue:
		return value.Bool(true), nil
	case marker.BoolFalse:
		return value.Bool(false), nil
	case marker.Char:
		return d.decodeChar()
	case marker.String:
		return d.decodeString()
	case marker.HighPrec:
		return d.decodeHighPrec()
	case marker.Int8, marker.Int16, marker.Int32, marker.Int64:
		return d.decodeSignedScalar(m)
	case marker.UInt8, marker.Byte, marker.UInt16, marker.UInt32:
		return d.decodeUnsignedScalar(m)
	case marker.UInt64:
		return d.decodeUInt64Scalar()
	case marker.Float16, marker.Float32, marker.Float64:
		return d.decodeFloatScalar(m)
	case marker.ArrayStart:
		return d.decodeArray()
	case marker.ObjectStart:
		return d.decodeObject()
	default:
		return value.Value{}, d.fail(fmt.Errorf("%w: 0x%02x", bjerr.ErrUnknownMarker, byte(m)))
	}
}

func (d *Decoder) decodeChar() (value.Value, error) {
	b, err := d.readByte()
	if err != nil {
		return value.Value{}, err
	}
	if b >= 0x80 {
		return value.Value{}, d.fail(fmt.Errorf("%w: char byte 0x%02x is not ASCII", bjerr.ErrInvalidUTF8, b))
	}

	return value.String(string(rune(b))), nil
}

// decodeLength reads one full marker+payload numeric value and returns it
// as a non-negative int, the encoding the encoder's writeLength uses for
// string/array/object counts and shape dimensions.
func (d *Decoder) decodeLength() (int, error) {
	m, err := d.readMarker()
	if err != nil {
		return 0, err
	}

	v, err := d.decodeAfterMarker(m)
	if err != nil {
		return 0, err
	}

	var n int64
	switch v.Kind() {
	case value.KindInt:
		n, _ = v.AsInt()
	case value.KindUint:
		u, _ := v.AsUint()
		if u > 1<<62 {
			return 0, d.fail(fmt.Errorf("%w: length %d too large", bjerr.ErrCountExceedsLimit, u))
		}
		n = int64(u)
	default:
		return 0, d.fail(fmt.Errorf("%w: length marker %s is not numeric", bjerr.ErrTypeMismatch, m))
	}
	if n < 0 {
		return 0, d.fail(bjerr.ErrNegativeLength)
	}

	return int(n), nil
}

func (d *Decoder) decodeString() (value.Value, error) {
	n, err := d.decodeLength()
	if err != nil {
		return value.Value{}, err
	}

	raw, err := d.src.Read(n)
	if err != nil {
		return value.Value{}, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
	}
	if !utf8.Valid(raw) {
		return value.Value{}, d.fail(bjerr.ErrInvalidUTF8)
	}

	return value.String(string(raw)), nil
}

func (d *Decoder) decodeHighPrec() (value.Value, error) {
	n, err := d.decodeLength()
	if err != nil {
		return value.Value{}, err
	}

	raw, err := d.src.Read(n)
	if err != nil {
		return value.Value{}, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
	}

	dec, ok := value.NewDecimal(string(raw))
	if !ok {
		return value.Value{}, d.fail(fmt.Errorf("%w: invalid decimal text %q", bjerr.ErrTypeMismatch, raw))
	}

	return value.HighPrec(dec), nil
}

func (d *Decoder) decodeSignedScalar(m marker.Marker) (value.Value, error) {
	n, err := d.readFixedInt(m)
	if err != nil {
		return value.Value{}, err
	}

	return value.Int(n), nil
}

func (d *Decoder) decodeUnsignedScalar(m marker.Marker) (value.Value, error) {
	n, err := d.readFixedInt(m)
	if err != nil {
		return value.Value{}, err
	}

	return value.Uint(uint64(n)), nil
}

func (d *Decoder) decodeUInt64Scalar() (value.Value, error) {
	raw, err := d.src.Read(8)
	if err != nil {
		return value.Value{}, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
	}

	u, err := numeric.UnpackUint64(d.engine, raw)
	if err != nil {
		return value.Value{}, d.fail(err)
	}

	return value.Uint(u), nil
}

// readFixedInt reads the fixed-width payload for m and returns it as an
// int64 (m must not be UInt64, whose range does not fit int64).
func (d *Decoder) readFixedInt(m marker.Marker) (int64, error) {
	width, ok := m.IsFixedWidth()
	if !ok || width == 0 {
		return 0, d.fail(fmt.Errorf("%w: %s is not a fixed-width integer marker", bjerr.ErrTypeMismatch, m))
	}

	raw, err := d.src.Read(width)
	if err != nil {
		return 0, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
	}

	signed := m != marker.UInt8 && m != marker.UInt16 && m != marker.UInt32 && m != marker.Byte

	return numeric.UnpackInt(d.engine, width, signed, raw)
}

func (d *Decoder) decodeFloatScalar(m marker.Marker) (value.Value, error) {
	width, _ := m.IsFixedWidth()

	raw, err := d.src.Read(width)
	if err != nil {
		return value.Value{}, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
	}

	switch m {
	case marker.Float16:
		f, err := numeric.UnpackFloat16(d.engine, raw)
		if err != nil {
			return value.Value{}, d.fail(err)
		}

		return value.Float(float64(f)), nil
	case marker.Float32:
		f, err := numeric.UnpackFloat32(d.engine, raw)
		if err != nil {
			return value.Value{}, d.fail(err)
		}

		return value.Float(float64(f)), nil
	default:
		f, err := numeric.UnpackFloat64(d.engine, raw)
		if err != nil {
			return value.Value{}, d.fail(err)
		}

		return value.Float(f), nil
	}
}

// checkCount validates a declared container/shape count against the
// configured ceiling.
func (d *Decoder) checkCount(n int) error {
	if n > d.cfg.maxContainerCount {
		return d.fail(fmt.Errorf("%w: %d > %d", bjerr.ErrCountExceedsLimit, n, d.cfg.maxContainerCount))
	}

	return nil
}
