package decoder

import (
	"fmt"

	"github.com/NeuroJSON/pybj/bjerr"
	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/numeric"
	"github.com/NeuroJSON/pybj/value"
)

// decodeFixedElements reads n consecutive fixed-width elements of the
// given marker type and boxes each one as a value.Value, the inverse of
// the encoder's writeSTCElement/writeFixedRaw.
func (d *Decoder) decodeFixedElements(m marker.Marker, n int) ([]value.Value, error) {
	width, _ := m.IsFixedWidth()

	items := make([]value.Value, n)
	for i := range items {
		if width == 0 {
			items[i] = zeroWidthValue(m)

			continue
		}
		raw, err := d.src.Read(width)
		if err != nil {
			return nil, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
		}
		v, err := d.decodeFixedValue(m, raw)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}

	return items, nil
}

func zeroWidthValue(m marker.Marker) value.Value {
	switch m {
	case marker.BoolTrue:
		return value.Bool(true)
	case marker.BoolFalse:
		return value.Bool(false)
	default:
		return value.Null()
	}
}

func (d *Decoder) decodeFixedValue(m marker.Marker, raw []byte) (value.Value, error) {
	switch m {
	case marker.Char:
		return value.String(string(rune(raw[0]))), nil
	case marker.Int8:
		return value.Int(int64(int8(raw[0]))), nil
	case marker.UInt8, marker.Byte:
		return value.Uint(uint64(raw[0])), nil
	case marker.Int16:
		n, err := numeric.UnpackInt(d.engine, 2, true, raw)

		return value.Int(n), err
	case marker.UInt16:
		n, err := numeric.UnpackInt(d.engine, 2, false, raw)

		return value.Uint(uint64(n)), err
	case marker.Int32:
		n, err := numeric.UnpackInt(d.engine, 4, true, raw)

		return value.Int(n), err
	case marker.UInt32:
		n, err := numeric.UnpackInt(d.engine, 4, false, raw)

		return value.Uint(uint64(n)), err
	case marker.Int64:
		n, err := numeric.UnpackInt(d.engine, 8, true, raw)

		return value.Int(n), err
	case marker.UInt64:
		u, err := numeric.UnpackUint64(d.engine, raw)

		return value.Uint(u), err
	case marker.Float16:
		f, err := numeric.UnpackFloat16(d.engine, raw)

		return value.Float(float64(f)), err
	case marker.Float32:
		f, err := numeric.UnpackFloat32(d.engine, raw)

		return value.Float(float64(f)), err
	case marker.Float64:
		f, err := numeric.UnpackFloat64(d.engine, raw)

		return value.Float(f), err
	default:
		return value.Value{}, d.fail(fmt.Errorf("%w: %s", bjerr.ErrTypeMismatch, m))
	}
}

// decodeTypedSlice reads n consecutive elements of marker type m and
// returns them as a concrete typed Go slice, the shape value.NDArray.Data
// expects. It is the decode-direction counterpart of the encoder's
// packNDArrayData.
func (d *Decoder) decodeTypedSlice(m marker.Marker, n int) (any, error) {
	if m == marker.BoolTrue || m == marker.BoolFalse {
		return d.decodeBoolSlice(n)
	}

	width, ok := m.IsFixedWidth()
	if !ok || width == 0 {
		return nil, d.fail(fmt.Errorf("%w: %s is not a valid NDArray element type", bjerr.ErrTypeMismatch, m))
	}

	raw, err := d.src.Read(n * width)
	if err != nil {
		return nil, d.fail(fmt.Errorf("%w: %v", bjerr.ErrUnexpectedEnd, err))
	}

	switch m {
	case marker.Int8:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(raw[i])
		}

		return out, nil
	case marker.UInt8, marker.Byte:
		out := make([]uint8, n)
		copy(out, raw)

		return out, nil
	case marker.Int16, marker.UInt16:
		return decodeIntSlice16(d.engine, m, raw, n)
	case marker.Int32, marker.UInt32:
		return decodeIntSlice32(d.engine, m, raw, n)
	case marker.Int64:
		out := make([]int64, n)
		for i := range out {
			v, err := numeric.UnpackInt(d.engine, 8, true, raw[i*8:i*8+8])
			if err != nil {
				return nil, d.fail(err)
			}
			out[i] = v
		}

		return out, nil
	case marker.UInt64:
		out := make([]uint64, n)
		for i := range out {
			v, err := numeric.UnpackUint64(d.engine, raw[i*8:i*8+8])
			if err != nil {
				return nil, d.fail(err)
			}
			out[i] = v
		}

		return out, nil
	case marker.Float16:
		out := make([]float32, n)
		for i := range out {
			v, err := numeric.UnpackFloat16(d.engine, raw[i*2:i*2+2])
			if err != nil {
				return nil, d.fail(err)
			}
			out[i] = v
		}

		return out, nil
	case marker.Float32:
		out := make([]float32, n)
		for i := range out {
			v, err := numeric.UnpackFloat32(d.engine, raw[i*4:i*4+4])
			if err != nil {
				return nil, d.fail(err)
			}
			out[i] = v
		}

		return out, nil
	case marker.Float64:
		out := make([]float64, n)
		for i := range out {
			v, err := numeric.UnpackFloat64(d.engine, raw[i*8:i*8+8])
			if err != nil {
				return nil, d.fail(err)
			}
			out[i] = v
		}

		return out, nil
	default:
		return nil, d.fail(fmt.Errorf("%w: %s", bjerr.ErrTypeMismatch, m))
	}
}

// decodeBoolElement reads one marker byte and decodes it as a boolean,
// the inverse of the encoder's writeBool: a SOA bool column or row field
// carries one T/F marker per element instead of a fixed-width payload.
func (d *Decoder) decodeBoolElement() (value.Value, error) {
	m, err := d.readMarker()
	if err != nil {
		return value.Value{}, err
	}

	switch m {
	case marker.BoolTrue:
		return value.Bool(true), nil
	case marker.BoolFalse:
		return value.Bool(false), nil
	default:
		return value.Value{}, d.fail(fmt.Errorf("%w: expected bool marker, got %s", bjerr.ErrTypeMismatch, m))
	}
}

// decodeBoolSlice reads n consecutive per-element T/F markers, the
// decode-direction counterpart of the encoder's writeBoolColumn.
func (d *Decoder) decodeBoolSlice(n int) (any, error) {
	out := make([]bool, n)
	for i := range out {
		v, err := d.decodeBoolElement()
		if err != nil {
			return nil, err
		}
		out[i], _ = v.AsBool()
	}

	return out, nil
}

func decodeIntSlice16(engine interface {
	Uint16([]byte) uint16
}, m marker.Marker, raw []byte, n int) (any, error) {
	if m == marker.UInt16 {
		out := make([]uint16, n)
		for i := range out {
			out[i] = engine.Uint16(raw[i*2 : i*2+2])
		}

		return out, nil
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(engine.Uint16(raw[i*2 : i*2+2]))
	}

	return out, nil
}

func decodeIntSlice32(engine interface {
	Uint32([]byte) uint32
}, m marker.Marker, raw []byte, n int) (any, error) {
	if m == marker.UInt32 {
		out := make([]uint32, n)
		for i := range out {
			out[i] = engine.Uint32(raw[i*4 : i*4+4])
		}

		return out, nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(engine.Uint32(raw[i*4 : i*4+4]))
	}

	return out, nil
}
