// Package numeric implements IEEE-754 float pack/unpack and fixed-width
// integer pack/unpack for the BJData/UBJSON wire format.
//
// It is the codec's only collaborator for turning Go numeric values into
// wire bytes and back; the encoder and decoder never touch math.Float*bits
// or an EndianEngine directly, they call through here. This mirrors how
// github.com/arloliu/mebo's encoding package is the sole place that calls
// math.Float64bits/math.Float64frombits, with blob/section code always
// going through it.
package numeric

import (
	"fmt"
	"math"
	"sync"

	"github.com/x448/float16"

	"github.com/NeuroJSON/pybj/endian"
)

// hostFloatFormat records whether the host uses native IEEE-754 floats.
// Every architecture Go currently targets does, so detection always
// resolves to the memcpy-capable path; the hook exists so a future
// soft-float target has somewhere to plug in without changing callers.
type hostFloatFormat struct {
	ieee754 bool
}

var detectHostFloatFormat = sync.OnceValue(func() hostFloatFormat {
	return hostFloatFormat{ieee754: true}
})

// DetectHostFloatFormat runs the (memoized) host float format probe and
// reports whether the host natively supports IEEE-754 floats.
func DetectHostFloatFormat() bool {
	return detectHostFloatFormat().ieee754
}

// PackFloat16 encodes v as an IEEE-754 half-precision float using engine's
// byte order. Values outside float16 range saturate to +/-Inf per
// x448/float16's conversion rules.
func PackFloat16(engine endian.EndianEngine, v float32) []byte {
	bits := float16.Fromfloat32(v).Bits()
	buf := make([]byte, 2)
	engine.PutUint16(buf, bits)

	return buf
}

// UnpackFloat16 decodes a half-precision float from data (must be 2 bytes).
func UnpackFloat16(engine endian.EndianEngine, data []byte) (float32, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("numeric: float16 payload too short: %d bytes", len(data))
	}

	return float16.Frombits(engine.Uint16(data)).Float32(), nil
}

// PackFloat32 encodes v as an IEEE-754 single-precision float using engine's
// byte order.
func PackFloat32(engine endian.EndianEngine, v float32) []byte {
	buf := make([]byte, 4)
	engine.PutUint32(buf, math.Float32bits(v))

	return buf
}

// UnpackFloat32 decodes a single-precision float from data (must be 4 bytes).
func UnpackFloat32(engine endian.EndianEngine, data []byte) (float32, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("numeric: float32 payload too short: %d bytes", len(data))
	}

	return math.Float32frombits(engine.Uint32(data)), nil
}

// PackFloat64 encodes v as an IEEE-754 double-precision float using engine's
// byte order.
func PackFloat64(engine endian.EndianEngine, v float64) []byte {
	buf := make([]byte, 8)
	engine.PutUint64(buf, math.Float64bits(v))

	return buf
}

// UnpackFloat64 decodes a double-precision float from data (must be 8 bytes).
func UnpackFloat64(engine endian.EndianEngine, data []byte) (float64, error) {
	if len(data) < 8 {
		return 0, fmt.Errorf("numeric: float64 payload too short: %d bytes", len(data))
	}

	return math.Float64frombits(engine.Uint64(data)), nil
}

// PackInt encodes value using the given byte width (1, 2, 4 or 8) and
// signedness. It returns an error if value does not fit in width bytes.
func PackInt(engine endian.EndianEngine, width int, signed bool, value int64) ([]byte, error) {
	if !signed && value < 0 {
		return nil, fmt.Errorf("numeric: cannot pack negative value %d as unsigned", value)
	}

	switch width {
	case 1:
		if signed {
			if value < math.MinInt8 || value > math.MaxInt8 {
				return nil, overflowErr(value, width, signed)
			}

			return []byte{byte(int8(value))}, nil
		}
		if value > math.MaxUint8 {
			return nil, overflowErr(value, width, signed)
		}

		return []byte{byte(value)}, nil
	case 2:
		if signed {
			if value < math.MinInt16 || value > math.MaxInt16 {
				return nil, overflowErr(value, width, signed)
			}
		} else if value > math.MaxUint16 {
			return nil, overflowErr(value, width, signed)
		}
		buf := make([]byte, 2)
		engine.PutUint16(buf, uint16(value))

		return buf, nil
	case 4:
		if signed {
			if value < math.MinInt32 || value > math.MaxInt32 {
				return nil, overflowErr(value, width, signed)
			}
		} else if value > math.MaxUint32 {
			return nil, overflowErr(value, width, signed)
		}
		buf := make([]byte, 4)
		engine.PutUint32(buf, uint32(value))

		return buf, nil
	case 8:
		buf := make([]byte, 8)
		engine.PutUint64(buf, uint64(value))

		return buf, nil
	default:
		return nil, fmt.Errorf("numeric: unsupported integer width %d", width)
	}
}

// PackUint64 encodes an unsigned 64-bit value, used for the BJData-mode
// UInt64 marker where the value may exceed math.MaxInt64.
func PackUint64(engine endian.EndianEngine, value uint64) []byte {
	buf := make([]byte, 8)
	engine.PutUint64(buf, value)

	return buf
}

// UnpackInt decodes a fixed-width integer from data.
func UnpackInt(engine endian.EndianEngine, width int, signed bool, data []byte) (int64, error) {
	if len(data) < width {
		return 0, fmt.Errorf("numeric: integer payload too short: need %d, got %d", width, len(data))
	}

	switch width {
	case 1:
		if signed {
			return int64(int8(data[0])), nil
		}

		return int64(data[0]), nil
	case 2:
		u := engine.Uint16(data)
		if signed {
			return int64(int16(u)), nil
		}

		return int64(u), nil
	case 4:
		u := engine.Uint32(data)
		if signed {
			return int64(int32(u)), nil
		}

		return int64(u), nil
	case 8:
		u := engine.Uint64(data)
		if signed {
			return int64(u), nil
		}
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("numeric: uint64 value %d overflows int64", u)
		}

		return int64(u), nil
	default:
		return 0, fmt.Errorf("numeric: unsupported integer width %d", width)
	}
}

// UnpackUint64 decodes an unsigned 64-bit integer from data (must be 8 bytes).
func UnpackUint64(engine endian.EndianEngine, data []byte) (uint64, error) {
	if len(data) < 8 {
		return 0, fmt.Errorf("numeric: uint64 payload too short: %d bytes", len(data))
	}

	return engine.Uint64(data), nil
}

func overflowErr(value int64, width int, signed bool) error {
	kind := "int"
	if !signed {
		kind = "uint"
	}

	return fmt.Errorf("numeric: value %d does not fit in %s%d", value, kind, width*8)
}
