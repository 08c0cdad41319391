package encoder

import (
	"fmt"

	"github.com/NeuroJSON/pybj/endian"
	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/numeric"
	"github.com/NeuroJSON/pybj/value"
)

// packNDArrayData packs every element of data (a concrete typed Go slice,
// see value.NDArray's doc comment) using m's fixed width and engine's
// byte order, concatenated with no per-element marker. This is the raw
// payload format spec.md section 4.5.5 describes for NDArray/SOA bodies.
func packNDArrayData(engine endian.EndianEngine, m marker.Marker, data any) ([]byte, error) {
	switch d := data.(type) {
	case []int8:
		return packInts(engine, m, len(d), func(i int) int64 { return int64(d[i]) })
	case []uint8:
		return packInts(engine, m, len(d), func(i int) int64 { return int64(d[i]) })
	case []int16:
		return packInts(engine, m, len(d), func(i int) int64 { return int64(d[i]) })
	case []uint16:
		return packInts(engine, m, len(d), func(i int) int64 { return int64(d[i]) })
	case []int32:
		return packInts(engine, m, len(d), func(i int) int64 { return int64(d[i]) })
	case []uint32:
		return packInts(engine, m, len(d), func(i int) int64 { return int64(d[i]) })
	case []int64:
		return packInts(engine, m, len(d), func(i int) int64 { return d[i] })
	case []uint64:
		return packUint64s(engine, m, d)
	case []float32:
		return packFloats32(engine, m, d)
	case []float64:
		return packFloats64(engine, m, d)
	default:
		return nil, fmt.Errorf("encoder: unsupported ndarray element type %T", data)
	}
}

func packInts(engine endian.EndianEngine, m marker.Marker, n int, at func(int) int64) ([]byte, error) {
	width, ok := m.IsFixedWidth()
	if !ok {
		return nil, fmt.Errorf("encoder: marker %v is not fixed-width", m)
	}
	signed := isSignedMarker(m)

	out := make([]byte, 0, width*n)
	for i := 0; i < n; i++ {
		buf, err := numeric.PackInt(engine, width, signed, at(i))
		if err != nil {
			return nil, err
		}
		out = append(out, buf...)
	}

	return out, nil
}

func packUint64s(engine endian.EndianEngine, m marker.Marker, data []uint64) ([]byte, error) {
	if m != marker.UInt64 {
		return packInts(engine, m, len(data), func(i int) int64 { return int64(data[i]) })
	}

	out := make([]byte, 0, 8*len(data))
	for _, v := range data {
		out = append(out, numeric.PackUint64(engine, v)...)
	}

	return out, nil
}

func packFloats32(engine endian.EndianEngine, m marker.Marker, data []float32) ([]byte, error) {
	out := make([]byte, 0, len(data)*4)
	for _, v := range data {
		switch m {
		case marker.Float16:
			out = append(out, numeric.PackFloat16(engine, v)...)
		case marker.Float64:
			out = append(out, numeric.PackFloat64(engine, float64(v))...)
		default:
			out = append(out, numeric.PackFloat32(engine, v)...)
		}
	}

	return out, nil
}

func packFloats64(engine endian.EndianEngine, m marker.Marker, data []float64) ([]byte, error) {
	out := make([]byte, 0, len(data)*8)
	for _, v := range data {
		switch m {
		case marker.Float16:
			out = append(out, numeric.PackFloat16(engine, float32(v))...)
		case marker.Float32:
			out = append(out, numeric.PackFloat32(engine, float32(v))...)
		default:
			out = append(out, numeric.PackFloat64(engine, v)...)
		}
	}

	return out, nil
}

func isSignedMarker(m marker.Marker) bool {
	switch m {
	case marker.UInt8, marker.UInt16, marker.UInt32, marker.UInt64, marker.Byte:
		return false
	default:
		return true
	}
}

// packScalar packs a single value.Value's numeric payload per marker m,
// used by the SOA row-major writer where fields interleave one scalar at
// a time rather than one contiguous column.
func packScalar(engine endian.EndianEngine, m marker.Marker, v value.Value) ([]byte, error) {
	switch m {
	case marker.Float16, marker.Float32, marker.Float64:
		f, _ := v.AsFloat()

		return packFloats64(engine, m, []float64{f})
	default:
		width, ok := m.IsFixedWidth()
		if !ok {
			return nil, fmt.Errorf("encoder: marker %v is not fixed-width", m)
		}
		var n int64
		switch v.Kind() {
		case value.KindInt:
			n, _ = v.AsInt()
		case value.KindUint:
			u, _ := v.AsUint()
			n = int64(u)
		default:
			return nil, fmt.Errorf("encoder: cannot pack %v as marker %v", v.Kind(), m)
		}

		return numeric.PackInt(engine, width, isSignedMarker(m), n)
	}
}
