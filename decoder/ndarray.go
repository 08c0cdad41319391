package decoder

import (
	"github.com/NeuroJSON/pybj/marker"
	"github.com/NeuroJSON/pybj/value"
)

// newColumnSlice allocates a concrete typed Go slice of length n for a
// row-major SOA field, matching value.Struct.Columns' element-boxing
// convention (value.columnElem's inverse).
func newColumnSlice(m marker.Marker, n int) any {
	switch m {
	case marker.Int8:
		return make([]int8, n)
	case marker.UInt8, marker.Byte:
		return make([]uint8, n)
	case marker.Int16:
		return make([]int16, n)
	case marker.UInt16:
		return make([]uint16, n)
	case marker.Int32:
		return make([]int32, n)
	case marker.UInt32:
		return make([]uint32, n)
	case marker.Int64:
		return make([]int64, n)
	case marker.UInt64:
		return make([]uint64, n)
	case marker.Float16, marker.Float32:
		return make([]float32, n)
	case marker.Float64:
		return make([]float64, n)
	case marker.BoolTrue, marker.BoolFalse:
		return make([]bool, n)
	case marker.Char, marker.String:
		return make([]string, n)
	default:
		return make([]any, n)
	}
}

// assignColumn writes v into col at index i, dispatching on col's
// concrete element type.
func assignColumn(col any, i int, v value.Value) {
	switch c := col.(type) {
	case []int8:
		n, _ := v.AsInt()
		c[i] = int8(n)
	case []uint8:
		u, _ := v.AsUint()
		c[i] = uint8(u)
	case []int16:
		n, _ := v.AsInt()
		c[i] = int16(n)
	case []uint16:
		u, _ := v.AsUint()
		c[i] = uint16(u)
	case []int32:
		n, _ := v.AsInt()
		c[i] = int32(n)
	case []uint32:
		u, _ := v.AsUint()
		c[i] = uint32(u)
	case []int64:
		n, _ := v.AsInt()
		c[i] = n
	case []uint64:
		u, _ := v.AsUint()
		c[i] = u
	case []float32:
		f, _ := v.AsFloat()
		c[i] = float32(f)
	case []float64:
		f, _ := v.AsFloat()
		c[i] = f
	case []bool:
		b, _ := v.AsBool()
		c[i] = b
	case []string:
		s, _ := v.AsString()
		c[i] = s
	case []any:
		c[i] = v
	}
}
